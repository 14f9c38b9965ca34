package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dogechoco/messageboard/x/board"
)

var (
	addressStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"connect"},
	Short:   "Connect the configured wallet and show its address",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}

		if err := s.connect(cmd.Context(), false); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderState(s.board))
		return nil
	},
}

func renderState(b *board.Board) string {
	state := b.State()
	if state == board.Disconnected {
		return stateStyle.Render(state.String())
	}
	return addressStyle.Render(b.Address()) + " " + stateStyle.Render("("+state.String()+")")
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
