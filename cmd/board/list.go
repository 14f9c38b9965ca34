package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/board"
	"github.com/dogechoco/messageboard/x/export"
)

var listFormat string

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	senderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			PaddingLeft(2)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the posted messages, most recent first (admin)",
	Long: `Fetch the message board and print it, most recent first.

Like the web page, the list is only shown to the admin wallet. Use
--format to print it as json, jsonl, yaml or markdown instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var exporter export.Exporter
		if listFormat != "" {
			var err error
			exporter, err = export.NewExporter(listFormat)
			if err != nil {
				return err
			}
		}

		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}

		if err := s.connect(cmd.Context(), false); err != nil {
			return err
		}

		if s.board.State() != board.ConnectedAdmin {
			fmt.Fprintln(cmd.ErrOrStderr(), headerStyle.Render("The message list is only visible to the admin wallet"))
			return nil
		}

		if err := s.board.Refresh(cmd.Context()); err != nil {
			return err
		}

		messages := s.board.Messages()
		if exporter != nil {
			return exporter.Export(messages, cmd.OutOrStdout())
		}

		displayMessages(cmd.OutOrStdout(), messages)
		return nil
	},
}

func displayMessages(w io.Writer, messages []core.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No messages yet"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d message(s)", len(messages))))
	fmt.Fprintln(w)

	for _, msg := range messages {
		fmt.Fprintln(w, senderStyle.Render(msg.WalletAddress)+"  "+dateStyle.Render(formatTimestamp(msg)))
		fmt.Fprintln(w, bodyStyle.Render(strings.TrimRight(msg.Message, "\n")))
		fmt.Fprintln(w)
	}
}

func formatTimestamp(msg core.Message) string {
	if msg.Timestamp.IsZero() {
		return "-"
	}
	return msg.Timestamp.Local().Format("2006-01-02 15:04:05")
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "", "Output format: json, jsonl, yaml, md")
	rootCmd.AddCommand(listCmd)
}
