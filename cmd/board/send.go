package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var sendMessage string

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Sign a message with the connected wallet and post it",
	Long: `Sign a message with the connected wallet and post it to the board.

The message is signed exactly as given. The text comes from --message or
from the arguments joined by spaces.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := sendMessage
		if draft == "" {
			draft = strings.Join(args, " ")
		}

		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		s.board.SetDraft(draft)

		// an empty draft must not even reach the wallet
		if strings.TrimSpace(draft) != "" {
			if err := s.connect(cmd.Context(), !assumeYes); err != nil {
				return err
			}
		}

		return s.board.Submit(cmd.Context())
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendMessage, "message", "m", "", "Message to sign and post")
	rootCmd.AddCommand(sendCmd)
}
