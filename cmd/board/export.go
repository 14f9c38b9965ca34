package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogechoco/messageboard/x/board"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download every message as a JSON file (admin)",
	Long: `Sign the admin challenge and download every message from the backend.

The file is written to the export directory as
respaldo-mensajes-YYYY-MM-DD.json. Nothing is written when the backend refuses
the request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}

		if err := s.connect(cmd.Context(), !assumeYes); err != nil {
			return err
		}

		if s.board.State() != board.ConnectedAdmin {
			return board.ErrNotAdmin
		}

		path, err := s.board.Export(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Directory to write the export to (overrides exportDir)")
	rootCmd.AddCommand(exportCmd)
}
