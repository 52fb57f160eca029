package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import history and favorites",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a backup document (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.appState(cmd.Context())
		defer st.Close()

		data, err := st.Export()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = fmt.Println(string(data))
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Printf("Backup disimpan ke %s\n", args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace history and favorites with a backup document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.appState(cmd.Context())
		defer st.Close()

		state, err := st.Import(data)
		if err != nil {
			return err
		}
		fmt.Printf("Impor berhasil: %d riwayat, %d favorit.\n", len(state.History), len(state.Favorites))
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
