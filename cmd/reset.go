package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/appstate"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear history and favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Print("Hapus semua riwayat dan favorit? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "y") {
				fmt.Println("Dibatalkan.")
				return nil
			}
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.appState(cmd.Context())
		defer st.Close()

		if _, err := st.Dispatch(appstate.ResetProgress{}); err != nil {
			return err
		}
		fmt.Println("Progres dihapus.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
