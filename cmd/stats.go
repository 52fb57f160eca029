package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.appState(cmd.Context())
		defer st.Close()

		stats := st.State().Stats(bank.Vocabulary())
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		if stats.Total == 0 {
			fmt.Println("Belum ada riwayat. Ayo mulai latihan!")
			return nil
		}

		fmt.Printf("Jawaban:    %d\n", stats.Total)
		fmt.Printf("Akurasi:    %d%%\n", stats.Accuracy)
		fmt.Printf("Rata-rata:  %s\n", history.FormatDuration(stats.AverageMs))
		if t := stats.LastTryout; t != nil {
			fmt.Printf("Tryout:     %d/%d (%d%%) pada %s\n",
				t.Correct, t.Total, t.Accuracy, t.Start.Local().Format("2006-01-02 15:04"))
		}

		fmt.Println()
		fmt.Printf("%-20s  %6s  %7s\n", "Jenis soal", "Soal", "Akurasi")
		fmt.Println(strings.Repeat("─", 37))
		for _, ts := range stats.ByType {
			fmt.Printf("%-20s  %6d  %6d%%\n", ts.Type.Label(), ts.Count, ts.Accuracy)
		}

		if len(stats.WeakVocab) > 0 {
			fmt.Println()
			fmt.Println("Sering salah:")
			for _, v := range stats.WeakVocab {
				fmt.Printf("  %s (%s) %s\n", v.JP, v.Romaji, v.Meaning)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the statistics as JSON")
}
