package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [query]",
	Short: "Search the vocabulary list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.appState(cmd.Context())
		defer st.Close()

		f := bank.VocabFilter{}
		f.Theme, _ = cmd.Flags().GetString("theme")
		f.FavoritesOnly, _ = cmd.Flags().GetBool("favorites")
		if len(args) == 1 {
			f.Query = args[0]
		}

		state := st.State()
		list := bank.FilterVocab(bank.Vocabulary(), f, state.Favorites)
		if len(list) == 0 {
			fmt.Println("Tidak ada kosakata yang ditemukan.")
			return nil
		}

		for _, v := range list {
			star := " "
			if state.IsFavorite(v.ID) {
				star = "★"
			}
			fmt.Printf("%s %-6s  %-10s  %-12s  %-16s  %s\n",
				star, v.ID, v.JP, v.Kana, v.Romaji, v.Meaning)
		}
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Add or remove a word from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.appState(cmd.Context())
		defer st.Close()

		id := strings.TrimSpace(args[0])
		if !knownVocab(id) {
			return fmt.Errorf("unknown vocabulary id %q", id)
		}
		state, err := st.Dispatch(appstate.ToggleFavorite{VocabID: id})
		if err != nil {
			return err
		}
		if state.IsFavorite(id) {
			fmt.Printf("%s ditambahkan ke favorit.\n", id)
		} else {
			fmt.Printf("%s dihapus dari favorit.\n", id)
		}
		return nil
	},
}

func knownVocab(id string) bool {
	for _, v := range bank.Vocabulary() {
		if v.ID == id {
			return true
		}
	}
	return false
}

var particlesCmd = &cobra.Command{
	Use:   "particles",
	Short: "List particles with their functions and examples",
	RunE: func(cmd *cobra.Command, args []string) error {
		sep := strings.Repeat("─", 48)
		for _, p := range bank.Particles() {
			fmt.Printf("%s (%s)\n", p.Kana, p.Romaji)
			for _, fn := range p.Functions {
				fmt.Printf("  • %s\n", fn)
			}
			for _, ex := range p.Examples {
				fmt.Printf("    %s\n    %s · %s\n", ex.JP, ex.Romaji, ex.Meaning)
			}
			fmt.Println(sep)
		}
		return nil
	},
}

func init() {
	vocabCmd.Flags().String("theme", "", "Only words tagged with this theme")
	vocabCmd.Flags().BoolP("favorites", "f", false, "Only favorite words")

	vocabCmd.AddCommand(favoriteCmd)
}
