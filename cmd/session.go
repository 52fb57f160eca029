package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/screens/setup"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := practiceRequest(cmd)
		if err != nil {
			return err
		}
		return launch(cmd, func(s *setup.Starter) tea.Cmd {
			return s.Practice(req)
		})
	},
}

var tryoutCmd = &cobra.Command{
	Use:   "tryout",
	Short: "Start a timed tryout right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch(cmd, func(s *setup.Starter) tea.Cmd {
			return s.Tryout()
		})
	},
}

func practiceRequest(cmd *cobra.Command) (questiongen.Request, error) {
	var req questiongen.Request
	req.Count, _ = cmd.Flags().GetInt("count")
	req.Topic, _ = cmd.Flags().GetString("topic")

	if t, _ := cmd.Flags().GetString("type"); t != "" {
		qt, err := bank.ParseType(t)
		if err != nil {
			return req, err
		}
		req.Type = qt
	}
	if s, _ := cmd.Flags().GetString("source"); s != "" {
		src, err := questiongen.ParseSource(s)
		if err != nil {
			return req, err
		}
		req.Source = src
	}
	if req.Count < 0 {
		return req, fmt.Errorf("invalid count %d", req.Count)
	}
	return req, nil
}

func addPracticeFlags(c *cobra.Command) {
	c.Flags().StringP("type", "t", "", "Question type: cloze, particle, ordering, tf, mc, kana or mixed")
	c.Flags().IntP("count", "n", 0, "Number of questions (default: practice.count)")
	c.Flags().StringP("source", "s", "", "Question source: local, mixed or ai (default: generation.source)")
	c.Flags().String("topic", "", "Theme for AI-generated questions")
}

func init() {
	addPracticeFlags(practiceCmd)
}
