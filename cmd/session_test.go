package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/questiongen"
)

func parsePractice(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "practice"}
	addPracticeFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestPracticeRequest(t *testing.T) {
	req, err := practiceRequest(parsePractice(t, "--type", "particle", "-n", "4", "--source", "mixed", "--topic", "sekolah"))
	require.NoError(t, err)

	assert.Equal(t, bank.TypeParticle, req.Type)
	assert.Equal(t, 4, req.Count)
	assert.Equal(t, questiongen.SourceMixed, req.Source)
	assert.Equal(t, "sekolah", req.Topic)
}

func TestPracticeRequestDefaults(t *testing.T) {
	req, err := practiceRequest(parsePractice(t))
	require.NoError(t, err)

	// Zero values are filled in by the starter from configuration.
	assert.Equal(t, questiongen.Request{}, req)
}

func TestPracticeRequestRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"--type", "essay"},
		{"--source", "cloud"},
		{"--count=-2"},
	}
	for _, args := range tests {
		_, err := practiceRequest(parsePractice(t, args...))
		assert.Error(t, err, "args %v", args)
	}
}
