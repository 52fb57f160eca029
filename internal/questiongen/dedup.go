package questiongen

import (
	"fmt"
	"strings"
)

// buildDedup formats prior prompts for the prompt, respecting the max limit.
// Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	// Keep only the most recent N.
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
