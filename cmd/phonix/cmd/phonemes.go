package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/phonix/internal/phoneme"
)

var phonemesCmd = &cobra.Command{
	Use:   "phonemes",
	Short: "List the phonemes that can be highlighted",
	RunE:  runPhonemes,
}

func init() {
	rootCmd.AddCommand(phonemesCmd)
	phonemesCmd.Flags().String("category", "", "only list vowels or consonants")
}

func runPhonemes(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")

	groups := []struct {
		title string
		cat   phoneme.Category
	}{
		{"Vowels", phoneme.Vowel},
		{"Consonants", phoneme.Consonant},
	}

	out := cmd.OutOrStdout()
	shown := 0
	for _, g := range groups {
		if category != "" && !strings.EqualFold(category, g.title) && !strings.EqualFold(category, string(g.cat)) {
			continue
		}
		fmt.Fprintf(out, "%s:\n", g.title)
		for _, info := range phoneme.ByCategory(g.cat) {
			fmt.Fprintf(out, "  %s\n", info.Label())
		}
		fmt.Fprintln(out)
		shown++
	}
	if shown == 0 {
		return fmt.Errorf("unknown category %q (want vowels or consonants)", category)
	}
	return nil
}
