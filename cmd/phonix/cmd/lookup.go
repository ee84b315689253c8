package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/highlight"
	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/f3rmion/phonix/internal/render"
	"github.com/f3rmion/phonix/internal/rules"
)

const (
	maxSuggestions = 5
	minSimilarity  = 0.8
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Show the letter/phoneme alignment of words",
	Long: `Look up words in the alignment dictionary and display:
  - the letter/phoneme pairs
  - the heteronym override used for the given part-of-speech tag
  - the highlighted letters when a phoneme is given
  - similar dictionary words when a word is missing

Example:
  phonix lookup nation
  phonix lookup read --tag VBD -p EH`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().String("tag", "", "Penn Treebank tag, e.g. VBD")
	lookupCmd.Flags().StringP("phoneme", "p", "", "phoneme to highlight")
}

func runLookup(cmd *cobra.Command, args []string) error {
	tag, _ := cmd.Flags().GetString("tag")
	sym, _ := cmd.Flags().GetString("phoneme")

	var target phoneme.Phoneme
	if sym != "" {
		var err error
		if target, err = phoneme.Parse(sym); err != nil {
			return err
		}
	}

	e, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	dict, err := e.loadDictionary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		printLookup(out, dict, word, tag, target)
	}
	return nil
}

func printLookup(out io.Writer, dict *align.Dictionary, word, tag string, target phoneme.Phoneme) {
	lower := strings.ToLower(word)
	fmt.Fprintf(out, "Word: %s\n", word)

	a, ok := dict.Lookup(lower)
	if !ok {
		fmt.Fprintln(out, "  (not in dictionary)")
		if s := dict.Suggest(lower, maxSuggestions, minSimilarity); len(s) > 0 {
			fmt.Fprintf(out, "  Did you mean: %s\n", strings.Join(s, ", "))
		}
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintf(out, "  Alignment: %s\n", a)
	if tag != "" {
		if o, ok := rules.Override(lower, tag); ok {
			fmt.Fprintf(out, "  Heteronym (%s): %s\n", tag, o)
		}
	}
	if target != "" {
		resolved, mask := highlight.Resolve(lower, tag, a, target)
		marked := render.Word(highlight.Segments(word, resolved, mask), render.Plain{})
		fmt.Fprintf(out, "  %s: %s\n", target, marked)
	}
	fmt.Fprintln(out)
}
