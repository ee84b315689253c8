package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/phonix/internal/highlight"
	"github.com/f3rmion/phonix/internal/nlp"
	"github.com/f3rmion/phonix/internal/observe"
	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/f3rmion/phonix/internal/render"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [text...]",
	Short: "Mark the letters that spell a phoneme",
	Long: `Highlight every group of letters in the text that spells the chosen
phoneme. The text is read from the arguments, or from stdin when none are
given. Words missing from the dictionary are printed unchanged.

Example:
  phonix highlight -p EH "I read the book yesterday."
  echo "The nation's station" | phonix highlight -p SH --format html`,
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().StringP("phoneme", "p", "", "phoneme to highlight, e.g. EH or \"EH - (e.g., red, bed)\"")
	highlightCmd.Flags().String("format", "", "output format: ansi, html or plain (default from config)")
	highlightCmd.MarkFlagRequired("phoneme")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	sym, _ := cmd.Flags().GetString("phoneme")
	target, err := phoneme.Parse(sym)
	if err != nil {
		return err
	}

	text, err := readText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	hc := e.cfg.Highlight
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		hc.Format = f
	}
	r, err := render.ForFormat(hc.Format, hc.Foreground, hc.Background, hc.Bold)
	if err != nil {
		return err
	}

	dict, err := e.loadDictionary(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; printing text unhighlighted\n", err)
	}

	h := highlight.New(dict, nlp.NewProseTagger(),
		highlight.WithMetrics(observe.Default()),
		highlight.WithLogger(e.logger),
	)
	res, err := h.Highlight(cmd.Context(), text, target)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Render(res.Units, r))
	e.logger.Debug("highlighted",
		"phoneme", target,
		"words", res.Words,
		"highlighted", res.Highlighted,
		"misses", res.Misses,
	)
	return nil
}

// readText joins args, or reads all of in when there are none.
func readText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text given")
	}
	return text, nil
}
