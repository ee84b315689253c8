package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the alignment dictionary and fill the cache",
	Long: `Fetch and parse the alignment corpus and store the result in the
dictionary cache, so later runs start without downloading.

Use --refresh to discard the cached copy first.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Bool("refresh", false, "discard the cached dictionary and rebuild")
}

func runBuild(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	e, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	source := e.cfg.Corpus.Source
	if refresh && e.store != nil {
		if err := e.store.Clear(cmd.Context(), source); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
	}

	start := time.Now()
	dict, err := e.loadDictionary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source:  %s\n", source)
	fmt.Fprintf(out, "Entries: %d\n", dict.Len())
	fmt.Fprintf(out, "Elapsed: %s\n", time.Since(start).Round(time.Millisecond))

	if e.store == nil {
		fmt.Fprintln(out, "Cache:   off")
		return nil
	}
	entries, err := e.store.Sources(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Cached sources:")
	for _, c := range entries {
		fmt.Fprintf(out, "  %s (%d words, built %s)\n", c.Source, c.Entries, c.BuiltAt.Format(time.DateTime))
	}
	return nil
}
