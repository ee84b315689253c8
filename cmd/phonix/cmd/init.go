package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/phonix/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize phonix configuration",
	Long: `Write a config.yaml with the default settings to your config directory.

The file selects the alignment corpus, the dictionary cache location, the
highlight colours and the log level.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	dir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'phonix build' to download the alignment dictionary")
	fmt.Fprintln(out, "  2. Run 'phonix highlight -p EH \"I read the book yesterday.\"'")
	return nil
}
