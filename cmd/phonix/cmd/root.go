// Package cmd contains all CLI commands for phonix.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/config"
	"github.com/f3rmion/phonix/internal/nlp"
	"github.com/f3rmion/phonix/internal/observe"
	"github.com/f3rmion/phonix/internal/render"
	"github.com/f3rmion/phonix/internal/tui"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phonix",
	Short: "Highlight the letters that spell an English sound",
	Long: `phonix marks the letters of English text that spell a chosen phoneme.

Pronunciations come from the CMUdict SPHINX-40 letter/phoneme alignment,
refined by spelling-pattern rules (tion, igh, ea, doubled letters ...) and
part-of-speech aware heteronyms such as "read" (past tense).

Running 'phonix' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/phonix)")
	rootCmd.PersistentFlags().String("corpus", "", "alignment corpus URL or file (overrides config)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("corpus", rootCmd.PersistentFlags().Lookup("corpus"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the config directory and reads PHONIX_* env variables.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.ConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.SetDefault("config_dir", dir)
	}

	viper.SetEnvPrefix("PHONIX")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// runTUI launches the interactive application. Logs go to a file so they do
// not tear the alt screen.
func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(dir, "phonix.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	e, err := loadEnv(logFile)
	if err != nil {
		return err
	}
	defer e.Close()

	h := e.cfg.Highlight
	model := tui.New(tui.Options{
		Load: func(ctx context.Context) (*align.Dictionary, error) {
			return e.loadDictionary(ctx)
		},
		Tagger:   nlp.NewProseTagger(),
		Renderer: render.NewStyle(h.Foreground, h.Background, h.Bold),
		Metrics:  observe.Default(),
		Logger:   e.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
