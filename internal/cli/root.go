// Package cli implements the recordvault CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmccarty/recordvault/internal/config"
	"github.com/kmccarty/recordvault/internal/model"
	"github.com/kmccarty/recordvault/internal/vault"
)

var (
	cfgFile   string
	rootDir   string
	principal string
	verbose   bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "recordvault",
	Short: "File-backed record store for agent memories and prompts",
	Long: "A file-backed record store: one JSON file per record, substring search\n" +
		"with relevance scoring, per-record access control, and opportunistic\n" +
		"compression of large content.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: ./config.yaml or ~/.config/recordvault/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Records root directory")
	RootCmd.PersistentFlags().StringVarP(&principal, "as", "a", "", "Principal performing the operation (default \"system\")")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openVault() (*vault.Vault, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if rootDir != "" {
		cfg.Root = rootDir
	}
	if principal != "" {
		cfg.Principal = principal
	}

	v, err := vault.New(vault.Config{
		Root:        cfg.Root,
		Profile:     model.Profile(cfg.Profile),
		SealKey:     cfg.SealKey,
		DefaultDeny: cfg.DefaultDeny,
		Threshold:   cfg.Threshold,
		Logger:      newLogger(),
	})
	if err != nil {
		return nil, nil, err
	}
	return v, cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
