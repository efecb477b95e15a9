package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// storeFactory opens the store a command operates on. The returned func releases it.
type storeFactory func(cmd *cobra.Command) (catalog.Store, func(), error)

func NewRootCommand() *cobra.Command {
	return newRootCommand(openStoreFromFlags)
}

func newRootCommand(open storeFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Content project catalog CLI",
		Long: `Command line interface for the content project catalog.

Reads the same environment as catalog-server (STORE_TYPE, DATABASE_URL,
LOCAL_STORAGE_URL, API_URL, ...). A .env file in the current directory is
loaded first. Use --store remote to talk to a running server.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("store", "", "store type: memory, postgres, local or remote (default from env)")
	rootCmd.PersistentFlags().String("api-url", "", "catalog server URL for the remote store")
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(NewListCommand(open))
	rootCmd.AddCommand(NewGetCommand(open))
	rootCmd.AddCommand(NewCreateCommand(open))
	rootCmd.AddCommand(NewUpdateCommand(open))
	rootCmd.AddCommand(NewDeleteCommand(open))
	rootCmd.AddCommand(NewChannelsCommand())

	return rootCmd
}

func openStoreFromFlags(cmd *cobra.Command) (catalog.Store, func(), error) {
	opts := []config.Option{config.WithDotEnv(".env"), config.WithEnv()}
	if s, _ := cmd.Flags().GetString("store"); s != "" {
		opts = append(opts, config.WithStoreType(s))
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		opts = append(opts, config.WithAPIURL(u))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		cfg.LogLevel = "warn"
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(logger)
	logger.Debug("Opening store", "store_type", cfg.StoreType)

	store, cleanup, err := cfg.BuildStore(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return store, cleanup, nil
}
