package cmd

import (
	"fmt"
	"os"

	"github.com/curalinkai/curalink/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	endpointURL string
	configPath  string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "curalink",
	Short: "Chat with a medical knowledge assistant from the terminal",
	Long: `A terminal client for the CuraLink medical question answering service.

Conversations are kept as independent sessions stored in a local SQLite
database. Each question is sent together with the session's history and
the answer is shown with the sources it was drawn from.

Quick Start:
  curalink chat                         # Interactive chat
  curalink ask "What causes a fever?"   # One question, printed answer
  curalink list                         # List sessions
  curalink export --format md           # Export as Markdown

Configuration is read from flags, then CURALINK_ENDPOINT / CURALINK_DB,
then the config file, then built-in defaults.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration with flags applied last
func loadConfig() (internal.Config, internal.DataPaths, error) {
	paths, err := internal.DetectDataPaths()
	if err != nil {
		return internal.Config{}, paths, fmt.Errorf("failed to detect data paths: %w", err)
	}

	path := configPath
	if path == "" {
		path = paths.ConfigFile
	}
	cfg, err := internal.LoadConfig(path, paths)
	if err != nil {
		return cfg, paths, err
	}

	if storagePath != "" {
		cfg.Database = storagePath
	}
	if endpointURL != "" {
		cfg.Endpoint = endpointURL
	}
	if cfg.Verbose && !verbose {
		internal.SetVerbose(true)
	}
	return cfg, paths, nil
}

// openChat opens the session database and wires it to the answering service.
// The caller closes the returned store.
func openChat() (*internal.Chat, internal.KVStore, internal.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, cfg, err
	}

	kv, err := internal.OpenSQLiteKV(cfg.Database)
	if err != nil {
		return nil, nil, cfg, &internal.StorageError{Key: cfg.Database, Op: "open", Err: err}
	}
	internal.LogDebug("Using database %s and endpoint %s", cfg.Database, cfg.Endpoint)

	chat := internal.OpenChat(kv, internal.NewHTTPAnswerer(cfg.Endpoint, nil))
	return chat, kv, cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Path to the session database file")
	rootCmd.PersistentFlags().StringVar(&endpointURL, "endpoint", "", "Answering service URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
