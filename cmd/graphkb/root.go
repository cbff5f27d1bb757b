// Package graphkb wires the knowledge graph export commands.
package graphkb

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/magsense/graphkb/pkg/config"
	"github.com/magsense/graphkb/pkg/corpus"
	"github.com/magsense/graphkb/pkg/driver"
	"github.com/magsense/graphkb/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "graphkb",
		Short: "GraphKB: knowledge base to property graph exporter",
		Long: `GraphKB exports a paper corpus and its ontology into a Neo4j property
graph. Papers, ontology terms and typed relationships become nodes and edges
with stable natural keys, so repeated exports converge instead of duplicating.

Exports can be previewed without touching the database, and restricted to a
subgraph by paper IDs and ontology categories.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize configuration
			initConfig()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.graphkb.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json, color)")
	rootCmd.PersistentFlags().String("creds", "", "path to Neo4j credentials file (KEY=VALUE lines)")
	rootCmd.PersistentFlags().String("kb-dir", "", "knowledge base root directory")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("database.creds_file", rootCmd.PersistentFlags().Lookup("creds"))
	viper.BindPFlag("corpus.dir", rootCmd.PersistentFlags().Lookup("kb-dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".graphkb" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".graphkb")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadApp assembles the pieces every subcommand starts from.
func loadApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	return cfg, log, nil
}

// confirm gates a destructive command. The flag skips the prompt; otherwise
// the command asks interactively and anything but an explicit "yes" is a
// refusal.
func confirm(cmd *cobra.Command, prompt string, flagged bool) bool {
	if flagged {
		return true
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

// newConnector resolves credentials and builds the Neo4j connector.
// Explicit config values win; the credentials file only fills the blanks.
func newConnector(cfg *config.Config, log *slog.Logger) (driver.Connector, error) {
	creds := driver.Credentials{
		URI:      cfg.Database.URI,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	}
	if creds.Validate() != nil {
		loaded, err := driver.LoadCredentials(cfg.Database.CredsFile)
		if err != nil {
			return nil, err
		}
		if creds.URI == "" {
			creds.URI = loaded.URI
		}
		if creds.Username == "" {
			creds.Username = loaded.Username
		}
		if creds.Password == "" {
			creds.Password = loaded.Password
		}
		if creds.Database == "" {
			creds.Database = loaded.Database
		}
	}
	return driver.NewNeo4jConnector(creds, log)
}

// connectorFactory is swapped out in tests.
var connectorFactory = func(cfg *config.Config, log *slog.Logger) (driver.Connector, error) {
	return newConnector(cfg, log)
}

func newStore(cfg *config.Config, log *slog.Logger) *corpus.Store {
	return corpus.NewStore(cfg.Corpus.Dir, log)
}
