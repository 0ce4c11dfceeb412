package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"jishodash/lib/configutil"
	configsqlite "jishodash/lib/configutil/sqlite"
	"jishodash/lib/telemetry"
	"jishodash/services/words"
	"jishodash/services/words/db"

	"github.com/spf13/cobra"
)

type TrmnlConfig struct {
	ApiKey      string `json:"api_key"`
	HistoryFile string `json:"history_file"`
}

type Config struct {
	Database configsqlite.Struct `json:"database"`
	Trmnl    TrmnlConfig         `json:"trmnl"`
}

var configPath string
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "jishoctl",
	Short: "jishoctl manages the daily words database: scraping, rendering and pushing.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.SetupSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config](configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read config:", err)
		os.Exit(1)
	}
	return cfg
}

func openStore(cfg Config) (words.Store, *sql.DB) {
	database, err := cfg.Database.OpenDB(db.Schema)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	return words.NewStore(database), database
}
