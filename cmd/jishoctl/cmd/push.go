package cmd

import (
	"fmt"
	"os"

	"jishodash/lib/timezone"
	"jishodash/services/words"

	"github.com/spf13/cobra"
)

var pushDate string

func init() {
	pushCmd.Flags().StringVar(&pushDate, "date", "", "calendar date (YYYY-MM-DD, defaults to today in JST)")
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Pushes the daily payload to the TRMNL display API.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store, database := openStore(cfg)
		defer database.Close()

		apiKey := cfg.Trmnl.ApiKey
		if apiKey == "" {
			apiKey = os.Getenv("TRMNL_PLUGIN_API_KEY")
		}
		historyFile := cfg.Trmnl.HistoryFile
		if historyFile == "" {
			historyFile = "data/trmnl.json"
		}

		date := pushDate
		if date == "" {
			date = timezone.Today()
		}

		publisher := words.NewPublisher(store, apiKey, historyFile)
		err := publisher.PublishDaily(cmd.Context(), date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
