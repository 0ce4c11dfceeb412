package cmd

import (
	"fmt"
	"os"
	"time"

	"jishodash/lib/scrapers/jisho"
	"jishodash/services/words"

	"github.com/spf13/cobra"
)

var scrapePages int
var scrapePageDir string
var scrapeBaseUrl string
var scrapeDelay time.Duration

func init() {
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", 172, "number of search result pages to fetch")
	scrapeCmd.Flags().StringVar(&scrapePageDir, "page-dir", "jisho_pages", "directory to cache raw pages in")
	scrapeCmd.Flags().StringVar(&scrapeBaseUrl, "base-url", jisho.DefaultBaseUrl, "search url to paginate")
	scrapeCmd.Flags().DurationVar(&scrapeDelay, "delay", 2*time.Second, "pause between page fetches")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetches jisho.org search pages and stores every sentence-bearing entry.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store, database := openStore(cfg)
		defer database.Close()

		client, err := jisho.NewClient(jisho.ClientOptions{
			BaseUrl: scrapeBaseUrl,
			PageDir: scrapePageDir,
			Delay:   scrapeDelay,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		err = words.Scrape(cmd.Context(), store, client, scrapePages)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
