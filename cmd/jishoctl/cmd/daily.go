package cmd

import (
	"fmt"
	"os"

	"jishodash/lib/scrapers/jisho"
	"jishodash/lib/timezone"
	"jishodash/services/words"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var dailyDate string

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "calendar date (YYYY-MM-DD, defaults to today in JST)")
	rootCmd.AddCommand(dailyCmd)
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Prints the four words selected for a date.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store, database := openStore(cfg)
		defer database.Close()

		date := dailyDate
		if date == "" {
			date = timezone.Today()
		}

		entries, err := words.SelectDaily(cmd.Context(), store, date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Word ID", "Word", "Meaning"})

		for _, entry := range entries {
			word := "?"
			blocks, err := jisho.ParseRepresentation(entry.RepresentationHTML)
			if err == nil {
				word = jisho.WordText(blocks)
			}
			meaning := ""
			gloss, err := jisho.ParseGloss(entry.WrapperHTML)
			if err == nil {
				meaning = gloss.Meaning
			}
			t.AppendRow(table.Row{entry.WordId, word, meaning})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
