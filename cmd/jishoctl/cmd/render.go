package cmd

import (
	"fmt"
	"os"

	"jishodash/services/words/render"

	"github.com/spf13/cobra"
)

var renderOutDir string

func init() {
	renderCmd.Flags().StringVar(&renderOutDir, "out", "www/img", "directory to write svg cards to")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders every stored entry to an svg card.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store, database := openStore(cfg)
		defer database.Close()

		err := render.All(cmd.Context(), store, renderOutDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
