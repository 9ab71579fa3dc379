package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/leocov-dev/packlaunch/launcher"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search installed and available packs by name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := loadApp()
		results, err := a.registry.Find(ctx, strings.Join(args, " "))
		if err != nil {
			cmdshared.Exitln(err)
		}
		if len(results) == 0 {
			fmt.Println("No packs found")
			return
		}
		for _, p := range results {
			fmt.Printf("%s %s\n", cyan(launcher.DisplayName(p)), p.ManifestURL)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
