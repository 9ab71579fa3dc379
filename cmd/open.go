package cmd

import (
	"context"
	"fmt"

	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [pack]",
	Short: "Open the website of a pack",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()
		pack := a.installedPack(context.Background(), args)
		if pack.WebsiteURL == "" {
			cmdshared.Exitf("Pack %s has no website\n", pack.Name)
		}
		fmt.Println("Opening " + pack.WebsiteURL)
		if err := open.Run(pack.WebsiteURL); err != nil {
			cmdshared.Exitf("Failed to open %s: %v\n", pack.WebsiteURL, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
