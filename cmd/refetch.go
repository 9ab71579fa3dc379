package cmd

import (
	"context"
	"fmt"

	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/spf13/cobra"
)

// refetchCmd represents the refetch command
var refetchCmd = &cobra.Command{
	Use:   "refetch",
	Short: "Fetch every pack manifest again",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := loadApp()
		if err := a.registry.Refetch(ctx); err != nil {
			cmdshared.Exitln(err)
		}

		installed, err := a.registry.Installed(ctx)
		if err != nil {
			cmdshared.Exitln(err)
		}
		failed := 0
		for _, p := range installed {
			if p.IsPlaceholder() {
				failed++
			}
		}
		fmt.Printf("Refetched %d installed packs", len(installed))
		if failed > 0 {
			fmt.Printf(", %s could not be fetched", red(failed))
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(refetchCmd)
}
