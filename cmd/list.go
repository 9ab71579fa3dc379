package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/leocov-dev/packlaunch/fileio"
	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/leocov-dev/packlaunch/launcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed and available packs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := loadApp()
		layout := a.syncer.Layout

		installed, err := a.registry.Installed(ctx)
		if err != nil {
			cmdshared.Exitln(err)
		}
		fmt.Println("Installed:")
		for _, p := range installed {
			fmt.Println("  " + describe(p, layout))
		}

		if viper.GetBool("list.installed") {
			return
		}
		available, err := a.registry.Available(ctx)
		if err != nil {
			cmdshared.Exitln(err)
		}
		fmt.Println("Available:")
		for _, p := range available {
			fmt.Printf("  %s %s\n", cyan(launcher.DisplayName(p)), p.Version)
		}
	},
}

func describe(p *core.ModPack, layout launcher.Layout) string {
	if p.IsPlaceholder() {
		return fmt.Sprintf("%s %s", cyan(launcher.DisplayName(p)), red("(manifest unavailable)"))
	}
	line := fmt.Sprintf("%s %s", cyan(p.Name), p.Version)
	state, err := fileio.LoadSyncState(layout.PackDir(p))
	if err != nil || state.PackVersion == "" {
		return line + " " + yellow("(not synced)")
	}
	if p.NewerThan(state.PackVersion) {
		line += " " + yellow("(update from "+state.PackVersion+")")
	}
	return line + ", synced " + humanize.Time(state.SyncedAt)
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("installed", "i", false, "Only list installed packs")
	_ = viper.BindPFlag("list.installed", listCmd.Flags().Lookup("installed"))
}
