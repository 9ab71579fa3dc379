package cmd

import (
	"context"
	"fmt"

	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/leocov-dev/packlaunch/launcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install [manifest URL]",
	Short: "Install a pack from its manifest URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := loadApp()

		if viper.GetBool("install.available") {
			if err := a.cfg.AddAvailableManifestURL(args[0]); err != nil {
				cmdshared.Exitln(err)
			}
		}
		if err := a.registry.Install(ctx, args[0]); err != nil {
			cmdshared.Exitf("Failed to install %s: %v\n", args[0], err)
		}

		pack, ok, err := a.registry.Lookup(ctx, args[0])
		if err != nil || !ok {
			fmt.Printf("Installed %s\n", args[0])
			return
		}
		if pack.IsPlaceholder() {
			fmt.Printf("Installed %s, but its manifest could not be fetched\n", yellow(launcher.DisplayName(pack)))
			return
		}
		fmt.Printf("Installed %s %s\n", cyan(pack.Name), pack.Version)
	},
}

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:     "uninstall [pack]",
	Short:   "Remove a pack from the installed list",
	Aliases: []string{"remove", "rm"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := loadApp()
		pack := a.installedPack(ctx, args)

		if !cmdshared.Confirm(fmt.Sprintf("Uninstall %s?", launcher.DisplayName(pack)), false) {
			cmdshared.Exitln("Cancelled!")
		}
		if err := a.registry.Uninstall(ctx, pack.ManifestURL); err != nil {
			cmdshared.Exitln(err)
		}
		fmt.Printf("Uninstalled %s, files in %s were kept\n", cyan(launcher.DisplayName(pack)), a.syncer.Layout.PackDir(pack))
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)

	installCmd.Flags().Bool("available", false, "Also add the URL to the available pack list")
	_ = viper.BindPFlag("install.available", installCmd.Flags().Lookup("available"))
}
