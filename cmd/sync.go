package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/leocov-dev/packlaunch/launcher"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [pack]",
	Short: "Download and verify every file of a pack",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a := loadApp()
		mode := runMode(cmd)
		pack := a.installedPack(ctx, args)
		a.syncPack(ctx, pack, mode)
	},
}

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:   "launch [pack]",
	Short: "Sync a pack and start the game",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a := loadApp()
		mode := runMode(cmd)
		pack := a.installedPack(ctx, args)
		prep := a.syncPack(ctx, pack, mode)

		command, err := a.builder.Build(prep, launcher.OfflineIdentity(a.cfg.UserName()))
		if err != nil {
			cmdshared.Exitln(err)
		}
		if viper.GetBool("launch.dry-run") {
			fmt.Println(command.String())
			return
		}

		fmt.Printf("Launching %s\n", cyan(pack.GetPackName()))
		l := &launcher.ExecLauncher{Wait: !viper.GetBool("launch.detach")}
		if err := launcher.Launch(ctx, l, command); err != nil {
			cmdshared.Exitln(err)
		}
	},
}

// modeFlags are shared by sync and launch.
func modeFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("mode", pflag.ExitOnError)
	flags.StringP("mode", "m", "client", "The side to sync for, client or server")
	return flags
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(launchCmd)

	syncCmd.Flags().AddFlagSet(modeFlags())
	launchCmd.Flags().AddFlagSet(modeFlags())

	launchCmd.Flags().Bool("dry-run", false, "Print the launch command instead of running it")
	_ = viper.BindPFlag("launch.dry-run", launchCmd.Flags().Lookup("dry-run"))
	launchCmd.Flags().Bool("detach", false, "Return without waiting for the game to exit")
	_ = viper.BindPFlag("launch.detach", launchCmd.Flags().Lookup("detach"))
}
