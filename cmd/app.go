package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/leocov-dev/packlaunch/config"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/leocov-dev/packlaunch/internal/cmdshared"
	"github.com/leocov-dev/packlaunch/launcher"
	"github.com/leocov-dev/packlaunch/sources"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// app wires the launcher components from the configuration.
type app struct {
	cfg      *config.Config
	registry *launcher.Registry
	syncer   *launcher.Syncer
	builder  *launcher.CommandBuilder
}

func loadApp() *app {
	file := viper.GetString("config")
	if file == "" {
		var err error
		file, err = config.DefaultFile()
		if err != nil {
			cmdshared.Exitln(err)
		}
	}
	cfg, err := config.Load(afero.NewOsFs(), file)
	if err != nil {
		cmdshared.Exitf("Failed to load configuration %s: %v\n", file, err)
	}

	logger := log.Default()
	fetcher := core.NewHTTPFetcher(cfg.HTTPTimeout())
	downloader := core.NewDownloader(fetcher)
	downloader.Retries = cfg.SyncRetries()
	downloader.Logger = logger
	bulk := &core.BulkSyncer{Downloader: downloader, Workers: cfg.SyncWorkers(), Logger: logger}

	overrides, err := sources.LoadOverrides(cfg.OverridesFile())
	if err != nil {
		cmdshared.Exitf("Failed to load library overrides: %v\n", err)
	}
	syncer := launcher.NewSyncer(launcher.Layout{Root: cfg.LauncherDir()}, bulk, fetcher)
	syncer.Overrides = overrides
	syncer.Logger = logger

	resolver := &sources.PackResolver{
		Modrinth: sources.NewModrinthAPIResolver(fetcher.Client),
		Logger:   logger,
	}
	registry := launcher.NewRegistry(cfg, launcher.ResolverSource{Fetcher: fetcher, Resolver: resolver})
	registry.Logger = logger

	return &app{
		cfg:      cfg,
		registry: registry,
		syncer:   syncer,
		builder: &launcher.CommandBuilder{
			Java: launcher.JavaOptions{
				Path:     cfg.JavaPath(),
				MinRAMMB: cfg.JavaMinRAM(),
				MaxRAMMB: cfg.JavaMaxRAM(),
				Flags:    cfg.JavaFlags(),
			},
			LauncherVersion: config.Version,
			Logger:          logger,
		},
	}
}

// installedPack resolves the pack named by args, or asks the user to pick an
// installed pack.
func (a *app) installedPack(ctx context.Context, args []string) *core.ModPack {
	if len(args) > 0 {
		pack, ok, err := a.registry.Lookup(ctx, args[0])
		if err != nil {
			cmdshared.Exitln(err)
		}
		if !ok {
			cmdshared.Exitf("Pack %s is not installed\n", args[0])
		}
		return pack
	}

	installed, err := a.registry.Installed(ctx)
	if err != nil {
		cmdshared.Exitln(err)
	}
	packs := installed[:0:0]
	for _, p := range installed {
		if !p.IsPlaceholder() {
			packs = append(packs, p)
		}
	}
	if len(packs) == 0 {
		cmdshared.Exitln("No installed packs, install one first")
	}
	pack, err := cmdshared.ChoosePack("Choose a pack:", packs, launcher.DisplayName)
	if err != nil {
		cmdshared.Exitln(err)
	}
	if pack == nil {
		cmdshared.Exitln("Cancelled!")
	}
	return pack
}

// runMode reads the mode flag of sync and launch.
func runMode(cmd *cobra.Command) core.RunMode {
	raw, _ := cmd.Flags().GetString("mode")
	mode, err := core.ParseRunMode(raw)
	if err != nil {
		cmdshared.Exitln(err)
	}
	return mode
}

// syncPack syncs a pack with a progress bar.
func (a *app) syncPack(ctx context.Context, pack *core.ModPack, mode core.RunMode) *launcher.Prepared {
	bar := cmdshared.NewProgressBar(pack.GetPackName())
	prep, err := a.syncer.Sync(ctx, pack, mode, core.NewProgress(bar.Sink()))
	bar.Finish(err == nil)
	if err != nil {
		cmdshared.Exitf("%s Failed to sync %s: %v\n", red("✗"), pack.GetPackName(), err)
	}
	fmt.Printf("%s Synced %s (%s files updated)\n", green("✓"), cyan(pack.GetPackName()), yellow(prep.Updated))
	return prep
}
