package launcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/mitchellh/mapstructure"
)

const LauncherName = "packlaunch"

// JavaOptions configures the JVM.
type JavaOptions struct {
	Path     string
	MinRAMMB int
	MaxRAMMB int
	Flags    []string
}

// CommandBuilder assembles launch commands for prepared packs.
type CommandBuilder struct {
	Java            JavaOptions
	LauncherVersion string
	Features        core.Features
	Logger          *log.Logger
}

// ruledArgument is a structured argument guarded by rules. Value is a string
// or a list of strings.
type ruledArgument struct {
	Rules core.Rules  `mapstructure:"rules"`
	Value interface{} `mapstructure:"value"`
}

// Placeholders are the values substituted into ${name} argument templates.
func (b *CommandBuilder) Placeholders(p *Prepared, id Identity) map[string]string {
	userType := id.UserType
	if userType == "" {
		userType = "legacy"
	}
	return map[string]string{
		"auth_player_name":    id.Name,
		"auth_uuid":           id.UUID,
		"auth_access_token":   id.AccessToken,
		"auth_session":        fmt.Sprintf("token:%s:%s", id.AccessToken, id.UUID),
		"user_type":           userType,
		"user_properties":     "{}",
		"version_name":        p.Game.ID,
		"version_type":        p.Game.Type,
		"game_directory":      p.PackDir,
		"assets_root":         p.AssetsDir,
		"game_assets":         p.AssetsDir,
		"assets_index_name":   p.Game.AssetIndexName(),
		"natives_directory":   p.NativesDir,
		"launcher_name":       LauncherName,
		"launcher_version":    b.LauncherVersion,
		"classpath":           p.Classpath,
		"classpath_separator": p.Platform.PathListSeparator(),
		"library_directory":   p.LibrariesDir,
	}
}

// Build returns the command that starts the prepared pack.
func (b *CommandBuilder) Build(p *Prepared, id Identity) (Command, error) {
	if p.Game == nil || p.GameJar == nil {
		return Command{}, fmt.Errorf("pack %s is not synced", p.Pack.GetPackName())
	}
	replacer := newReplacer(b.Placeholders(p, id))

	java := b.Java.Path
	if java == "" {
		java = "java"
	}
	args := []string{java}
	args = append(args, b.memoryFlags(p.Pack)...)
	args = append(args, b.Java.Flags...)

	if p.Mode == core.ServerMode {
		args = append(args, "-Djava.library.path="+p.NativesDir, "-cp", p.Classpath, p.MainClass(), "nogui")
		return Command{Args: args, Dir: p.PackDir}, nil
	}

	args = append(args, b.clientFlags(p)...)

	jvm, err := b.jvmArgs(p)
	if err != nil {
		return Command{}, err
	}
	for _, a := range jvm {
		args = append(args, replacer.Replace(a))
	}

	args = append(args, p.MainClass())

	game, err := b.gameArgs(p)
	if err != nil {
		return Command{}, err
	}
	for _, a := range game {
		args = append(args, replacer.Replace(a))
	}
	return Command{Args: args, Dir: p.PackDir}, nil
}

func (b *CommandBuilder) memoryFlags(pack *core.ModPack) []string {
	minRAM, maxRAM := b.Java.MinRAMMB, b.Java.MaxRAMMB
	if packMin := pack.MinRAMGB * 1024; packMin > maxRAM {
		maxRAM = packMin
	}
	if minRAM <= 0 {
		minRAM = 512
	}
	if maxRAM < minRAM {
		maxRAM = minRAM
	}
	return []string{fmt.Sprintf("-Xms%dm", minRAM), fmt.Sprintf("-Xmx%dm", maxRAM)}
}

func (b *CommandBuilder) clientFlags(p *Prepared) []string {
	name := p.Pack.Name
	flags := []string{"-D" + LauncherName + ".window.title=" + name}
	if p.LogoPath != "" {
		flags = append(flags, "-D"+LauncherName+".window.icon="+p.LogoPath)
	}
	if p.Platform.IsMac() {
		flags = append(flags, "-Xdock:name="+name)
		if p.LogoPath != "" {
			flags = append(flags, "-Xdock:icon="+p.LogoPath)
		}
		flags = append(flags, "-Djdk.lang.Process.launchMechanism=FORK")
	}
	return flags
}

// jvmArgs returns the structured JVM arguments of the game and the loader,
// or the fixed natives and classpath flags when neither declares any.
func (b *CommandBuilder) jvmArgs(p *Prepared) ([]string, error) {
	var raw []interface{}
	if p.Game.Arguments != nil {
		raw = append(raw, p.Game.Arguments.JVM...)
	}
	if p.Loader != nil && p.Loader.Arguments != nil {
		raw = append(raw, p.Loader.Arguments.JVM...)
	}
	if len(raw) == 0 {
		return []string{"-Djava.library.path=${natives_directory}", "-cp", "${classpath}"}, nil
	}
	return b.expand(p.Platform, raw)
}

// gameArgs picks the game argument template. Legacy loader arguments
// replace the game's, structured loader arguments are appended.
func (b *CommandBuilder) gameArgs(p *Prepared) ([]string, error) {
	var args []string
	switch {
	case p.Loader != nil && p.Loader.GameArguments != "":
		args = strings.Fields(p.Loader.GameArguments)
	case p.Game.MinecraftArguments != "":
		args = strings.Fields(p.Game.MinecraftArguments)
	case p.Game.Arguments != nil:
		expanded, err := b.expand(p.Platform, p.Game.Arguments.Game)
		if err != nil {
			return nil, err
		}
		args = expanded
	}
	if p.Loader != nil && p.Loader.Arguments != nil {
		expanded, err := b.expand(p.Platform, p.Loader.Arguments.Game)
		if err != nil {
			return nil, err
		}
		args = append(args, expanded...)
	}
	return args, nil
}

// expand flattens structured arguments, dropping entries whose rules do
// not allow the platform.
func (b *CommandBuilder) expand(platform core.Platform, raw []interface{}) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		var arg ruledArgument
		if err := mapstructure.Decode(item, &arg); err != nil {
			return nil, fmt.Errorf("invalid launch argument %v: %w", item, err)
		}
		if !arg.Rules.Allows(platform, b.Features) {
			continue
		}
		switch v := arg.Value.(type) {
		case string:
			out = append(out, v)
		case []interface{}:
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("invalid launch argument value %v", e)
				}
				out = append(out, s)
			}
		default:
			b.logger().Warn("ignoring launch argument without value", "arg", item)
		}
	}
	return out, nil
}

// newReplacer substitutes ${name} for every known placeholder. Unknown
// placeholders are left as they are.
func newReplacer(values map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "${"+k+"}", values[k])
	}
	return strings.NewReplacer(pairs...)
}

func (b *CommandBuilder) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}
