package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var Version string

func SetVersion(version string) {
	Version = version
}

// FileName is the launcher configuration file, kept in the user config dir.
const FileName = "packlaunch.toml"

// Configuration keys.
const (
	KeyLauncherDir   = "launcher.dir"
	KeyJavaPath      = "java.path"
	KeyJavaMinRAM    = "java.min-ram"
	KeyJavaMaxRAM    = "java.max-ram"
	KeyJavaFlags     = "java.flags"
	KeySyncWorkers   = "sync.workers"
	KeySyncRetries   = "sync.retries"
	KeyHTTPTimeout   = "http.timeout"
	KeyOverridesFile = "sources.overrides-file"
	KeyInstalled     = "packs.installed"
	KeyAvailable     = "packs.available"
	KeyUserName      = "user.name"
)

// Config is the launcher configuration backed by a TOML file. It also
// persists the installed pack manifest URLs.
type Config struct {
	v    *viper.Viper
	fs   afero.Fs
	file string
}

// DefaultFile returns the configuration file location for the current user.
func DefaultFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "packlaunch", FileName), nil
}

// Load reads file from fs. A missing file yields the defaults.
func Load(fs afero.Fs, file string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(file)
	v.SetConfigType("toml")
	v.SetEnvPrefix("packlaunch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, file)

	exists, err := afero.Exists(fs, file)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return &Config{v: v, fs: fs, file: file}, nil
}

func setDefaults(v *viper.Viper, file string) {
	v.SetDefault(KeyLauncherDir, filepath.Join(filepath.Dir(file), "data"))
	v.SetDefault(KeyJavaPath, "java")
	v.SetDefault(KeyJavaMinRAM, 512)
	v.SetDefault(KeyJavaMaxRAM, 2048)
	v.SetDefault(KeyJavaFlags, []string{})
	v.SetDefault(KeySyncWorkers, 0)
	v.SetDefault(KeySyncRetries, 2)
	v.SetDefault(KeyHTTPTimeout, "60s")
	v.SetDefault(KeyInstalled, []string{})
	v.SetDefault(KeyAvailable, []string{})
	v.SetDefault(KeyUserName, "Player")
}

// Viper exposes the underlying store so command flags can be bound to it.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

func (c *Config) File() string {
	return c.file
}

// Save writes the configuration back to its file.
func (c *Config) Save() error {
	if err := c.fs.MkdirAll(filepath.Dir(c.file), os.ModePerm); err != nil {
		return err
	}
	return c.v.WriteConfigAs(c.file)
}

func (c *Config) LauncherDir() string {
	return c.v.GetString(KeyLauncherDir)
}

func (c *Config) JavaPath() string {
	return c.v.GetString(KeyJavaPath)
}

func (c *Config) JavaMinRAM() int {
	return c.v.GetInt(KeyJavaMinRAM)
}

func (c *Config) JavaMaxRAM() int {
	return c.v.GetInt(KeyJavaMaxRAM)
}

func (c *Config) JavaFlags() []string {
	return c.v.GetStringSlice(KeyJavaFlags)
}

// SyncWorkers is the download pool size, 0 meaning one based on the CPU
// count.
func (c *Config) SyncWorkers() int {
	return c.v.GetInt(KeySyncWorkers)
}

func (c *Config) SyncRetries() uint64 {
	r := c.v.GetInt(KeySyncRetries)
	if r < 0 {
		return 0
	}
	return uint64(r)
}

func (c *Config) HTTPTimeout() time.Duration {
	return c.v.GetDuration(KeyHTTPTimeout)
}

func (c *Config) OverridesFile() string {
	return c.v.GetString(KeyOverridesFile)
}

func (c *Config) UserName() string {
	return c.v.GetString(KeyUserName)
}

func (c *Config) InstalledManifestURLs() ([]string, error) {
	return c.v.GetStringSlice(KeyInstalled), nil
}

// SetInstalledManifestURLs replaces the installed list and saves the file.
func (c *Config) SetInstalledManifestURLs(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	c.v.Set(KeyInstalled, urls)
	return c.Save()
}

func (c *Config) AvailableManifestURLs() ([]string, error) {
	return c.v.GetStringSlice(KeyAvailable), nil
}

// AddAvailableManifestURL registers a manifest URL that can be installed.
func (c *Config) AddAvailableManifestURL(u string) error {
	if u == "" {
		return errors.New("empty manifest url")
	}
	urls := c.v.GetStringSlice(KeyAvailable)
	for _, existing := range urls {
		if existing == u {
			return nil
		}
	}
	c.v.Set(KeyAvailable, append(urls, u))
	return c.Save()
}
