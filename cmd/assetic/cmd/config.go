package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/oneconcern/assetic/pkg/dlogger"
	"github.com/oneconcern/assetic/pkg/manifest"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/oneconcern/assetic/pkg/placeholder"
	"github.com/oneconcern/assetic/pkg/static"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configName = "assetic"
	envPrefix  = "ASSETIC"
	envConfig  = envPrefix + "_CONFIG"

	keyAppRoot      = "app_root"
	keyConfigDir    = "config_dir"
	keyWebroot      = "webroot"
	keyLogLevel     = "loglevel"
	keyVerbose      = "verbose"
	keyNoColor      = "no_color"
	keyBowerPath    = "assetic.path.bower"
	keyNpmPath      = "assetic.path.npm"
	keyPlaceholders = "assetic.placeholders"
	keyPlugins      = "plugins"
	keyPluginDirs   = "plugin_dirs"
	keySkip         = "skip"
)

// configKeys may all be set from the environment, e.g. ASSETIC_WEBROOT or ASSETIC_ASSETIC_PATH_BOWER
var configKeys = []string{
	keyAppRoot, keyConfigDir, keyWebroot, keyLogLevel, keyVerbose, keyNoColor,
	keyBowerPath, keyNpmPath, keyPlaceholders, keyPlugins, keyPluginDirs, keySkip,
}

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	AppRoot    string            `json:"app_root" yaml:"app_root" mapstructure:"app_root"`
	ConfigDir  string            `json:"config_dir" yaml:"config_dir" mapstructure:"config_dir"`
	Webroot    string            `json:"webroot" yaml:"webroot" mapstructure:"webroot"`
	LogLevel   string            `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
	Verbose    bool              `json:"verbose,omitempty" yaml:"verbose,omitempty" mapstructure:"verbose"`
	NoColor    bool              `json:"no_color,omitempty" yaml:"no_color,omitempty" mapstructure:"no_color"`
	Assetic    AsseticConfig     `json:"assetic" yaml:"assetic" mapstructure:"assetic"`
	Plugins    []manifest.Plugin `json:"plugins,omitempty" yaml:"plugins,omitempty" mapstructure:"plugins"`
	PluginDirs []string          `json:"plugin_dirs,omitempty" yaml:"plugin_dirs,omitempty" mapstructure:"plugin_dirs"`
	Skip       []string          `json:"skip,omitempty" yaml:"skip,omitempty" mapstructure:"skip"`
}

// AsseticConfig holds the values of manifest placeholders
type AsseticConfig struct {
	Path struct {
		Bower string `json:"bower" yaml:"bower" mapstructure:"bower"`
		Npm   string `json:"npm" yaml:"npm" mapstructure:"npm"`
	} `json:"path" yaml:"path" mapstructure:"path"`

	// Placeholders are extra %name% placeholders. Names are lower-cased when read from a config file.
	Placeholders map[string]string `json:"placeholders,omitempty" yaml:"placeholders,omitempty" mapstructure:"-"`
}

func defaultConfig() CLIConfig {
	return CLIConfig{
		AppRoot:   ".",
		ConfigDir: model.DefaultConfigDir,
		Webroot:   "webroot",
		LogLevel:  dlogger.LogLevelWarn,
		Skip:      append([]string(nil), static.DefaultSkip...),
	}
}

// pluginDecodeHook accepts a plugin given as "name" or "name=path"
func pluginDecodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(manifest.Plugin{}) {
		return data, nil
	}
	name, pth, _ := strings.Cut(strings.TrimSpace(data.(string)), "=")
	return manifest.Plugin{Name: strings.TrimSpace(name), Path: strings.TrimSpace(pth)}, nil
}

func newConfig() (*CLIConfig, error) {
	var c CLIConfig
	err := viper.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		pluginDecodeHook,
	)))
	if err != nil {
		return nil, err
	}

	if raw := viper.Get(keyPlaceholders); raw != nil {
		placeholders, err := cast.ToStringMapStringE(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", keyPlaceholders, err)
		}
		if len(placeholders) > 0 {
			c.Assetic.Placeholders = placeholders
		}
	}

	if err := mergo.Merge(&c, defaultConfig()); err != nil {
		return nil, err
	}
	return &c, nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config = nil
	if err := bindFlags(); err != nil {
		wrapFatalln("binding flags", err)
	}

	switch {
	case asseticFlags.root.config != "":
		viper.SetConfigFile(asseticFlags.root.config)
	case os.Getenv(envConfig) != "":
		viper.SetConfigFile(os.Getenv(envConfig))
	default:
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.assetic")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	for _, key := range configKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			wrapFatalln("reading config file", err)
		}
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
		c := defaultConfig()
		config = &c
	}
}

func (c *CLIConfig) resolve(pth string) string {
	if pth == "" || filepath.IsAbs(pth) {
		return pth
	}
	return filepath.Join(c.AppRoot, pth)
}

func (c *CLIConfig) webrootPath() string {
	return c.resolve(c.Webroot)
}

func (c *CLIConfig) locateOptions() manifest.LocateOptions {
	opts := manifest.LocateOptions{
		AppRoot:    c.AppRoot,
		ConfigDir:  c.ConfigDir,
		Plugins:    make([]manifest.Plugin, 0, len(c.Plugins)),
		PluginDirs: make([]string, 0, len(c.PluginDirs)),
	}
	for _, p := range c.Plugins {
		p.Path = c.resolve(p.Path)
		opts.Plugins = append(opts.Plugins, p)
	}
	for _, dir := range c.PluginDirs {
		opts.PluginDirs = append(opts.PluginDirs, c.resolve(dir))
	}
	return opts
}

// placeholders known to manifests: the bower and npm paths, relative to the
// application root, and any extra configured value
func (c *CLIConfig) placeholders() map[string]string {
	values := make(map[string]string, len(c.Assetic.Placeholders)+2)
	for name, value := range c.Assetic.Placeholders {
		values[placeholder.Key(name)] = value
	}
	values[placeholder.Bower] = c.resolve(c.Assetic.Path.Bower)
	values[placeholder.Npm] = c.resolve(c.Assetic.Path.Npm)
	return values
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage the assetic CLI config.

Configuration holds the application layout (application root, web root,
plugins) and the values of manifest placeholders, which seldom change across runs.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current config",
	Long:  "Show the configuration in effect, after merging the config file, environment, flags and defaults.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		o, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file: " + used)
		}
		_, _ = cmd.OutOrStdout().Write(o)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
