// Package config loads server settings from flags, PLANTILLAS_* environment
// variables and an optional plantillas.yaml file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "plantillas"
	configName = "plantillas"
)

// Config is the resolved server configuration.
type Config struct {
	HTTP       HTTPConfig
	Database   DatabaseConfig
	Log        LogConfig
	Catalogs   CatalogConfig
	Plantillas PlantillasConfig
	Theme      ThemeConfig
	// File is the configuration file that was read, if any.
	File string
}

type HTTPConfig struct {
	Addr            string
	CORSOrigins     []string
	AssetPrefix     string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	DSN string
}

type LogConfig struct {
	Level  string
	Format string
}

type CatalogConfig struct {
	RefreshSchedule string
	SeedSamples     bool
	File            string
}

type PlantillasConfig struct {
	Dir         string
	SeedSamples bool
}

type ThemeConfig struct {
	Name     string
	Variant  string
	Manifest string
}

// Flags registers the server flags on fs and returns it.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a plantillas.yaml configuration file")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("dsn", "file:plantillas.db?_foreign_keys=on", "SQLite DSN")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "text", "log format (text, json)")
	fs.String("plantillas-dir", "", "directory with JSON/YAML plantillas to import at start")
	fs.Bool("seed", false, "seed the bundled sample plantillas and catalogs")
	fs.String("theme", "", "theme name")
	fs.String("theme-variant", "", "theme variant")
	fs.String("theme-manifest", "", "path to a YAML theme manifest")
	return fs
}

var flagKeys = map[string]string{
	"addr":           "http.addr",
	"dsn":            "database.dsn",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"plantillas-dir": "plantillas.dir",
	"theme":          "theme.name",
	"theme-variant":  "theme.variant",
	"theme-manifest": "theme.manifest",
}

// Load parses args against Flags and merges env and file settings.
func Load(args []string) (Config, error) {
	fs := Flags("plantillas-server")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}
	return FromFlags(fs)
}

// FromFlags resolves the configuration using an already parsed flag set.
func FromFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %s: %w", flag, err)
				}
			}
		}
		if seed := fs.Lookup("seed"); seed != nil && seed.Changed {
			v.Set("plantillas.seed_samples", seed.Value.String() == "true")
			v.Set("catalogs.seed_samples", seed.Value.String() == "true")
		}
	}

	file := ""
	if fs != nil {
		file, _ = fs.GetString("config")
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config: %w", err)
		}
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			CORSOrigins:     v.GetStringSlice("http.cors_origins"),
			AssetPrefix:     v.GetString("http.asset_prefix"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("database.dsn"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Catalogs: CatalogConfig{
			RefreshSchedule: v.GetString("catalogs.refresh_schedule"),
			SeedSamples:     v.GetBool("catalogs.seed_samples"),
			File:            v.GetString("catalogs.file"),
		},
		Plantillas: PlantillasConfig{
			Dir:         v.GetString("plantillas.dir"),
			SeedSamples: v.GetBool("plantillas.seed_samples"),
		},
		Theme: ThemeConfig{
			Name:     v.GetString("theme.name"),
			Variant:  v.GetString("theme.variant"),
			Manifest: v.GetString("theme.manifest"),
		},
		File: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.asset_prefix", "/assets/plantillas")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.dsn", "file:plantillas.db?_foreign_keys=on")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("catalogs.refresh_schedule", "@every 10m")
	v.SetDefault("catalogs.seed_samples", false)
	v.SetDefault("plantillas.seed_samples", false)
}

// Validate checks settings that would otherwise fail late.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("config: http.addr is required")
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database.dsn is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if !strings.HasPrefix(c.HTTP.AssetPrefix, "/") {
		return fmt.Errorf("config: http.asset_prefix must start with '/', got %q", c.HTTP.AssetPrefix)
	}
	return nil
}
