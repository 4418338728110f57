package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/no111u3/automatic/internal/domain"
)

const (
	AppName        = "automatic"
	ConfigFileName = ".automatic"
	EnvPrefix      = "AUTOMATIC"
)

// Settings holds CLI defaults. Precedence, highest first: flags set on the
// command line, AUTOMATIC_* environment, config file, built-in defaults.
type Settings struct {
	Format      domain.OutputFormat
	Verbosity   domain.VerbosityLevel
	ItemTimeout time.Duration
	ConfigFile  string // file the settings were read from, empty when none
}

func DefaultSettings() Settings {
	return Settings{
		Format:      domain.FormatTUI,
		Verbosity:   domain.VerbosityNormal,
		ItemTimeout: 0,
	}
}

type LoadOptions struct {
	// ConfigFile is used exclusively when set and must exist.
	ConfigFile string
	// SearchPaths are looked up for .automatic.yaml when ConfigFile is empty.
	SearchPaths []string
	// Flags are bound by name: format, verbosity, item-timeout.
	Flags *pflag.FlagSet
}

func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("format", string(defaults.Format))
	v.SetDefault("verbosity", string(defaults.Verbosity))
	v.SetDefault("item_timeout", defaults.ItemTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range map[string]string{
			"format":       "format",
			"verbosity":    "verbosity",
			"item_timeout": "item-timeout",
		} {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	timeout, err := parseDuration(v.Get("item_timeout"))
	if err != nil {
		return nil, fmt.Errorf("item_timeout: %w", err)
	}

	return &Settings{
		Format:      domain.OutputFormat(v.GetString("format")),
		Verbosity:   domain.VerbosityLevel(v.GetString("verbosity")),
		ItemTimeout: timeout,
		ConfigFile:  v.ConfigFileUsed(),
	}, nil
}

// parseDuration accepts Go duration strings and plain integers as seconds.
func parseDuration(raw any) (time.Duration, error) {
	switch val := raw.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return val, nil
	case int:
		return time.Duration(val) * time.Second, nil
	case int64:
		return time.Duration(val) * time.Second, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	case string:
		if val == "" {
			return 0, nil
		}
		return time.ParseDuration(val)
	default:
		return 0, fmt.Errorf("unsupported value %v", raw)
	}
}
