package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // picker.timezone must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/datepicker"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/placement"
)

// EnvPrefix is the prefix of environment variables overriding the config file.
// Nested keys are separated by a double underscore: JALAALI_PICKER__MIN_YEAR.
const EnvPrefix = "JALAALI_"

// Config holds the application configuration
type Config struct {
	App     AppConfig     `koanf:"app"`
	Service ServiceConfig `koanf:"service"`
	Picker  PickerConfig  `koanf:"picker"`
}

// AppConfig holds the HTTP server settings
type AppConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	// MaxSessions caps the number of live server-side picker sessions
	MaxSessions int `koanf:"max_sessions" validate:"min=1"`
}

// ServiceConfig holds the process-level settings
type ServiceConfig struct {
	LogLevel    string `koanf:"log_level" validate:"oneof=trace debug info warn error fatal panic"`
	Development bool   `koanf:"development"`
}

// PickerConfig holds the defaults applied to every picker instance
type PickerConfig struct {
	MinYear              int                  `koanf:"min_year"`
	MaxYear              int                  `koanf:"max_year" validate:"gtefield=MinYear"`
	EnableYearSelection  bool                 `koanf:"enable_year_selection"`
	EnableYearNavigation bool                 `koanf:"enable_year_navigation"`
	ShowTime             bool                 `koanf:"show_time"`
	Disabled             bool                 `koanf:"disabled"`
	Placeholder          string               `koanf:"placeholder"`
	Timezone             string               `koanf:"timezone" validate:"required"`
	DigitStyle           constants.DigitStyle `koanf:"digit_style" validate:"digit_style"`
	GuardWindow          time.Duration        `koanf:"guard_window" validate:"gte=0"`
	ListenerDelay        time.Duration        `koanf:"listener_delay" validate:"gte=0"`
	DismissDelay         time.Duration        `koanf:"dismiss_delay" validate:"gte=0"`
	Placement            placement.Options    `koanf:"placement"`
}

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("digit_style", func(fl validator.FieldLevel) bool {
		return constants.DigitStyle(fl.Field().String()).IsValid()
	}); err != nil {
		panic(err)
	}
	return v
}

// defaults mirrors the stock picker options so the file only needs overrides.
func defaults() map[string]any {
	p := datepicker.DefaultOptions()
	return map[string]any{
		"app.host":             "",
		"app.port":             8080,
		"app.shutdown_timeout": 10 * time.Second,
		"app.max_sessions":     1000,

		"service.log_level":   "info",
		"service.development": false,

		"picker.min_year":               p.MinYear,
		"picker.max_year":               p.MaxYear,
		"picker.enable_year_selection":  p.EnableYearSelection,
		"picker.enable_year_navigation": p.EnableYearNavigation,
		"picker.show_time":              p.ShowTime,
		"picker.disabled":               p.Disabled,
		"picker.placeholder":            p.Placeholder,
		"picker.timezone":               "Asia/Tehran",
		"picker.digit_style":            string(p.DigitStyle),
		"picker.guard_window":           p.GuardWindow,
		"picker.listener_delay":         p.ListenerDelay,
		"picker.dismiss_delay":          p.DismissDelay,

		"picker.placement.gap":                    p.Placement.Gap,
		"picker.placement.margin":                 p.Placement.Margin,
		"picker.placement.width":                  p.Placement.Width,
		"picker.placement.max_height":             p.Placement.MaxHeight,
		"picker.placement.year_picker_max_height": p.Placement.YearPickerMaxHeight,
	}
}

// envKey maps JALAALI_PICKER__MIN_YEAR to picker.min_year.
func envKey(k, v string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), v
}

// Load reads defaults, then the TOML file at path (skipped when path is
// empty), then JALAALI_ environment variables, and validates the result.
// PORT, when set, overrides app.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{Prefix: EnvPrefix, TransformFunc: envKey}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("PORT must be a valid number: %w", err)
		}
		if err := k.Set("app.port", port); err != nil {
			return nil, fmt.Errorf("failed to apply PORT: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate runs the struct rules and the cross-field checks, reporting every failure at once.
func validate(cfg *Config) error {
	var result *multierror.Error

	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				field := strings.TrimPrefix(fe.Namespace(), "Config.")
				if fe.Tag() == "digit_style" {
					result = multierror.Append(result, fmt.Errorf("%s: %q is not one of %s", field, fe.Value(), constants.DigitStyleNames()))
					continue
				}
				result = multierror.Append(result, fmt.Errorf("%s: failed %q validation (value %v)", field, fe.Tag(), fe.Value()))
			}
		} else {
			result = multierror.Append(result, err)
		}
	}

	if cfg.Picker.MinYear < jalaali.MinSupportedYear || cfg.Picker.MaxYear >= jalaali.MaxSupportedYear {
		result = multierror.Append(result, fmt.Errorf("picker year range [%d, %d] must lie within [%d, %d)",
			cfg.Picker.MinYear, cfg.Picker.MaxYear, jalaali.MinSupportedYear, jalaali.MaxSupportedYear))
	}

	if cfg.Picker.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Picker.Timezone); err != nil {
			result = multierror.Append(result, fmt.Errorf("picker.timezone: %w", err))
		}
	}

	return result.ErrorOrNil()
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// PickerOptions builds the options of a new picker instance from the configured defaults.
func (c *Config) PickerOptions(id string) (datepicker.Options, error) {
	loc, err := time.LoadLocation(c.Picker.Timezone)
	if err != nil {
		return datepicker.Options{}, fmt.Errorf("picker.timezone: %w", err)
	}
	return datepicker.Options{
		ID:                   id,
		MinYear:              c.Picker.MinYear,
		MaxYear:              c.Picker.MaxYear,
		EnableYearSelection:  c.Picker.EnableYearSelection,
		EnableYearNavigation: c.Picker.EnableYearNavigation,
		ShowTime:             c.Picker.ShowTime,
		Disabled:             c.Picker.Disabled,
		Placeholder:          c.Picker.Placeholder,
		Location:             loc,
		DigitStyle:           c.Picker.DigitStyle,
		GuardWindow:          c.Picker.GuardWindow,
		ListenerDelay:        c.Picker.ListenerDelay,
		DismissDelay:         c.Picker.DismissDelay,
		Placement:            c.Picker.Placement,
	}, nil
}
