package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SPRINGLAB"
	// FileName is the base name of the application file.
	FileName = "application"
	// LocationOption names the option selecting an explicit config file.
	LocationOption = "config"
)

// ErrInvalidConfig is returned when the resolved configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// SearchPaths are the directories searched for the application file.
var SearchPaths = []string{".", "./config", "/etc/springlab"}

// Config represents the resolved configuration.
type Config struct {
	AppName    string      `validate:"required"`
	RunMode    string      `validate:"oneof=debug release test"`
	Profiles   []string    `validate:"dive,required"`
	Watch      bool        `validate:"-"`
	Banner     *Banner     `validate:"required"`
	Server     *Server     `validate:"required"`
	Management *Management `validate:"required"`
	Logger     *Logger     `validate:"required"`
	Observes   *Observes   `validate:"required"`
	Container  *Container  `validate:"required"`
	Monitor    *Monitor    `validate:"required"`
	Data       *Data       `validate:"required"`
	Consul     *Consul     `validate:"required"`

	// File is the application file that was read, empty when none was found.
	File      string       `validate:"-"`
	Arguments Arguments    `validate:"-"`
	Viper     *viper.Viper `validate:"-"`
}

var validate = validator.New()

// Load resolves the configuration from every property source.
func Load(args Arguments) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit, _ := args.OptionValue(LocationOption)
	file, err := readApplicationFile(v, explicit)
	if err != nil {
		return nil, err
	}

	for name, values := range args.Options {
		if name == LocationOption {
			continue
		}
		v.Set(name, strings.Join(values, ","))
	}

	r := &reader{v: v}
	profiles := r.stringSliceOr("profiles.active", nil)
	for _, profile := range profiles {
		if err := mergeProfileFile(v, file, profile); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		AppName:    r.stringOr("app_name", "springlab"),
		RunMode:    r.stringOr("run_mode", "release"),
		Profiles:   profiles,
		Watch:      r.boolOr("config.watch", false),
		Banner:     getBannerConfig(r),
		Server:     getServerConfig(r),
		Management: getManagementConfig(r),
		Logger:     getLoggerConfig(r),
		Observes:   getObservesConfig(r),
		Container:  getContainerConfig(r),
		Monitor:    getMonitorConfig(r),
		Data:       getDataConfig(r),
		Consul:     getConsulConfig(r),
		File:       file,
		Arguments:  args,
		Viper:      v,
	}

	if err := r.err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// readApplicationFile reads the explicit file, or searches for the default
// one. A missing default file is not an error.
func readApplicationFile(v *viper.Viper, explicit string) (string, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName(FileName)
	for _, p := range SearchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// mergeProfileFile merges application-<profile>.<ext> when it exists.
func mergeProfileFile(v *viper.Viper, baseFile, profile string) error {
	pv := viper.New()
	name := FileName + "-" + profile

	if baseFile != "" {
		ext := filepath.Ext(baseFile)
		path := filepath.Join(filepath.Dir(baseFile), name+ext)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		pv.SetConfigFile(path)
	} else {
		pv.SetConfigName(name)
		for _, p := range SearchPaths {
			pv.AddConfigPath(p)
		}
	}

	if err := pv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read profile %q config: %w", profile, err)
	}
	return v.MergeConfigMap(pv.AllSettings())
}

// Address returns the host:port the server binds to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProfileActive reports whether profile is among the active profiles.
func (c *Config) IsProfileActive(profile string) bool {
	for _, p := range c.Profiles {
		if p == profile {
			return true
		}
	}
	return false
}
