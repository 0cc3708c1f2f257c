package config

import (
	"errors"

	"github.com/fsnotify/fsnotify"
)

// ErrNoConfigFile is returned by Watch when no application file was read.
var ErrNoConfigFile = errors.New("no config file to watch")

// Watch reloads the configuration whenever the application file changes
// and passes the result to fn. A reload that fails to load or validate is
// reported through err and the previous configuration stays in effect.
func Watch(cfg *Config, fn func(next *Config, err error)) error {
	if cfg == nil || cfg.Viper == nil || cfg.File == "" {
		return ErrNoConfigFile
	}

	cfg.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := Load(cfg.Arguments)
		fn(next, err)
	})
	cfg.Viper.WatchConfig()
	return nil
}
