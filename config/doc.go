// Package config resolves the application configuration from layered
// property sources using Viper.
//
// Precedence, highest first:
//   - command-line options (--server.port=9090)
//   - environment variables (SPRINGLAB_SERVER_PORT=9090)
//   - profile files (application-<profile>.yaml) for each profiles.active entry
//   - the application file (application.yaml / .yml / .json / .toml)
//   - built-in defaults
//
// The application file is optional. It is searched in ".", "./config" and
// "/etc/springlab" unless --config=<path> names one explicitly, in which case
// it must exist.
//
// # Loading
//
//	args := config.ParseArguments(os.Args[1:])
//	cfg, err := config.Load(args)
//	if err != nil {
//	    return err
//	}
//
// # Hot Reloading
//
//	config.Watch(cfg, func(next *config.Config, err error) {
//	    // react to the new configuration
//	})
//
// Loaded configurations are validated; failures wrap ErrInvalidConfig.
package config
