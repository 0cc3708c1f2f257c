package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// reader reads typed values and records conversion failures instead of
// silently falling back to zero values.
type reader struct {
	v    *viper.Viper
	errs []error
}

func (r *reader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s: %v", key, err))
}

func (r *reader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, errors.Join(r.errs...))
}

// stringOr returns string from config or default value
func (r *reader) stringOr(key, defaultValue string) string {
	if r.v.IsSet(key) {
		return r.v.GetString(key)
	}
	return defaultValue
}

// intOr returns int from config or default value
func (r *reader) intOr(key string, defaultValue int) int {
	if !r.v.IsSet(key) {
		return defaultValue
	}
	n, err := cast.ToIntE(r.v.Get(key))
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return n
}

// int64Or returns int64 from config or default value
func (r *reader) int64Or(key string, defaultValue int64) int64 {
	if !r.v.IsSet(key) {
		return defaultValue
	}
	n, err := cast.ToInt64E(r.v.Get(key))
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return n
}

// float64Or returns float64 from config or default value
func (r *reader) float64Or(key string, defaultValue float64) float64 {
	if !r.v.IsSet(key) {
		return defaultValue
	}
	f, err := cast.ToFloat64E(r.v.Get(key))
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return f
}

// boolOr returns bool from config or default value
func (r *reader) boolOr(key string, defaultValue bool) bool {
	if !r.v.IsSet(key) {
		return defaultValue
	}
	b, err := cast.ToBoolE(r.v.Get(key))
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return b
}

// durationOr returns duration from config or default value
func (r *reader) durationOr(key string, defaultValue time.Duration) time.Duration {
	if !r.v.IsSet(key) {
		return defaultValue
	}
	d, err := cast.ToDurationE(r.v.Get(key))
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return d
}

// stringSliceOr accepts lists from files and comma separated strings from
// env vars and command-line options.
func (r *reader) stringSliceOr(key string, defaultValue []string) []string {
	if !r.v.IsSet(key) {
		return defaultValue
	}
	raw := r.v.Get(key)
	if s, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	out, err := cast.ToStringSliceE(raw)
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return out
}

// stringMap returns a string map, empty when unset.
func (r *reader) stringMap(key string) map[string]string {
	return r.v.GetStringMapString(key)
}
