package config

import (
	"sort"
	"strings"
)

// Arguments holds the raw process arguments split into option and
// non-option arguments.
//
// An option argument has the form --name=value or --name. Everything else,
// including malformed options such as "--" or "--=value", is a non-option
// argument. No argument is ever rejected.
type Arguments struct {
	Source     []string
	Options    map[string][]string
	NonOptions []string
}

// ParseArguments splits raw process arguments.
func ParseArguments(raw []string) Arguments {
	args := Arguments{
		Source:  append([]string(nil), raw...),
		Options: make(map[string][]string),
	}

	for _, arg := range raw {
		name, value, ok := parseOption(arg)
		if !ok {
			args.NonOptions = append(args.NonOptions, arg)
			continue
		}
		args.Options[name] = append(args.Options[name], value)
	}
	return args
}

// parseOption parses --name=value and --name (value "true").
func parseOption(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "--") {
		return "", "", false
	}
	text := arg[2:]
	if i := strings.IndexByte(text, '='); i >= 0 {
		name, value = text[:i], text[i+1:]
	} else {
		name, value = text, "true"
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return strings.ToLower(name), value, true
}

// ContainsOption reports whether an option with the given name was passed.
func (a Arguments) ContainsOption(name string) bool {
	_, ok := a.Options[strings.ToLower(name)]
	return ok
}

// OptionValue returns the option values joined with commas.
func (a Arguments) OptionValue(name string) (string, bool) {
	values, ok := a.Options[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return strings.Join(values, ","), true
}

// OptionNames returns the sorted option names.
func (a Arguments) OptionNames() []string {
	names := make([]string, 0, len(a.Options))
	for name := range a.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
