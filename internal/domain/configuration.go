package domain

import "strings"

// Param is one auxiliary flag passed to the diff program
type Param struct {
	Flag  string `yaml:"flag"`
	Value string `yaml:"value"`
}

// Arg renders the parameter as a single argv entry.
// Single-letter flags are attached ("-U0"), long flags use "--flag=value".
func (p Param) Arg() string {
	if len(p.Flag) == 1 {
		return "-" + p.Flag + p.Value
	}
	if p.Value == "" {
		return "--" + p.Flag
	}
	return "--" + p.Flag + "=" + p.Value
}

// Configuration is one named combination of diff program flags
type Configuration struct {
	Algorithm string
	Params    []Param
}

// Args returns the argv passed to the diff program before the two file operands
func (c Configuration) Args() []string {
	args := make([]string, 0, 2+len(c.Params))
	if c.Algorithm != "" {
		args = append(args, "-a", c.Algorithm)
	}
	for _, p := range c.Params {
		args = append(args, p.Arg())
	}
	return args
}

// String returns the flags as they would be typed on a command line
func (c Configuration) String() string {
	return strings.Join(c.Args(), " ")
}

// Label derives a filesystem-safe name, e.g. "p_U0" for "-a p -U0"
func (c Configuration) Label() string {
	parts := make([]string, 0, 1+len(c.Params))
	if c.Algorithm != "" {
		parts = append(parts, c.Algorithm)
	}
	for _, p := range c.Params {
		parts = append(parts, p.Flag+p.Value)
	}
	label := SanitizeName(strings.Join(parts, "_"))
	if label == "" {
		return "default"
	}
	return label
}

// SanitizeName replaces every byte outside [A-Za-z0-9._-] with '_'
func SanitizeName(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
