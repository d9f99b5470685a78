package config

import (
	"fmt"
	"sort"
	"strings"
)

// outputFormats are the renderers the shell knows how to drive.
var outputFormats = map[string]bool{
	"table":    true,
	"csv":      true,
	"json":     true,
	"markdown": true,
}

// formatAliases map shorthand spellings to canonical format names. The
// shell accepts the same aliases at runtime.
var formatAliases = map[string]string{
	"md": "markdown",
}

// OutputFormats lists the accepted output_format values, sorted.
func OutputFormats() []string {
	formats := make([]string, 0, len(outputFormats))
	for f := range outputFormats {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Validate checks cross-field consistency after loading.
func (c *Config) Validate() error {
	format := strings.ToLower(c.OutputFormat)
	if canonical, ok := formatAliases[format]; ok {
		format = canonical
	}
	if !outputFormats[format] {
		return fmt.Errorf("unknown output format %q (valid: %s)",
			c.OutputFormat, strings.Join(OutputFormats(), ", "))
	}
	if c.Connection != "" {
		if _, ok := c.Connections[c.Connection]; !ok {
			return fmt.Errorf("default connection %q is not defined", c.Connection)
		}
	}
	for name, conn := range c.Connections {
		if conn.Dialect == "" {
			return fmt.Errorf("connection %q: dialect is required", name)
		}
		if conn.DSN == "" {
			return fmt.Errorf("connection %q: dsn is required", name)
		}
	}
	return nil
}
