package config

// Defaults for settings the config file may omit.
const (
	DefaultPrompt       = "%d> "
	DefaultHistoryFile  = "~/.sqlsh_history"
	DefaultOutputFormat = "table"
)

// defaults feeds the confmap provider as the lowest-precedence layer.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"prompt":           DefaultPrompt,
		"history_file":     DefaultHistoryFile,
		"smart_completion": true,
		"output_format":    DefaultOutputFormat,
		"verbose":          false,
	}
}
