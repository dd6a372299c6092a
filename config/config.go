package config

type Config struct {
	Name                  string `yaml:"name"`
	HistorySize           int    `yaml:"history_size"`
	OmitHistory           bool   `yaml:"omit_history"`
	DisableBackup         bool   `yaml:"disable_backup"`
	NoColor               bool   `yaml:"no_color"`
	MaxDiffBytes          int    `yaml:"max_diff_bytes"`
	ContextLines          int    `yaml:"context_lines"`
	InteractivePrompt     string `yaml:"interactive_prompt"`
	InteractiveTerminator string `yaml:"interactive_terminator"`
	Debug                 bool   `yaml:"debug"`
}
