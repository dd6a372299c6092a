package config

import (
	"github.com/kardolus/quickpatch/internal"
	"github.com/kardolus/quickpatch/internal/fsio"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
)

const (
	defaultName                  = "quickpatch"
	defaultHistorySize           = 25
	defaultMaxDiffBytes          = 1 << 20
	defaultContextLines          = 3
	defaultInteractivePrompt     = "diff[%counter]> "
	defaultInteractiveTerminator = "."
	configFileName               = "config.yaml"
)

type Store interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements Store interface
var _ Store = &FileIO{}

type FileIO struct {
	configFilePath string
	writer         fsio.Writer
}

func New() *FileIO {
	configPath, _ := getPath()

	return &FileIO{
		configFilePath: configPath,
		writer:         &fsio.RealWriter{},
	}
}

func (f *FileIO) WithConfigPath(configFilePath string) *FileIO {
	f.configFilePath = configFilePath
	return f
}

func (f *FileIO) Read() (Config, error) {
	return parseFile(f.configFilePath)
}

func (f *FileIO) ReadDefaults() Config {
	return Config{
		Name:                  defaultName,
		HistorySize:           defaultHistorySize,
		MaxDiffBytes:          defaultMaxDiffBytes,
		ContextLines:          defaultContextLines,
		InteractivePrompt:     defaultInteractivePrompt,
		InteractiveTerminator: defaultInteractiveTerminator,
	}
}

func (f *FileIO) Write(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.configFilePath), 0o755); err != nil {
		return err
	}

	return f.writer.WriteFile(f.configFilePath, data)
}

func getPath() (string, error) {
	configHome, err := internal.GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, configFileName), nil
}

func parseFile(fileName string) (Config, error) {
	var result Config

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, err
	}

	return result, nil
}
