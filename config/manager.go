package config

import (
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type Manager struct {
	configStore Store
	Config      Config
}

func NewManager(cs Store) *Manager {
	configuration := cs.ReadDefaults()

	userConfig, err := cs.Read()
	if err == nil {
		configuration = replaceByConfigFile(configuration, userConfig)
	}

	return &Manager{configStore: cs, Config: configuration}
}

// WithEnvironment overlays <NAME>_<YAML_TAG> environment variables, e.g.
// QUICKPATCH_HISTORY_SIZE, onto the current configuration.
func (c *Manager) WithEnvironment() *Manager {
	c.Config = replaceByEnvironment(c.Config)
	return c
}

// ShowConfig serializes the current configuration to a YAML string.
func (c *Manager) ShowConfig() (string, error) {
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// WriteHistorySize persists a new history size, keeping the rest of the
// user's file untouched.
func (c *Manager) WriteHistorySize(size int) error {
	userConfig, err := c.configStore.Read()
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	userConfig.HistorySize = size
	c.Config.HistorySize = size

	return c.configStore.Write(userConfig)
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	t := reflect.TypeOf(defaultConfig)
	vDefault := reflect.ValueOf(&defaultConfig).Elem()
	vUser := reflect.ValueOf(userConfig)

	for i := 0; i < t.NumField(); i++ {
		defaultField := vDefault.Field(i)
		userField := vUser.Field(i)

		switch defaultField.Kind() {
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Int:
			if userInt := int(userField.Int()); userInt != 0 {
				defaultField.SetInt(int64(userInt))
			}
		case reflect.Bool:
			defaultField.SetBool(userField.Bool())
		}
	}

	return defaultConfig
}

func replaceByEnvironment(configuration Config) Config {
	t := reflect.TypeOf(configuration)
	v := reflect.ValueOf(&configuration).Elem()

	prefix := strings.ToUpper(configuration.Name) + "_"
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "name" {
			continue
		}

		name := prefix + strings.ToUpper(tag)
		if value := os.Getenv(name); value != "" {
			field := v.Field(i)

			// Unparseable values keep the current setting.
			switch field.Kind() {
			case reflect.String:
				field.SetString(value)
			case reflect.Int:
				intValue, err := strconv.Atoi(value)
				if err != nil {
					zap.S().Warnf("ignoring %s=%q: not an integer", name, value)
					continue
				}
				field.SetInt(int64(intValue))
			case reflect.Bool:
				boolValue, err := strconv.ParseBool(value)
				if err != nil {
					zap.S().Warnf("ignoring %s=%q: not a boolean", name, value)
					continue
				}
				field.SetBool(boolValue)
			}
		}
	}

	return configuration
}
