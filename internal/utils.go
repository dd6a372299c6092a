package internal

import (
	"github.com/google/uuid"
	"os"
	"path/filepath"
)

const (
	ConfigHomeEnv     = "QUICKPATCH_CONFIG_HOME"
	DataHomeEnv       = "QUICKPATCH_DATA_HOME"
	CacheHomeEnv      = "QUICKPATCH_CACHE_HOME"
	DefaultConfigDir  = ".quickpatch"
	DefaultDataDir    = "history"
	DefaultCacheDir   = "cache"
	SlugPostfixLength = 8
)

func GenerateUniqueSlug(prefix string) string {
	guid := uuid.New()
	return prefix + guid.String()[:SlugPostfixLength]
}

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}

func GetDataHome() (string, error) {
	if tmp := os.Getenv(DataHomeEnv); tmp != "" {
		return tmp, nil
	}

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, DefaultDataDir), nil
}

func GetCacheHome() (string, error) {
	if tmp := os.Getenv(CacheHomeEnv); tmp != "" {
		return tmp, nil
	}

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, DefaultCacheDir), nil
}
