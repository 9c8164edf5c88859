package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the defaults of the langscan command.
type Config struct {
	// SourceDir is the project root that is scanned recursively.
	SourceDir string
	// LangDir is the directory of the catalogs. A relative path is resolved against SourceDir.
	LangDir   string
	Extension string
	Exclude   []string
	LogLevel  string
	Progress  bool
	// EnvFile is the .env file the values were loaded from, empty when there was none.
	EnvFile   string
}

// Load reads the configuration from the environment. A .env file in the working directory is loaded first.
func Load() *Config {
	var envFile string
	if err := godotenv.Load(); err == nil {
		envFile = ".env"
	}

	return &Config{
		EnvFile:   envFile,
		SourceDir: getEnv("LANGSCAN_SOURCE_DIR", "."),
		LangDir:   getEnv("LANGSCAN_LANG_DIR", "resources/lang"),
		Extension: getEnv("LANGSCAN_EXTENSION", "php"),
		Exclude:   getEnvList("LANGSCAN_EXCLUDE"),
		LogLevel:  getEnv("LANGSCAN_LOG_LEVEL", "info"),
		Progress:  getEnvBool("LANGSCAN_PROGRESS", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
