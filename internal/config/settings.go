package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// StoreKind selects the persistence backend
type StoreKind string

const (
	StoreFile   StoreKind = "file"
	StoreSQLite StoreKind = "sqlite"
	StoreMemory StoreKind = "memory"
)

// Settings are process level options read from the environment
type Settings struct {
	Store     StoreKind
	StorePath string
	Debug     bool
}

// LoadSettings reads settings from the environment with sensible defaults.
// Precedence: explicit env var > .env file > default.
func LoadSettings(envFiles ...string) Settings {
	// a missing .env is fine
	_ = godotenv.Load(envFiles...)

	s := Settings{}
	s.Store = parseStoreKind(getEnv("MOKESCIAI_STORE", string(StoreFile)))
	s.StorePath = getEnv("MOKESCIAI_STORE_PATH", defaultStorePath())
	s.Debug = ParseBool("MOKESCIAI_DEBUG", false)
	return s
}

func parseStoreKind(v string) StoreKind {
	switch k := StoreKind(strings.ToLower(strings.TrimSpace(v))); k {
	case StoreFile, StoreSQLite, StoreMemory:
		return k
	default:
		log.Printf("unknown store %q, using %s", v, StoreFile)
		return StoreFile
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mokesciai"
	}
	return filepath.Join(dir, "mokesciai")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
