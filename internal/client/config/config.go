package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the backend origin every request targets.
	APIBaseURL string
	// PaystackPublicKey is consumed only by the subscription trigger.
	PaystackPublicKey string
	// StateDir holds the durable client state (the "user" key file).
	StateDir string
}

// Load reads configuration from the environment, letting a .env file in the
// working directory fill in anything unset.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		APIBaseURL:        getEnv("PBS_API_BASE_URL", "http://localhost:3000"),
		PaystackPublicKey: getEnv("PBS_PAYSTACK_PUBLIC_KEY", ""),
		StateDir:          getEnv("PBS_STATE_DIR", defaultStateDir()),
	}
}

func defaultStateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pbs")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
