package config

import "github.com/kongenga/kongenga/internal/flagx"

// dotEnvFiles are loaded (when present) before reading the environment.
var dotEnvFiles = []string{".env"}

func parseEnv(cfg *Config) {
	if err := flagx.LoadDotEnv(dotEnvFiles...); err != nil {
		panic(err)
	}

	flagx.EnvString("KONGENGA_SERVER_URL", &cfg.ServerURL)
	flagx.EnvString("KONGENGA_DATA_DIR", &cfg.DataDir)
	flagx.EnvString("KONGENGA_LANGUAGE", &cfg.Language)

	if err := flagx.EnvDuration("KONGENGA_REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		panic(err)
	}
}
