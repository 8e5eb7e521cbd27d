// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct using `env` field tags.
//   - Each configuration type is parsed once and cached for the lifetime of
//     the process. Reload and ResetCache exist for tests.
//
// Fields that are already populated before Load act as defaults, which lets
// packages ship a DefaultConfig constructor and still accept overrides:
//
//	cfg := contentguard.DefaultConfig()
//	config.MustLoad(&cfg) // CONTENT_GUARD_* variables override defaults
//
// Struct tag defaults work as usual for simple values:
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
// # Errors
//
//   - ErrParsingConfig: env could not parse the struct.
//   - ErrInvalidConfigType: the target is not a struct.
//   - ErrNilPointer: nil pointer passed to Load or Reload.
//   - ErrLoadingEnvFile: a .env file could not be read.
package config
