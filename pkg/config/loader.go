package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache stores one parsed copy per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	globalCache = &cache{values: make(map[reflect.Type]any)}

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v. Fields already set on v act as
// defaults: env only overrides a field when its variable is present.
//
// Each configuration type is parsed once; later calls for the same type
// receive the cached copy. A failed parse is not cached, so a later call can
// succeed once the environment is fixed.
//
//	cfg := contentguard.DefaultConfig()
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := parse(v); err != nil {
		return err
	}
	globalCache.values[key] = *v
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load %s: %v", reflect.TypeFor[T](), err))
	}
}

// Reload parses v again, bypassing and then refreshing the cache.
// Useful in tests after the process environment has changed.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	key := reflect.TypeFor[T]()

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	delete(globalCache.values, key)
	if err := parse(v); err != nil {
		return err
	}
	globalCache.values[key] = *v
	return nil
}

// ResetCache drops every cached configuration.
func ResetCache() {
	globalCache.mu.Lock()
	clear(globalCache.values)
	globalCache.mu.Unlock()
}

// LoadEnv loads one or more .env files into the process environment.
// Variables that are already set are not overwritten. With no paths it
// loads .env from the working directory.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

func parse[T any](v *T) error {
	if k := reflect.TypeFor[T]().Kind(); k != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrInvalidConfigType, k)
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
