package trcat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	EnvResourcePath  = "TRCAT_RESOURCE_PATH"
	EnvLanguage      = "TRCAT_LANGUAGE"
	EnvReloadRetries = "TRCAT_RELOAD_RETRIES"

	defaultResourcePath     = "./resources/translations"
	defaultLanguage         = "en"
	defaultObserverBuffer   = 1024
	defaultStatsMaxKeys     = 512
	defaultReloadRetryDelay = 50 * time.Millisecond
)

var osGetenv = os.Getenv

type Config struct {
	// ResourcePath is the directory searched by the default Locator.
	ResourcePath string
	// Language loaded by NewTranslator. Defaults to the user's locale,
	// then "en".
	Language string
	// Locator overrides how catalog files are found.
	Locator Locator
	// Format forces a document format for every load.
	Format Format

	Observer       Observer
	ObserverBuffer int
	StatsMaxKeys   int

	ReloadRetries    int
	ReloadRetryDelay time.Duration

	NowFn  func() time.Time
	Logger *zerolog.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.ResourcePath == "" {
		cfg.ResourcePath = defaultResourcePath
	}
	if cfg.Language == "" {
		if langs := UserLanguages(); len(langs) > 0 {
			cfg.Language = langs[0]
		} else {
			cfg.Language = defaultLanguage
		}
	}
	if cfg.Locator == nil {
		cfg.Locator = DirLocator(cfg.ResourcePath)
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = defaultObserverBuffer
	}
	if cfg.StatsMaxKeys <= 0 {
		cfg.StatsMaxKeys = defaultStatsMaxKeys
	}
	if cfg.ReloadRetries < 0 {
		cfg.ReloadRetries = 0
	}
	if cfg.ReloadRetryDelay <= 0 {
		cfg.ReloadRetryDelay = defaultReloadRetryDelay
	}
	if cfg.Logger == nil {
		logger := Logger
		cfg.Logger = &logger
	}
	return cfg
}

// ConfigFromEnv builds a Config from TRCAT_* variables. A .env file in the
// working directory is read first when present; variables already set in
// the environment take precedence over it.
func ConfigFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		ResourcePath: osGetenv(EnvResourcePath),
		Language:     osGetenv(EnvLanguage),
	}
	if raw := strings.TrimSpace(osGetenv(EnvReloadRetries)); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvReloadRetries, raw, err)
		}
		cfg.ReloadRetries = retries
	}
	return cfg, nil
}

// UserLanguages returns the user's preferred languages from the POSIX
// locale variables. LANGUAGE may hold a colon separated list and wins
// over LC_ALL, LC_MESSAGES and LANG, in that order. The C and POSIX
// locales are skipped.
func UserLanguages() []string {
	var langs []string
	if language := osGetenv("LANGUAGE"); language != "" {
		langs = strings.Split(language, ":")
	} else {
		for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
			if value := osGetenv(name); value != "" {
				langs = []string{value}
				break
			}
		}
	}

	var out []string
	for _, lang := range langs {
		lang = strings.TrimSpace(lang)
		if lang == "" || lang == "C" || lang == "POSIX" || strings.HasPrefix(lang, "C.") {
			continue
		}
		out = append(out, lang)
	}
	return out
}
