package trcat

import (
	"reflect"
	"testing"
	"time"
)

func mockGetenv(env map[string]string) (restore func()) {
	old := osGetenv
	osGetenv = func(name string) string {
		return env[name]
	}
	return func() {
		osGetenv = old
	}
}

func TestUserLanguages(t *testing.T) {
	env := map[string]string{}
	restore := mockGetenv(env)
	defer restore()

	if got := UserLanguages(); got != nil {
		t.Fatalf("UserLanguages() = %v, want nil", got)
	}

	env["LANG"] = "C.UTF-8"
	if got := UserLanguages(); got != nil {
		t.Fatalf("C locale must be skipped, got %v", got)
	}

	env["LANG"] = "fi_FI.UTF-8"
	assertLanguages(t, []string{"fi_FI.UTF-8"})

	env["LC_MESSAGES"] = "sv_FI"
	assertLanguages(t, []string{"sv_FI"})

	env["LC_ALL"] = "en_GB"
	assertLanguages(t, []string{"en_GB"})

	env["LANGUAGE"] = "fi:C:sv::en"
	assertLanguages(t, []string{"fi", "sv", "en"})
}

func assertLanguages(t *testing.T, want []string) {
	t.Helper()
	if got := UserLanguages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("UserLanguages() = %v, want %v", got, want)
	}
}

func TestConfigFromEnv(t *testing.T) {
	restore := mockGetenv(map[string]string{
		EnvResourcePath:  "/srv/translations",
		EnvLanguage:      "fi_FI",
		EnvReloadRetries: "3",
	})
	defer restore()

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}
	if cfg.ResourcePath != "/srv/translations" || cfg.Language != "fi_FI" || cfg.ReloadRetries != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestConfigFromEnvInvalidRetries(t *testing.T) {
	restore := mockGetenv(map[string]string{EnvReloadRetries: "many"})
	defer restore()

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for invalid retry count")
	}
}

func TestConfigDefaults(t *testing.T) {
	restore := mockGetenv(map[string]string{"LANG": "sv_SE.UTF-8"})
	defer restore()

	cfg := Config{ReloadRetries: -2}.withDefaults()
	if cfg.Language != "sv_SE.UTF-8" {
		t.Fatalf("language = %q, want user locale", cfg.Language)
	}
	if cfg.ResourcePath != defaultResourcePath || cfg.Locator == nil {
		t.Fatalf("resource path = %q locator = %v", cfg.ResourcePath, cfg.Locator)
	}
	if cfg.ReloadRetries != 0 || cfg.ReloadRetryDelay != 50*time.Millisecond {
		t.Fatalf("retries = %d delay = %v", cfg.ReloadRetries, cfg.ReloadRetryDelay)
	}
	if cfg.ObserverBuffer != defaultObserverBuffer || cfg.StatsMaxKeys != defaultStatsMaxKeys {
		t.Fatalf("buffer = %d max keys = %d", cfg.ObserverBuffer, cfg.StatsMaxKeys)
	}
	if cfg.NowFn == nil || cfg.Logger == nil {
		t.Fatal("clock and logger must be set")
	}

	restoreEmpty := mockGetenv(map[string]string{})
	defer restoreEmpty()
	if got := (Config{}).withDefaults().Language; got != defaultLanguage {
		t.Fatalf("language = %q, want %q", got, defaultLanguage)
	}
}
