package trcat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Translator holds the catalog of the active language and swaps it
// atomically on SwitchLanguage and Reload. Lookups never block on a
// switch: a lookup that already fetched the old catalog finishes against
// it, later lookups see the new one.
type Translator struct {
	cfg    Config
	logger zerolog.Logger
	stats  *translatorStats

	current   atomic.Pointer[Catalog]
	requested atomic.Value // language last asked for, as given
	switchMu  sync.Mutex

	observerMu   sync.RWMutex
	observerCh   chan observerEvent
	observerDone chan struct{}
	closed       bool
}

// NewTranslator loads cfg.Language and makes it current. As with
// SwitchLanguage, a catalog without entries is still published and
// ErrEmptyDocument returned. On any other error the translator is
// returned without a catalog and resolves everything to source text until
// a later switch succeeds. Call Close in both cases.
func NewTranslator(cfg Config) (*Translator, error) {
	cfg = cfg.withDefaults()
	t := &Translator{
		cfg:    cfg,
		logger: *cfg.Logger,
		stats:  newTranslatorStats(cfg.StatsMaxKeys),
	}
	t.startObserverWorker()
	err := t.SwitchLanguage(cfg.Language)
	return t, err
}

// Current returns the active catalog, or nil before the first successful
// load.
func (t *Translator) Current() *Catalog {
	return t.current.Load()
}

// Language returns the language of the active catalog.
func (t *Translator) Language() string {
	if c := t.Current(); c != nil {
		return c.Language()
	}
	return ""
}

// Publish makes c current and returns the catalog it replaces, which is
// marked retired. A nil c is ignored.
func (t *Translator) Publish(c *Catalog) *Catalog {
	if c == nil {
		return t.Current()
	}
	t.switchMu.Lock()
	defer t.switchMu.Unlock()
	return t.publish(c)
}

func (t *Translator) publish(c *Catalog) *Catalog {
	old := t.current.Swap(c)
	from := ""
	if old != nil {
		old.retire()
		from = old.Language()
	}
	t.stats.recordSwitch(from, c.Language(), t.cfg.NowFn())
	t.publishObserverEvent(observerEvent{
		kind: observerEventCatalogSwitch,
		from: from,
		lang: c.Language(),
	})
	t.logger.Info().
		Str("from", from).
		Str("to", c.Language()).
		Int("entries", c.Len()).
		Msg("Switched catalog")
	return old
}

// SwitchLanguage loads the catalog of lang and publishes it. When the
// document is malformed or missing the current catalog stays in place and
// the error is returned.
func (t *Translator) SwitchLanguage(lang string) error {
	t.switchMu.Lock()
	defer t.switchMu.Unlock()

	c, err := t.loadWithRetry(lang)
	if c == nil {
		t.logger.Error().Err(err).Str("lang", lang).Msg("Failed to switch language")
		return err
	}
	t.requested.Store(lang)
	t.publish(c)
	return err
}

// Reload reads the catalog of the current language again.
func (t *Translator) Reload() error {
	lang, _ := t.requested.Load().(string)
	if lang == "" {
		lang = t.cfg.Language
	}
	return t.SwitchLanguage(lang)
}

func (t *Translator) loadWithRetry(lang string) (*Catalog, error) {
	var lastErr error
	for attempt := 0; attempt <= t.cfg.ReloadRetries; attempt++ {
		c, err := t.load(lang)
		if c != nil {
			return c, err
		}
		lastErr = err
		if attempt < t.cfg.ReloadRetries {
			t.logger.Debug().Err(err).Str("lang", lang).Int("attempt", attempt+1).Msg("Retrying catalog load")
			time.Sleep(t.cfg.ReloadRetryDelay)
		}
	}
	return nil, lastErr
}

func (t *Translator) load(lang string) (*Catalog, error) {
	name, fsys, err := t.cfg.Locator.Locate(lang)
	if err != nil {
		return nil, err
	}

	opts := []LoadOption{WithLogger(t.logger), WithNow(t.cfg.NowFn)}
	if t.cfg.Format != FormatAuto {
		opts = append(opts, WithFormat(t.cfg.Format))
	}
	c, err := LoadFS(fsys, name, lang, opts...)
	if c == nil {
		return nil, err
	}
	if err != nil && !errors.Is(err, ErrEmptyDocument) {
		return nil, err
	}

	for _, w := range c.warnings {
		t.stats.incrementLoadWarning(c.Language(), w.Kind)
		t.publishObserverEvent(observerEvent{
			kind:    observerEventLoadWarning,
			lang:    c.Language(),
			warning: w,
		})
	}
	return c, err
}

// Resolve resolves req against the current catalog.
func (t *Translator) Resolve(req Request) string {
	return t.resolveIn(t.Current(), req)
}

func (t *Translator) resolveIn(c *Catalog, req Request) string {
	r := c.resolve(req)
	lang := ""
	if c != nil {
		lang = c.Language()
	}
	if r.outcome != resolvedTranslation {
		t.stats.incrementMissingTranslation(lang, req.Context, req.Source)
		t.publishObserverEvent(observerEvent{
			kind:    observerEventMissingTranslation,
			lang:    lang,
			context: req.Context,
			source:  req.Source,
		})
	}
	if r.candidates > 1 {
		t.stats.incrementAmbiguousLookup(lang, req.Context, req.Source)
		t.publishObserverEvent(observerEvent{
			kind:       observerEventAmbiguousLookup,
			lang:       lang,
			context:    req.Context,
			source:     req.Source,
			candidates: r.candidates,
		})
	}
	return r.text
}

func (t *Translator) Tr(context string, source string, args ...string) string {
	return t.Resolve(Request{Context: context, Source: source, Args: args})
}

func (t *Translator) TrD(context string, source string, disambiguation string, args ...string) string {
	return t.Resolve(Request{Context: context, Source: source, Disambiguation: disambiguation, Args: args})
}

func (t *Translator) TrN(context string, source string, n int, args ...string) string {
	return t.Resolve(Request{Context: context, Source: source, Count: Count(n), Args: args})
}

func (t *Translator) TrND(context string, source string, disambiguation string, n int, args ...string) string {
	return t.Resolve(Request{Context: context, Source: source, Disambiguation: disambiguation, Count: Count(n), Args: args})
}

// TrCtx resolves against the catalog pinned in ctx by NewContext or
// WithSnapshot, falling back to the current one.
func (t *Translator) TrCtx(ctx context.Context, req Request) string {
	if c, ok := FromContext(ctx); ok {
		return t.resolveIn(c, req)
	}
	return t.Resolve(req)
}

// WithSnapshot pins the current catalog into ctx.
func (t *Translator) WithSnapshot(ctx context.Context) context.Context {
	return NewContext(ctx, t.Current())
}

func (t *Translator) SnapshotStats() Stats {
	return t.stats.snapshot()
}

func (t *Translator) ResetStats() {
	t.stats.reset()
}

// Close stops observer delivery after flushing queued events. The
// translator keeps resolving afterwards.
func (t *Translator) Close() {
	t.observerMu.Lock()
	defer t.observerMu.Unlock()
	t.closed = true
	t.stopObserverWorker()
}
