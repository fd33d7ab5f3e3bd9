package trcat

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

type sourceKey struct {
	context string
	source  string
}

// Catalog is the immutable translation table of one language. It is safe
// for concurrent use.
type Catalog struct {
	lang     string
	tag      language.Tag
	format   Format
	entries  []*Entry
	index    map[Key]int         // every entry, obsolete included
	bySource map[sourceKey][]int // non-obsolete entries, load order
	warnings []Warning
	loadedAt time.Time
	logger   zerolog.Logger

	retired       atomic.Bool
	ambiguousOnce sync.Map
}

// Summary counts the entries of a catalog by status.
type Summary struct {
	Language   string
	Entries    int
	Finished   int
	Unfinished int
	Obsolete   int
	Plural     int
	Warnings   int
}

func (c *Catalog) Language() string {
	return c.lang
}

func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Format is the format the catalog was decoded from.
func (c *Catalog) Format() Format {
	return c.format
}

func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Len returns the number of entries, obsolete ones included.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns copies of all entries in load order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.clone())
	}
	return out
}

// Entry returns the entry stored under key, whatever its status.
func (c *Catalog) Entry(key Key) (Entry, bool) {
	pos, found := c.index[key]
	if !found {
		return Entry{}, false
	}
	return c.entries[pos].clone(), true
}

// Lookup finds the entry a request for (context, source, disambiguation)
// resolves against. Obsolete entries are never returned.
func (c *Catalog) Lookup(context string, source string, disambiguation string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, _ := c.lookup(context, source, disambiguation)
	if entry == nil {
		return Entry{}, false
	}
	return entry.clone(), true
}

// lookup also reports how many entries competed for an unqualified request.
func (c *Catalog) lookup(context string, source string, disambiguation string) (*Entry, int) {
	if entry := c.active(Key{Context: context, Source: source, Disambiguation: disambiguation}); entry != nil {
		return entry, 1
	}
	if disambiguation != "" {
		if entry := c.active(Key{Context: context, Source: source}); entry != nil {
			return entry, 1
		}
		return nil, 0
	}
	candidates := c.bySource[sourceKey{context: context, source: source}]
	if len(candidates) == 0 {
		return nil, 0
	}
	entry := c.entries[candidates[0]]
	if len(candidates) > 1 {
		c.warnAmbiguous(entry.Key, len(candidates))
	}
	return entry, len(candidates)
}

func (c *Catalog) active(key Key) *Entry {
	pos, found := c.index[key]
	if !found || c.entries[pos].Status == StatusObsolete {
		return nil
	}
	return c.entries[pos]
}

func (c *Catalog) warnAmbiguous(chosen Key, candidates int) {
	sk := sourceKey{context: chosen.Context, source: chosen.Source}
	if _, seen := c.ambiguousOnce.LoadOrStore(sk, struct{}{}); seen {
		return
	}
	c.logger.Warn().
		Str("lang", c.lang).
		Str("kind", WarningAmbiguousLookup.String()).
		Str("context", chosen.Context).
		Str("source", chosen.Source).
		Str("chosen", chosen.Disambiguation).
		Int("candidates", candidates).
		Msg("Lookup without disambiguation matches several entries")
}

// Warnings returns the anomalies recovered while loading.
func (c *Catalog) Warnings() []Warning {
	return append([]Warning(nil), c.warnings...)
}

// WarningErr folds the load warnings into one error, or nil when there
// are none.
func (c *Catalog) WarningErr() error {
	var result *multierror.Error
	for _, w := range c.warnings {
		result = multierror.Append(result, w)
	}
	return result.ErrorOrNil()
}

func (c *Catalog) Summary() Summary {
	s := Summary{Language: c.lang, Entries: len(c.entries), Warnings: len(c.warnings)}
	for _, entry := range c.entries {
		switch entry.Status {
		case StatusFinished:
			s.Finished++
		case StatusUnfinished:
			s.Unfinished++
		case StatusObsolete:
			s.Obsolete++
		}
		if entry.Numerus {
			s.Plural++
		}
	}
	return s
}

// Document converts the catalog back into a document, obsolete entries
// included, for writing in another format.
func (c *Catalog) Document() *Document {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, *entry)
	}
	return NewDocument(c.lang, entries)
}

// Retired reports whether a Translator has replaced this catalog. A
// retired catalog keeps resolving as before.
func (c *Catalog) Retired() bool {
	return c.retired.Load()
}

func (c *Catalog) retire() {
	c.retired.Store(true)
}
