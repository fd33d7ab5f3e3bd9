package trcat

import (
	"github.com/loopcontext/trcat/internal/plural"
)

type resolveOutcome int

const (
	resolvedTranslation resolveOutcome = iota
	resolvedMissing
	resolvedUnfinished
)

type resolution struct {
	text       string
	outcome    resolveOutcome
	candidates int
}

// Resolve returns the translation of req in c, or the source text when
// there is none. Arguments are substituted either way. A nil catalog
// resolves everything to source text.
func Resolve(c *Catalog, req Request) string {
	return c.resolve(req).text
}

// Resolve is the method form of Resolve.
func (c *Catalog) Resolve(req Request) string {
	return c.resolve(req).text
}

func (c *Catalog) resolve(req Request) resolution {
	if c == nil {
		return resolution{text: substitute(req.Source, req.Args, req.Count), outcome: resolvedMissing}
	}

	entry, candidates := c.lookup(req.Context, req.Source, req.Disambiguation)
	switch {
	case entry == nil:
		return resolution{text: substitute(req.Source, req.Args, req.Count), outcome: resolvedMissing}
	case entry.Status != StatusFinished || len(entry.Variants) == 0:
		return resolution{text: substitute(req.Source, req.Args, req.Count), outcome: resolvedUnfinished, candidates: candidates}
	}

	text := entry.Variants[0]
	if entry.Numerus && req.Count != nil {
		idx := plural.Category(c.tag, *req.Count)
		if idx >= len(entry.Variants) {
			idx = len(entry.Variants) - 1
		}
		text = entry.Variants[idx]
	}
	return resolution{text: substitute(text, req.Args, req.Count), outcome: resolvedTranslation, candidates: candidates}
}
