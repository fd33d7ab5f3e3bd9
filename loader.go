package trcat

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/loopcontext/trcat/internal/plural"
)

type loadOptions struct {
	format Format
	logger zerolog.Logger
	now    func() time.Time
}

// LoadOption configures Load, LoadFile and LoadFS.
type LoadOption func(*loadOptions)

// WithFormat forces a document format instead of sniffing it.
func WithFormat(f Format) LoadOption {
	return func(o *loadOptions) { o.format = f }
}

// WithLogger sets the logger load warnings are written to.
func WithLogger(l zerolog.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// WithNow sets the clock used to stamp Catalog.LoadedAt.
func WithNow(now func() time.Time) LoadOption {
	return func(o *loadOptions) { o.now = now }
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{format: FormatAuto, logger: Logger, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load parses one catalog document. lang is the declared language; when
// empty the document's own language is used.
//
// A document that cannot be parsed yields a nil catalog and an error
// matching ErrMalformed. A parseable document without usable entries
// yields a valid catalog together with an error matching ErrEmptyDocument.
// Per-record problems never fail the load; they are recorded as warnings.
func Load(data []byte, lang string, opts ...LoadOption) (*Catalog, error) {
	o := newLoadOptions(opts)
	format := o.format
	if format == FormatAuto {
		format = sniffFormat(data)
	}

	doc := &Document{}
	if len(bytes.TrimSpace(data)) > 0 {
		var err error
		doc, err = DecodeDocument(data, format)
		if err != nil {
			o.logger.Error().Err(err).Str("lang", lang).Str("format", format.String()).Msg("Failed to parse catalog")
			return nil, &LoadError{Kind: LoadErrorMalformed, Language: lang, Format: format, Err: err}
		}
	}

	b := newBuilder(lang, doc.Language, format, o)
	b.addDocument(doc)
	return b.finish()
}

// LoadFile reads and loads the catalog at path. The format comes from the
// file extension unless WithFormat is given.
func LoadFile(path string, lang string, opts ...LoadOption) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Load(data, lang, append([]LoadOption{WithFormat(FormatFromPath(path))}, opts...)...)
}

// LoadFS is LoadFile for an fs.FS, for example an embedded one.
func LoadFS(fsys fs.FS, name string, lang string, opts ...LoadOption) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	return Load(data, lang, append([]LoadOption{WithFormat(FormatFromPath(name))}, opts...)...)
}

func parseTag(lang string) (language.Tag, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return language.Und, fmt.Errorf("empty language tag")
	}
	// POSIX locales such as fi_FI.UTF-8@euro
	if idx := strings.IndexAny(lang, ".@"); idx > 0 {
		lang = lang[:idx]
	}
	return language.Parse(strings.ReplaceAll(lang, "_", "-"))
}

// builder normalizes raw records into a Catalog.
type builder struct {
	cat     *Catalog
	records []int // document record number per entry position
	logger  zerolog.Logger
	plurals int
}

func newBuilder(declared string, documented string, format Format, o loadOptions) *builder {
	b := &builder{
		cat: &Catalog{
			format:   format,
			index:    map[Key]int{},
			bySource: map[sourceKey][]int{},
			loadedAt: o.now(),
			logger:   o.logger,
		},
		logger: o.logger,
	}
	b.cat.tag = b.language(declared, documented)
	b.cat.lang = b.cat.tag.String()
	b.plurals = plural.Count(b.cat.tag)
	return b
}

// language picks the catalog tag: the declared one wins, the document's is
// the fallback.
func (b *builder) language(declared string, documented string) language.Tag {
	declaredTag, declaredErr := parseTag(declared)
	documentedTag, documentedErr := parseTag(documented)
	switch {
	case declaredErr == nil:
		if documentedErr == nil && !sameLanguage(declaredTag, documentedTag) {
			b.warn(Warning{
				Kind:   WarningLanguageMismatch,
				Detail: fmt.Sprintf("document declares %q, loading as %q", documentedTag, declaredTag),
			}, declaredTag.String())
		}
		return declaredTag
	case documentedErr == nil:
		return documentedTag
	default:
		if strings.TrimSpace(declared) != "" || strings.TrimSpace(documented) != "" {
			b.warn(Warning{
				Kind:   WarningLanguageMismatch,
				Detail: fmt.Sprintf("no valid language tag in %q or %q", declared, documented),
			}, language.Und.String())
		}
		return language.Und
	}
}

// sameLanguage treats a regional tag and its base language as the same,
// so fi-FI loaded from a document declaring fi is not a conflict.
func sameLanguage(a language.Tag, b language.Tag) bool {
	if a == b {
		return true
	}
	baseA, _ := a.Base()
	baseB, _ := b.Base()
	if baseA != baseB {
		return false
	}
	_, _, regionA := a.Raw()
	_, _, regionB := b.Raw()
	return regionA.String() == "ZZ" || regionB.String() == "ZZ"
}

func (b *builder) warn(w Warning, lang string) {
	b.cat.warnings = append(b.cat.warnings, w)
	logWarning(b.logger, lang, w)
}

func (b *builder) addDocument(doc *Document) {
	record := 0
	for _, group := range doc.Contexts {
		for _, raw := range group.Messages {
			record++
			b.add(group.Name, raw, record)
		}
	}
}

func (b *builder) add(context string, raw RawMessage, record int) {
	key := Key{Context: context, Source: raw.Source, Disambiguation: raw.Comment}
	entry, problem := b.normalize(key, raw, record)
	if problem != "" {
		b.warn(Warning{Kind: WarningMalformedRecord, Key: key, Record: record, Detail: problem}, b.cat.lang)
		return
	}

	if pos, dup := b.cat.index[key]; dup {
		b.warn(Warning{
			Kind:   WarningDuplicateKey,
			Key:    key,
			Record: record,
			Detail: fmt.Sprintf("replaces record %d", b.records[pos]),
		}, b.cat.lang)
		b.cat.entries[pos] = entry
		b.records[pos] = record
		return
	}

	b.cat.index[key] = len(b.cat.entries)
	b.cat.entries = append(b.cat.entries, entry)
	b.records = append(b.records, record)
}

// normalize returns the entry for raw, or a description of why the record
// has to be skipped.
func (b *builder) normalize(key Key, raw RawMessage, record int) (*Entry, string) {
	if raw.problem != "" {
		return nil, raw.problem
	}
	if raw.Source == "" {
		return nil, "missing source text"
	}
	status, err := ParseStatus(strings.TrimSpace(raw.Status))
	if err != nil {
		return nil, err.Error()
	}
	numerus, numerusSet, err := parseNumerus(raw.Numerus)
	if err != nil {
		return nil, err.Error()
	}
	if raw.Translation != nil && len(raw.Forms) > 0 {
		return nil, "both translation and plural forms given"
	}
	if len(raw.Forms) > 0 {
		if numerusSet && !numerus {
			return nil, "plural forms on a message not marked numerus"
		}
		numerus = true
	}
	if numerus && raw.Translation != nil {
		return nil, "plain translation on a numerus message"
	}

	entry := &Entry{
		Key:               key,
		Numerus:           numerus,
		Status:            status,
		TranslatorComment: raw.TranslatorComment,
		ExtraComment:      raw.ExtraComment,
	}
	if len(raw.Locations) > 0 {
		entry.Locations = append([]Location(nil), raw.Locations...)
	}

	switch {
	case numerus:
		if len(raw.Forms) > 0 {
			entry.Variants = append([]string(nil), raw.Forms...)
		}
	case raw.Translation != nil:
		entry.Variants = []string{*raw.Translation}
	}

	if len(entry.Variants) == 0 && entry.Status == StatusFinished {
		if numerus {
			b.warn(Warning{
				Kind:   WarningPluralMismatch,
				Key:    key,
				Record: record,
				Detail: "finished numerus message without forms, treated as unfinished",
			}, b.cat.lang)
		}
		entry.Status = StatusUnfinished
	}
	if numerus && len(entry.Variants) > 0 && len(entry.Variants) != b.plurals && entry.Status != StatusObsolete {
		b.warn(Warning{
			Kind:   WarningPluralMismatch,
			Key:    key,
			Record: record,
			Detail: fmt.Sprintf("%d forms, %s has %d plural categories", len(entry.Variants), b.cat.lang, b.plurals),
		}, b.cat.lang)
	}
	return entry, ""
}

func (b *builder) finish() (*Catalog, error) {
	c := b.cat
	usable := 0
	for pos, entry := range c.entries {
		if entry.Status == StatusObsolete {
			continue
		}
		usable++
		sk := sourceKey{context: entry.Context, source: entry.Source}
		c.bySource[sk] = append(c.bySource[sk], pos)
	}

	b.logger.Debug().
		Str("lang", c.lang).
		Str("format", c.format.String()).
		Int("entries", len(c.entries)).
		Int("warnings", len(c.warnings)).
		Msg("Loaded catalog")

	if usable == 0 {
		b.logger.Warn().Str("lang", c.lang).Msg("Catalog has no usable entries")
		return c, &LoadError{Kind: LoadErrorEmptyDocument, Language: c.lang, Format: c.format}
	}
	return c, nil
}
