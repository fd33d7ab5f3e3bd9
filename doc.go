/*
Package trcat loads localization catalogs and resolves translations from them.

A catalog maps a (context, source text, disambiguation) key to a translated
string, optionally with plural variants selected by the CLDR plural rules of
the catalog language. Catalog documents can be YAML, TOML or Qt Linguist TS
files.

# Loading

	cat, err := trcat.LoadFile("i18n/fi.ts", "fi")
	switch {
	case errors.Is(err, trcat.ErrMalformed):
		// run untranslated
	case errors.Is(err, trcat.ErrEmptyDocument):
		// cat is usable, every lookup falls back to source text
	}

# Resolving

	cat.Resolve(trcat.Request{Context: "BaseGui", Source: "&Open"})
	cat.Resolve(trcat.Request{
		Context: "Timer",
		Source:  "%1 second(s)",
		Count:   trcat.Count(5),
		Args:    []string{"5"},
	})

Missing or unfinished translations resolve to the source text. Positional
placeholders %1..%99 take Args in order; placeholders without an argument are
kept verbatim. %n is replaced by the count.

# Switching language

A Translator holds the current catalog behind an atomic pointer. Loading a
new language builds the catalog off to the side and publishes it in one
swap, so readers never observe a partial catalog:

	t, err := trcat.NewTranslator(trcat.Config{ResourcePath: "i18n", Language: "fi"})
	label := t.Tr("BaseGui", "&Open")
	err = t.SwitchLanguage("de")
*/
package trcat
