// Package plural maps counts to plural categories using the CLDR cardinal
// rules shipped with golang.org/x/text.
//
// A language's categories are ordered zero, one, two, few, many, other and
// limited to the forms integers can reach, so the index of a category is the
// index of the matching translation variant: English and Finnish have two,
// Russian and Polish three, Arabic and Welsh six, Japanese one.
package plural

import (
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// scanLimit bounds the integers sampled to discover a language's forms.
const scanLimit = 1000

var order = []plural.Form{plural.Zero, plural.One, plural.Two, plural.Few, plural.Many, plural.Other}

// forms caches the ordered category list per tag.
var forms sync.Map // key: tag string, value: []plural.Form

// reduceBase keeps the residues CLDR rules test (up to n % 1000000) while
// staying in the range MatchPlural accepts.
const reduceBase = 1000000

// Form returns the CLDR form for an integer count. Negative counts use their
// absolute value.
func Form(tag language.Tag, count int) plural.Form {
	n := uint64(count)
	if count < 0 {
		n = -n
	}
	if n >= reduceBase {
		n = n%reduceBase + reduceBase
	}
	return plural.Cardinal.MatchPlural(tag, int(n), 0, 0, 0, 0)
}

// Forms returns the ordered plural categories of tag.
func Forms(tag language.Tag) []plural.Form {
	key := tag.String()
	if cached, ok := forms.Load(key); ok {
		return cached.([]plural.Form)
	}

	seen := map[plural.Form]bool{}
	for n := 0; n <= scanLimit; n++ {
		seen[Form(tag, n)] = true
	}
	list := make([]plural.Form, 0, len(seen))
	for _, f := range order {
		if seen[f] {
			list = append(list, f)
		}
	}

	actual, _ := forms.LoadOrStore(key, list)
	return actual.([]plural.Form)
}

// Count returns the number of plural categories of tag.
func Count(tag language.Tag) int {
	return len(Forms(tag))
}

// Category returns the variant index for count. Forms that integers in the
// sampled range never reach are mapped to the last category.
func Category(tag language.Tag, count int) int {
	list := Forms(tag)
	form := Form(tag, count)
	for i, f := range list {
		if f == form {
			return i
		}
	}
	return len(list) - 1
}

// Name returns the CLDR keyword of f.
func Name(f plural.Form) string {
	switch f {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}
