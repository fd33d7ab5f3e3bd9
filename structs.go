package trcat

import "fmt"

// Status marks whether an entry takes part in resolution.
type Status int

const (
	StatusFinished Status = iota
	StatusUnfinished
	StatusObsolete
)

func (s Status) String() string {
	switch s {
	case StatusFinished:
		return "finished"
	case StatusUnfinished:
		return "unfinished"
	case StatusObsolete:
		return "obsolete"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus reads the status marker of a catalog record. An empty marker
// means finished and "vanished" is read as obsolete.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "", "finished":
		return StatusFinished, nil
	case "unfinished":
		return StatusUnfinished, nil
	case "obsolete", "vanished":
		return StatusObsolete, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

// Key identifies an entry within a catalog.
type Key struct {
	Context        string
	Source         string
	Disambiguation string
}

func (k Key) String() string {
	if k.Disambiguation == "" {
		return k.Context + "|" + k.Source
	}
	return k.Context + "|" + k.Source + "|" + k.Disambiguation
}

// Location points at the place in application code a message comes from.
type Location struct {
	File string `yaml:"file" toml:"file"`
	Line int    `yaml:"line,omitempty" toml:"line,omitempty"`
}

// Entry is one translated message. Variants has a single element for plain
// messages and one element per plural category for numerus messages.
type Entry struct {
	Key
	Variants          []string
	Numerus           bool
	Status            Status
	Locations         []Location
	TranslatorComment string
	ExtraComment      string
}

func (e Entry) clone() Entry {
	out := e
	if e.Variants != nil {
		out.Variants = append([]string(nil), e.Variants...)
	}
	if e.Locations != nil {
		out.Locations = append([]Location(nil), e.Locations...)
	}
	return out
}

// Request is a lookup against a catalog. Count selects a plural variant and
// is nil when the caller has no quantity.
type Request struct {
	Context        string
	Source         string
	Disambiguation string
	Count          *int
	Args           []string
}

// Count returns a pointer to n for use in Request.Count.
func Count(n int) *int {
	return &n
}
