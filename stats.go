package trcat

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	overflowStatKey = "__overflow__"
	maxStatKeyLen   = 120
)

// Stats is a point-in-time copy of the counters kept by a Translator.
// Map keys are capped at Config.StatsMaxKeys; the rest is counted under
// "__overflow__".
type Stats struct {
	MissingTranslations map[string]int // lang|context|source
	AmbiguousLookups    map[string]int // lang|context|source
	LanguageSwitches    map[string]int // from->to
	LoadWarnings        map[string]int // lang:kind
	DroppedEvents       map[string]int // reason
	LastSwitchAt        time.Time
}

type translatorStats struct {
	mu                  sync.Mutex
	missingTranslations map[string]int
	ambiguousLookups    map[string]int
	languageSwitches    map[string]int
	loadWarnings        map[string]int
	droppedEvents       map[string]int
	maxKeys             int
	lastSwitchAt        time.Time
}

func newTranslatorStats(maxKeys int) *translatorStats {
	s := &translatorStats{maxKeys: maxKeys}
	s.reset()
	return s
}

func sanitizeStatKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	if len(key) <= maxStatKeyLen {
		return key
	}
	cut := maxStatKeyLen
	for cut > 0 && !utf8.RuneStart(key[cut]) {
		cut--
	}
	return key[:cut]
}

func (s *translatorStats) incrementLocked(target map[string]int, key string) {
	if target == nil {
		return
	}
	key = sanitizeStatKey(key)
	if s.maxKeys > 0 {
		if _, exists := target[key]; !exists {
			if _, hasOverflow := target[overflowStatKey]; hasOverflow {
				if len(target) >= s.maxKeys {
					key = overflowStatKey
				}
			} else if len(target) >= s.maxKeys-1 {
				key = overflowStatKey
			}
		}
	}
	target[key]++
}

func (s *translatorStats) incrementMissingTranslation(lang string, context string, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrementLocked(s.missingTranslations, lang+"|"+context+"|"+source)
}

func (s *translatorStats) incrementAmbiguousLookup(lang string, context string, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrementLocked(s.ambiguousLookups, lang+"|"+context+"|"+source)
}

func (s *translatorStats) incrementLoadWarning(lang string, kind WarningKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrementLocked(s.loadWarnings, fmt.Sprintf("%s:%s", lang, kind))
}

func (s *translatorStats) incrementDroppedEvent(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrementLocked(s.droppedEvents, reason)
}

func (s *translatorStats) recordSwitch(from string, to string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from == "" {
		from = "none"
	}
	s.incrementLocked(s.languageSwitches, fmt.Sprintf("%s->%s", from, to))
	s.lastSwitchAt = at
}

func (s *translatorStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missingTranslations = map[string]int{}
	s.ambiguousLookups = map[string]int{}
	s.languageSwitches = map[string]int{}
	s.loadWarnings = map[string]int{}
	s.droppedEvents = map[string]int{}
	s.lastSwitchAt = time.Time{}
}

func (s *translatorStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copyMap := func(input map[string]int) map[string]int {
		output := make(map[string]int, len(input))
		for k, v := range input {
			output[k] = v
		}
		return output
	}

	return Stats{
		MissingTranslations: copyMap(s.missingTranslations),
		AmbiguousLookups:    copyMap(s.ambiguousLookups),
		LanguageSwitches:    copyMap(s.languageSwitches),
		LoadWarnings:        copyMap(s.loadWarnings),
		DroppedEvents:       copyMap(s.droppedEvents),
		LastSwitchAt:        s.lastSwitchAt,
	}
}
