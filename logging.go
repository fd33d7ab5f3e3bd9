package trcat

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the logger used by package trcat when no logger is configured.
// Replace it after configuring the global zerolog logger.
var Logger zerolog.Logger = log.With().Str("sys", "trcat").Logger()

func logWarning(logger zerolog.Logger, lang string, w Warning) {
	evt := logger.Warn().
		Str("lang", lang).
		Str("kind", w.Kind.String())
	if w.Key != (Key{}) {
		evt = evt.Str("context", w.Key.Context).Str("source", w.Key.Source)
		if w.Key.Disambiguation != "" {
			evt = evt.Str("disambiguation", w.Key.Disambiguation)
		}
	}
	if w.Record > 0 {
		evt = evt.Int("record", w.Record)
	}
	evt.Msg(w.Detail)
}
