package trcat

//go:generate mockgen -source=$GOFILE -package mock_trcat -destination=test/mock/$GOFILE

// Observer receives runtime events from a Translator. Calls come from a
// single background goroutine, in order; a panic in an observer is
// recovered and ignored.
type Observer interface {
	OnMissingTranslation(lang string, context string, source string)
	OnAmbiguousLookup(lang string, context string, source string, candidates int)
	OnCatalogSwitch(from string, to string)
	OnLoadWarning(lang string, w Warning)
}

type observerEventType int

const (
	observerEventMissingTranslation observerEventType = iota
	observerEventAmbiguousLookup
	observerEventCatalogSwitch
	observerEventLoadWarning
)

type observerEvent struct {
	kind       observerEventType
	lang       string
	context    string
	source     string
	candidates int
	from       string
	warning    Warning
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (t *Translator) startObserverWorker() {
	if t.cfg.Observer == nil || t.observerCh != nil {
		return
	}
	t.observerCh = make(chan observerEvent, t.cfg.ObserverBuffer)
	t.observerDone = make(chan struct{})
	go func() {
		defer close(t.observerDone)
		for evt := range t.observerCh {
			evt := evt
			switch evt.kind {
			case observerEventMissingTranslation:
				safeObserverCall(func() {
					t.cfg.Observer.OnMissingTranslation(evt.lang, evt.context, evt.source)
				})
			case observerEventAmbiguousLookup:
				safeObserverCall(func() {
					t.cfg.Observer.OnAmbiguousLookup(evt.lang, evt.context, evt.source, evt.candidates)
				})
			case observerEventCatalogSwitch:
				safeObserverCall(func() {
					t.cfg.Observer.OnCatalogSwitch(evt.from, evt.lang)
				})
			case observerEventLoadWarning:
				safeObserverCall(func() {
					t.cfg.Observer.OnLoadWarning(evt.lang, evt.warning)
				})
			}
		}
	}()
}

func (t *Translator) stopObserverWorker() {
	if t.observerCh == nil {
		return
	}
	close(t.observerCh)
	<-t.observerDone
	t.observerCh = nil
	t.observerDone = nil
}

// publishObserverEvent never blocks; events that do not fit the buffer are
// counted as dropped.
func (t *Translator) publishObserverEvent(evt observerEvent) {
	t.observerMu.RLock()
	defer t.observerMu.RUnlock()
	if t.cfg.Observer == nil {
		return
	}
	if t.observerCh == nil {
		if t.closed {
			t.stats.incrementDroppedEvent("observer_closed")
		}
		return
	}
	select {
	case t.observerCh <- evt:
	default:
		t.stats.incrementDroppedEvent("observer_queue_full")
	}
}
