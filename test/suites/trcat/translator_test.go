package test_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/loopcontext/trcat"
	"github.com/loopcontext/trcat/test"
	mock_trcat "github.com/loopcontext/trcat/test/mock"
)

type blockingObserver struct {
	release chan struct{}
}

func (o *blockingObserver) OnMissingTranslation(lang string, context string, source string) {
}

func (o *blockingObserver) OnAmbiguousLookup(lang string, context string, source string, candidates int) {
}

func (o *blockingObserver) OnLoadWarning(lang string, w trcat.Warning) {
}

func (o *blockingObserver) OnCatalogSwitch(from string, to string) {
	<-o.release
}

type panickingObserver struct {
	mu    sync.Mutex
	calls int
}

func (o *panickingObserver) hit() {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
	panic("observer failure")
}

func (o *panickingObserver) OnMissingTranslation(lang string, context string, source string) {
	o.hit()
}

func (o *panickingObserver) OnAmbiguousLookup(lang string, context string, source string, candidates int) {
	o.hit()
}

func (o *panickingObserver) OnLoadWarning(lang string, w trcat.Warning) {
	o.hit()
}

func (o *panickingObserver) OnCatalogSwitch(from string, to string) {
	o.hit()
}

func (o *panickingObserver) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

var _ = Describe("Translator", func() {
	var (
		tmpDir string
		logger zerolog.Logger
		cfg    trcat.Config
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "trcat-suite-*")
		Expect(err).NotTo(HaveOccurred())
		Expect(test.WriteCatalogs(tmpDir, map[string]string{
			"fi.ts":   test.FinnishTS,
			"sv.toml": test.SwedishTOML,
			"de.yaml": "contexts: [\n",
			"da.yaml": "language: da\ncontexts: []\n",
		})).To(Succeed())

		logger = zerolog.Nop()
		cfg = trcat.Config{
			ResourcePath:     tmpDir,
			Language:         "fi_FI",
			ReloadRetryDelay: time.Millisecond,
			Logger:           &logger,
		}
	})

	AfterEach(func() {
		_ = os.RemoveAll(tmpDir)
	})

	Context("resolving", func() {
		var translator *trcat.Translator

		BeforeEach(func() {
			var err error
			translator, err = trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			translator.Close()
		})

		It("should load the configured language", func() {
			Expect(translator.Language()).To(Equal("fi-FI"))
			Expect(translator.Current()).NotTo(BeNil())
		})

		It("should translate a finished message", func() {
			Expect(translator.Tr("BaseGui", "&Open")).To(Equal("&Avaa"))
		})

		It("should pick plural variants", func() {
			Expect(translator.TrN("BaseGui", "%1 second(s)", 1, "1")).To(Equal("sekunti"))
			Expect(translator.TrN("BaseGui", "%1 second(s)", 5, "5")).To(Equal("5 sekuntia"))
		})

		It("should keep disambiguated messages apart", func() {
			Expect(translator.TrD("BaseGui", "Top", "vertical alignment")).To(Equal("Ylä"))
			Expect(translator.TrD("BaseGui", "Top", "beginning of list")).To(Equal("Alkuun"))
			Expect(translator.TrND("BaseGui", "Top", "beginning of list", 2)).To(Equal("Alkuun"))
		})

		It("should fall back to source text", func() {
			Expect(translator.Tr("BaseGui", "Save")).To(Equal("Save"))
			Expect(translator.Tr("BaseGui", "Print")).To(Equal("Print"))
			Expect(translator.Tr("Nowhere", "Hello %1", "you")).To(Equal("Hello you"))
		})

		It("should resolve against the catalog pinned in a context", func() {
			ctx := &test.MockContext{Ctx: context.Background()}
			pinned := translator.WithSnapshot(ctx.Context())

			Expect(translator.SwitchLanguage("sv")).To(Succeed())
			Expect(translator.Tr("BaseGui", "&Open")).To(Equal("&Öppna"))
			Expect(translator.TrCtx(pinned, trcat.Request{Context: "BaseGui", Source: "&Open"})).To(Equal("&Avaa"))
			Expect(translator.TrCtx(ctx, trcat.Request{Context: "BaseGui", Source: "&Open"})).To(Equal("&Öppna"))

			catalog, ok := trcat.FromContext(pinned)
			Expect(ok).To(BeTrue())
			Expect(catalog.Retired()).To(BeTrue())
			Expect(ctx.Lookups()).To(BeNumerically(">", 0))
		})
	})

	Context("switching language", func() {
		var translator *trcat.Translator

		BeforeEach(func() {
			var err error
			cfg.ReloadRetries = 2
			translator, err = trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			translator.Close()
		})

		It("should publish the new catalog and retire the old one", func() {
			old := translator.Current()
			Expect(translator.SwitchLanguage("sv")).To(Succeed())
			Expect(translator.Language()).To(Equal("sv"))
			Expect(old.Retired()).To(BeTrue())
			Expect(old.Resolve(trcat.Request{Context: "BaseGui", Source: "&Open"})).To(Equal("&Avaa"))
			Expect(translator.Current().Retired()).To(BeFalse())
		})

		It("should keep the current catalog when the new one is malformed", func() {
			err := translator.SwitchLanguage("de")
			Expect(errors.Is(err, trcat.ErrMalformed)).To(BeTrue())
			Expect(translator.Language()).To(Equal("fi-FI"))
			Expect(translator.Tr("BaseGui", "&Open")).To(Equal("&Avaa"))
		})

		It("should publish an empty catalog and report it", func() {
			err := translator.SwitchLanguage("da")
			Expect(errors.Is(err, trcat.ErrEmptyDocument)).To(BeTrue())
			Expect(translator.Language()).To(Equal("da"))
			Expect(translator.Tr("BaseGui", "&Open")).To(Equal("&Open"))
		})

		It("should report a missing catalog after retrying", func() {
			started := time.Now()
			err := translator.SwitchLanguage("ja")
			Expect(errors.Is(err, trcat.ErrCatalogNotFound)).To(BeTrue())
			Expect(time.Since(started)).To(BeNumerically(">=", 2*time.Millisecond))
			Expect(translator.Language()).To(Equal("fi-FI"))
		})

		It("should publish a catalog built outside the translator", func() {
			catalog, err := trcat.Load([]byte(test.SwedishTOML), "sv", trcat.WithFormat(trcat.FormatTOML), trcat.WithLogger(logger))
			Expect(err).NotTo(HaveOccurred())

			old := translator.Publish(catalog)
			Expect(old.Language()).To(Equal("fi-FI"))
			Expect(translator.Current()).To(BeIdenticalTo(catalog))
			Expect(translator.Publish(nil)).To(BeIdenticalTo(catalog))
		})

		It("should reload changed files", func() {
			Expect(test.WriteCatalogs(tmpDir, map[string]string{
				"en.yaml": "contexts:\n  - name: A\n    messages:\n      - source: Hi\n        translation: Hello before reload\n",
			})).To(Succeed())
			Expect(translator.SwitchLanguage("en")).To(Succeed())
			Expect(translator.Tr("A", "Hi")).To(Equal("Hello before reload"))

			Expect(test.WriteCatalogs(tmpDir, map[string]string{
				"en.yaml": "contexts:\n  - name: A\n    messages:\n      - source: Hi\n        translation: Hello after reload\n",
			})).To(Succeed())
			Expect(translator.Reload()).To(Succeed())
			Expect(translator.Tr("A", "Hi")).To(Equal("Hello after reload"))
		})

		It("should be safe under concurrent reads and switches", func() {
			const (
				readers     = 12
				readerIters = 200
				switches    = 20
			)

			errCh := make(chan error, readers+switches)
			var wg sync.WaitGroup

			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < readerIters; j++ {
						got := translator.Tr("BaseGui", "&Open")
						if got != "&Avaa" && got != "&Öppna" {
							errCh <- fmt.Errorf("resolved against a partial catalog: %q", got)
							return
						}
					}
				}()
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < switches; i++ {
					lang := "sv"
					if i%2 == 1 {
						lang = "fi"
					}
					if err := translator.SwitchLanguage(lang); err != nil {
						errCh <- err
						return
					}
				}
			}()

			wg.Wait()
			close(errCh)

			for err := range errCh {
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})

	Context("without a catalog", func() {
		It("should resolve to source text", func() {
			cfg.Language = "ja"
			translator, err := trcat.NewTranslator(cfg)
			defer translator.Close()

			Expect(errors.Is(err, trcat.ErrCatalogNotFound)).To(BeTrue())
			Expect(translator.Current()).To(BeNil())
			Expect(translator.Tr("BaseGui", "&Open")).To(Equal("&Open"))
		})
	})

	Context("observing", func() {
		var ctrl *gomock.Controller

		BeforeEach(func() {
			ctrl = gomock.NewController(GinkgoT())
		})

		AfterEach(func() {
			ctrl.Finish()
		})

		It("should notify the observer", func() {
			observer := mock_trcat.NewMockObserver(ctrl)
			gomock.InOrder(
				observer.EXPECT().OnCatalogSwitch("", "fi-FI"),
				observer.EXPECT().OnMissingTranslation("fi-FI", "BaseGui", "Save"),
				observer.EXPECT().OnAmbiguousLookup("fi-FI", "BaseGui", "Top", 2),
				observer.EXPECT().OnCatalogSwitch("fi-FI", "sv"),
			)

			cfg.Observer = observer
			translator, err := trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(translator.Tr("BaseGui", "Save")).To(Equal("Save"))
			Expect(translator.Tr("BaseGui", "Top")).To(Equal("Ylä"))
			Expect(translator.SwitchLanguage("sv")).To(Succeed())
			translator.Close()
		})

		It("should forward load warnings", func() {
			Expect(test.WriteCatalogs(tmpDir, map[string]string{
				"nb.yaml": "contexts:\n  - name: A\n    messages:\n      - source: x\n        translation: y\n      - source: x\n        translation: z\n",
			})).To(Succeed())

			observer := mock_trcat.NewMockObserver(ctrl)
			observer.EXPECT().OnLoadWarning("nb", gomock.Any()).Do(func(lang string, w trcat.Warning) {
				Expect(w.Kind).To(Equal(trcat.WarningDuplicateKey))
			})
			observer.EXPECT().OnCatalogSwitch("", "nb")

			cfg.Language = "nb"
			cfg.Observer = observer
			translator, err := trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())
			translator.Close()

			stats := translator.SnapshotStats()
			Expect(stats.LoadWarnings).To(HaveKeyWithValue("nb:duplicate_key", 1))
		})
	})

	Context("stats", func() {
		It("should count misses, ambiguity and switches", func() {
			now := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
			cfg.NowFn = func() time.Time { return now }
			translator, err := trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())
			defer translator.Close()

			translator.Tr("BaseGui", "Missing")
			translator.Tr("BaseGui", "Missing")
			translator.Tr("BaseGui", "Top")
			Expect(translator.SwitchLanguage("sv")).To(Succeed())

			stats := translator.SnapshotStats()
			Expect(stats.MissingTranslations).To(HaveKeyWithValue("fi-FI|BaseGui|Missing", 2))
			Expect(stats.AmbiguousLookups).To(HaveKeyWithValue("fi-FI|BaseGui|Top", 1))
			Expect(stats.LanguageSwitches).To(HaveKeyWithValue("none->fi-FI", 1))
			Expect(stats.LanguageSwitches).To(HaveKeyWithValue("fi-FI->sv", 1))
			Expect(stats.LastSwitchAt).To(Equal(now))

			translator.ResetStats()
			stats = translator.SnapshotStats()
			Expect(stats.MissingTranslations).To(BeEmpty())
			Expect(stats.LastSwitchAt.IsZero()).To(BeTrue())
		})

		It("should cap stat keys", func() {
			cfg.StatsMaxKeys = 2
			translator, err := trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())
			defer translator.Close()

			translator.Tr("A", "one")
			translator.Tr("A", "two")
			translator.Tr("A", "three")

			stats := translator.SnapshotStats()
			Expect(stats.MissingTranslations).To(HaveLen(2))
			Expect(stats.MissingTranslations).To(HaveKeyWithValue("fi-FI|A|one", 1))
			Expect(stats.MissingTranslations).To(HaveKeyWithValue("__overflow__", 2))
		})

		It("should drop observer events instead of blocking", func() {
			observer := &blockingObserver{release: make(chan struct{})}
			cfg.Observer = observer
			cfg.ObserverBuffer = 1
			translator, err := trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())

			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 5; i++ {
					translator.Tr("A", "missing")
				}
			}()
			Eventually(done).Should(BeClosed())

			Expect(translator.SnapshotStats().DroppedEvents["observer_queue_full"]).To(BeNumerically(">=", 3))
			close(observer.release)
			translator.Close()
		})

		It("should survive a panicking observer", func() {
			observer := &panickingObserver{}
			cfg.Observer = observer
			translator, err := trcat.NewTranslator(cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(translator.Tr("A", "missing")).To(Equal("missing"))
			translator.Close()
			Expect(observer.Calls()).To(Equal(2))

			translator.Tr("A", "after close")
			Expect(translator.SnapshotStats().DroppedEvents).To(HaveKeyWithValue("observer_closed", 1))
		})
	})
})
