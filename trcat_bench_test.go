package trcat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/loopcontext/trcat"
	"github.com/loopcontext/trcat/test"
)

func makeBenchTranslator(b *testing.B, observer trcat.Observer) *trcat.Translator {
	b.Helper()
	tmpDir, err := os.MkdirTemp("", "trcat-bench-*")
	if err != nil {
		b.Fatalf("failed to create temp dir: %v", err)
	}
	b.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	if err := os.WriteFile(filepath.Join(tmpDir, "fi.yaml"), []byte(test.FinnishYAML), 0o600); err != nil {
		b.Fatalf("failed to write fixture: %v", err)
	}

	logger := zerolog.Nop()
	translator, err := trcat.NewTranslator(trcat.Config{
		ResourcePath:   tmpDir,
		Language:       "fi",
		Observer:       observer,
		ObserverBuffer: 1024,
		Logger:         &logger,
	})
	if err != nil {
		b.Fatalf("failed to create translator: %v", err)
	}
	b.Cleanup(translator.Close)
	return translator
}

type noopObserver struct{}

func (noopObserver) OnMissingTranslation(lang string, context string, source string)              {}
func (noopObserver) OnAmbiguousLookup(lang string, context string, source string, candidates int) {}
func (noopObserver) OnCatalogSwitch(from string, to string)                                       {}
func (noopObserver) OnLoadWarning(lang string, w trcat.Warning)                                   {}

func BenchmarkLoadYAML(b *testing.B) {
	data := []byte(test.FinnishYAML)
	opt := trcat.WithLogger(zerolog.Nop())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = trcat.Load(data, "fi", opt)
	}
}

func BenchmarkLoadTS(b *testing.B) {
	data := []byte(test.FinnishTS)
	opt := trcat.WithLogger(zerolog.Nop())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = trcat.Load(data, "fi", opt)
	}
}

func BenchmarkResolve(b *testing.B) {
	catalog, err := trcat.Load([]byte(test.FinnishYAML), "fi", trcat.WithLogger(zerolog.Nop()))
	if err != nil {
		b.Fatalf("failed to load catalog: %v", err)
	}
	req := trcat.Request{Context: "BaseGui", Source: "&Open"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = trcat.Resolve(catalog, req)
	}
}

func BenchmarkResolvePlural(b *testing.B) {
	catalog, err := trcat.Load([]byte(test.FinnishYAML), "fi", trcat.WithLogger(zerolog.Nop()))
	if err != nil {
		b.Fatalf("failed to load catalog: %v", err)
	}
	req := trcat.Request{Context: "BaseGui", Source: "%1 second(s)", Count: trcat.Count(5), Args: []string{"5"}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = trcat.Resolve(catalog, req)
	}
}

func BenchmarkTr(b *testing.B) {
	translator := makeBenchTranslator(b, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = translator.Tr("BaseGui", "&Open")
	}
}

func BenchmarkTrParallel(b *testing.B) {
	translator := makeBenchTranslator(b, nil)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = translator.TrN("BaseGui", "%1 second(s)", 2, "2")
		}
	})
}

func BenchmarkTrMissingObserverEnabled(b *testing.B) {
	translator := makeBenchTranslator(b, noopObserver{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = translator.Tr("BaseGui", "Missing")
	}
}
