package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loopcontext/trcat"
)

const trcatImportPath = "github.com/loopcontext/trcat"

// extractConfig holds flags for the extract command.
type extractConfig struct {
	paths        []string
	out          string
	source       string
	lang         string
	includeTests bool
	trcatPkg     string
	excludeDirs  string
}

func NewExtractCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "extract [paths]",
		Short: "Discover message keys in Go code",
		Long: `Extract discovers messages referenced in Go code through Tr, TrD, TrN and
TrND calls and trcat.Request literals, and optionally syncs them into a
catalog skeleton.

If no paths are provided, scans the current directory.

Modes:
  - Keys only: omit --source; writes unique keys as context|source[|comment],
    one per line, to --out or stdout.
  - Sync: set --source to a catalog file; adds missing messages as unfinished
    entries and writes the catalog to --out (default: the source file).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &extractConfig{
				paths:        args,
				out:          viper.GetString("extract-out"),
				source:       viper.GetString("extract-source"),
				lang:         viper.GetString("extract-lang"),
				includeTests: viper.GetBool("extract-include-tests"),
				trcatPkg:     viper.GetString("extract-trcat-pkg"),
				excludeDirs:  viper.GetString("extract-exclude"),
			}
			if len(cfg.paths) == 0 {
				cfg.paths = []string{"."}
			}
			return runExtract(cmd.OutOrStdout(), cfg)
		},
	}
	root.AddCommand(c)
	c.Flags().String("out", "", "Output file (keys: one key per line; sync: catalog path). Default stdout for keys.")
	c.Flags().String("source", "", "Catalog to sync discovered messages into (enables sync mode).")
	c.Flags().String("lang", "", "Language written into a synced catalog (default: the catalog's own).")
	c.Flags().Bool("include-tests", false, "Include _test.go files.")
	c.Flags().String("trcat-pkg", trcatImportPath, "Import path of trcat (files not importing it are skipped).")
	c.Flags().String("exclude", "vendor", "Comma-separated dir names to skip.")
	_ = viper.BindPFlag("extract-out", c.Flags().Lookup("out"))
	_ = viper.BindPFlag("extract-source", c.Flags().Lookup("source"))
	_ = viper.BindPFlag("extract-lang", c.Flags().Lookup("lang"))
	_ = viper.BindPFlag("extract-include-tests", c.Flags().Lookup("include-tests"))
	_ = viper.BindPFlag("extract-trcat-pkg", c.Flags().Lookup("trcat-pkg"))
	_ = viper.BindPFlag("extract-exclude", c.Flags().Lookup("exclude"))
	return c
}

// register the subcommand into rootCmd
var _ = NewExtractCmd(rootCmd)

// callShape describes where a translator method takes its arguments.
type callShape struct {
	disambiguation int // -1 when the method takes none
	numerus        bool
}

// extracted is a message found in code.
type extracted struct {
	key       trcat.Key
	numerus   bool
	locations []trcat.Location
}

// keyExtractor collects messages from Go files via AST.
type keyExtractor struct {
	trcatImport string
	trcatName   string // local name in current file (e.g. "trcat")
	fset        *token.FileSet
	path        string
	found       map[trcat.Key]*extracted
	methods     map[string]callShape
}

func newKeyExtractor(trcatImport string) *keyExtractor {
	return &keyExtractor{
		trcatImport: trcatImport,
		found:       make(map[trcat.Key]*extracted),
		methods: map[string]callShape{
			"Tr":   {disambiguation: -1},
			"TrD":  {disambiguation: 2},
			"TrN":  {disambiguation: -1, numerus: true},
			"TrND": {disambiguation: 2, numerus: true},
		},
	}
}

func (e *keyExtractor) extractFromFile(path string, src []byte) error {
	e.fset = token.NewFileSet()
	e.path = filepath.ToSlash(path)
	f, err := parser.ParseFile(e.fset, path, src, parser.ParseComments)
	if err != nil {
		return err
	}
	e.trcatName = e.trcatImportName(f)
	if e.trcatName == "" {
		return nil
	}
	ast.Walk(e, f)
	return nil
}

func (e *keyExtractor) trcatImportName(file *ast.File) string {
	for _, imp := range file.Imports {
		if imp.Path == nil {
			continue
		}
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != e.trcatImport {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return filepath.Base(path)
	}
	return ""
}

func (e *keyExtractor) Visit(node ast.Node) ast.Visitor {
	// Request literals, standalone or passed to Resolve/TrCtx
	if cl, ok := node.(*ast.CompositeLit); ok {
		e.visitCompositeLit(cl)
		return e
	}
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return e
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return e
	}
	shape, ok := e.methods[sel.Sel.Name]
	if !ok || len(call.Args) < 2 || shape.disambiguation >= len(call.Args) {
		return e
	}

	key := trcat.Key{Source: e.extractString(call.Args[1])}
	if key.Source == "" {
		return e
	}
	key.Context = e.extractString(call.Args[0])
	if shape.disambiguation > 0 {
		key.Disambiguation = e.extractString(call.Args[shape.disambiguation])
	}
	e.add(key, shape.numerus, call.Pos())
	return e
}

func (e *keyExtractor) add(key trcat.Key, numerus bool, pos token.Pos) {
	found, ok := e.found[key]
	if !ok {
		found = &extracted{key: key}
		e.found[key] = found
	}
	found.numerus = found.numerus || numerus
	p := e.fset.Position(pos)
	found.locations = append(found.locations, trcat.Location{File: e.path, Line: p.Line})
}

func (e *keyExtractor) extractString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.BasicLit:
		if t.Kind == token.STRING {
			s, _ := strconv.Unquote(t.Value)
			return s
		}
	case *ast.BinaryExpr:
		if t.Op == token.ADD {
			return e.extractString(t.X) + e.extractString(t.Y)
		}
	case *ast.ParenExpr:
		return e.extractString(t.X)
	}
	return ""
}

// messages returns the discovered messages sorted by key.
func (e *keyExtractor) messages() []*extracted {
	out := make([]*extracted, 0, len(e.found))
	for _, found := range e.found {
		out = append(out, found)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].key.String() < out[j].key.String()
	})
	return out
}

func (e *keyExtractor) sortedKeys() []string {
	out := make([]string, 0, len(e.found))
	for _, found := range e.messages() {
		out = append(out, found.key.String())
	}
	return out
}

func runExtract(stdout io.Writer, cfg *extractConfig) error {
	excludeSet := make(map[string]struct{})
	for _, d := range strings.Split(cfg.excludeDirs, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			excludeSet[d] = struct{}{}
		}
	}
	ext := newKeyExtractor(cfg.trcatPkg)
	for _, path := range cfg.paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					if _, skip := excludeSet[info.Name()]; skip {
						return filepath.SkipDir
					}
					return nil
				}
				return extractGoFile(ext, cfg, p)
			})
		} else {
			err = extractGoFile(ext, cfg, path)
		}
		if err != nil {
			return err
		}
	}

	if cfg.source != "" {
		return runExtractSync(stdout, cfg, ext.messages())
	}
	// Keys-only output (one per line)
	out := strings.Join(ext.sortedKeys(), "\n")
	if out != "" {
		out += "\n"
	}
	if cfg.out != "" {
		return os.WriteFile(cfg.out, []byte(out), 0644)
	}
	_, err := fmt.Fprint(stdout, out)
	return err
}

func extractGoFile(ext *keyExtractor, cfg *extractConfig, path string) error {
	if filepath.Ext(path) != ".go" {
		return nil
	}
	if !cfg.includeTests && strings.HasSuffix(path, "_test.go") {
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ext.extractFromFile(path, src)
}
