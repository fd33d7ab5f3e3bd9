package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loopcontext/trcat"
)

// mergeConfig holds flags for the merge command.
type mergeConfig struct {
	source          string
	targetLangs     string
	targetDir       string
	outdir          string
	translatePrefix string
}

func NewMergeCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "merge --source FILE",
		Short: "Produce per-language translate files from a source catalog",
		Long: `Merge produces per-language translate files from a source catalog. For each
target language it writes <prefix><lang><ext> in the source's format:
  - messages the target already has keep their translation and status, with
    locations and extra comments refreshed from the source;
  - messages the target lacks are added as unfinished;
  - target messages the source no longer has are marked obsolete.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &mergeConfig{
				source:          viper.GetString("merge-source"),
				targetLangs:     viper.GetString("merge-target-langs"),
				targetDir:       viper.GetString("merge-target-dir"),
				outdir:          viper.GetString("merge-outdir"),
				translatePrefix: viper.GetString("merge-translate-prefix"),
			}
			return runMerge(cmd.ErrOrStderr(), cfg)
		},
	}
	root.AddCommand(c)
	c.Flags().String("source", "", "Source catalog (e.g. resources/translations/en.yaml). Required.")
	c.Flags().String("targetLangs", "", "Comma-separated target language tags (e.g. fi,sv).")
	c.Flags().String("targetDir", "", "Directory containing target catalogs; language inferred from filenames (e.g. fi.yaml -> fi).")
	c.Flags().String("outdir", "", "Where to write translate files (default: same dir as source).")
	c.Flags().String("translatePrefix", "translate.", "Filename prefix for output files.")
	_ = viper.BindPFlag("merge-source", c.Flags().Lookup("source"))
	_ = viper.BindPFlag("merge-target-langs", c.Flags().Lookup("targetLangs"))
	_ = viper.BindPFlag("merge-target-dir", c.Flags().Lookup("targetDir"))
	_ = viper.BindPFlag("merge-outdir", c.Flags().Lookup("outdir"))
	_ = viper.BindPFlag("merge-translate-prefix", c.Flags().Lookup("translatePrefix"))
	return c
}

// register the subcommand into rootCmd
var _ = NewMergeCmd(rootCmd)

func runMerge(stderr io.Writer, cfg *mergeConfig) error {
	if cfg.source == "" {
		return fmt.Errorf("merge: --source is required")
	}
	source, err := openCatalog(cfg.source, "")
	if err != nil {
		return err
	}
	ext := filepath.Ext(cfg.source)
	format := trcat.FormatFromPath(cfg.source)
	if format == trcat.FormatAuto {
		format = source.Format()
	}

	targets := cfg.targetLangsList()
	if len(targets) == 0 && cfg.targetDir != "" {
		targets, err = readTargetLangsFromDir(cfg.targetDir, cfg.source, cfg.translatePrefix)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("merge: specify --targetLangs or --targetDir")
	}

	outdir := cfg.outdir
	if outdir == "" {
		outdir = filepath.Dir(cfg.source)
	}
	targetDir := cfg.targetDir
	if targetDir == "" {
		targetDir = filepath.Dir(cfg.source)
	}

	for _, lang := range targets {
		var existing []trcat.Entry
		target, err := openCatalog(filepath.Join(targetDir, lang+ext), lang)
		switch {
		case err == nil:
			existing = target.Entries()
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("merge %s: %w", lang, err)
		}

		outPath := filepath.Join(outdir, cfg.translatePrefix+lang+ext)
		if err := writeCatalog(outPath, lang, mergeEntries(source.Entries(), existing), format); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "trcat: wrote %s\n", outPath)
	}
	return nil
}

// mergeEntries lays out the source messages in source order followed by the
// target's messages that the source dropped, now obsolete.
func mergeEntries(source, target []trcat.Entry) []trcat.Entry {
	byKey := make(map[trcat.Key]trcat.Entry, len(target))
	for _, entry := range target {
		byKey[entry.Key] = entry
	}
	out := make([]trcat.Entry, 0, len(source)+len(target))
	seen := make(map[trcat.Key]struct{}, len(source))
	for _, src := range source {
		if src.Status == trcat.StatusObsolete {
			continue
		}
		seen[src.Key] = struct{}{}
		entry, ok := byKey[src.Key]
		if !ok {
			out = append(out, trcat.Entry{
				Key:          src.Key,
				Numerus:      src.Numerus,
				Status:       trcat.StatusUnfinished,
				Locations:    src.Locations,
				ExtraComment: src.ExtraComment,
			})
			continue
		}
		entry.Locations = src.Locations
		entry.ExtraComment = src.ExtraComment
		if entry.Status == trcat.StatusObsolete {
			entry.Status = trcat.StatusUnfinished
		}
		out = append(out, entry)
	}
	for _, entry := range target {
		if _, ok := seen[entry.Key]; ok {
			continue
		}
		entry.Status = trcat.StatusObsolete
		out = append(out, entry)
	}
	return out
}

func (c *mergeConfig) targetLangsList() []string {
	if c.targetLangs == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(c.targetLangs, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func readTargetLangsFromDir(dir, sourcePath, prefix string) ([]string, error) {
	sourceBase := filepath.Base(sourcePath)
	ext := filepath.Ext(sourcePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var langs []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ext {
			continue
		}
		if name == sourceBase || (prefix != "" && strings.HasPrefix(name, prefix)) {
			continue
		}
		lang := strings.TrimSpace(strings.TrimSuffix(name, ext))
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		langs = append(langs, lang)
	}
	return langs, nil
}
