package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/loopcontext/trcat"
)

// runExtractSync loads the catalog at cfg.source (a missing file starts an
// empty one), appends every discovered message it lacks as an unfinished
// entry and refreshes the locations of the ones it has. The result is written
// to cfg.out in the source's format.
func runExtractSync(stdout io.Writer, cfg *extractConfig, found []*extracted) error {
	var (
		lang    = cfg.lang
		entries []trcat.Entry
	)
	catalog, err := openCatalog(cfg.source, cfg.lang)
	switch {
	case err == nil:
		lang = catalog.Language()
		entries = catalog.Entries()
	case errors.Is(err, fs.ErrNotExist):
	default:
		return err
	}

	index := make(map[trcat.Key]int, len(entries))
	for i, entry := range entries {
		index[entry.Key] = i
	}
	added := 0
	for _, msg := range found {
		if i, ok := index[msg.key]; ok {
			entries[i].Locations = msg.locations
			if entries[i].Status == trcat.StatusObsolete {
				entries[i].Status = trcat.StatusUnfinished
			}
			continue
		}
		entries = append(entries, trcat.Entry{
			Key:       msg.key,
			Numerus:   msg.numerus,
			Status:    trcat.StatusUnfinished,
			Locations: msg.locations,
		})
		added++
	}

	outPath := cfg.out
	if outPath == "" {
		outPath = cfg.source
	}
	format := trcat.FormatFromPath(cfg.source)
	if format == trcat.FormatAuto {
		format = trcat.FormatYAML
	}
	if err := writeCatalog(outPath, lang, entries, format); err != nil {
		return err
	}
	if added > 0 {
		fmt.Fprintf(stdout, "trcat: added %d message(s) to %s\n", added, outPath)
	}
	return nil
}
