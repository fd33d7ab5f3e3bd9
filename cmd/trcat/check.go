package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loopcontext/trcat"
)

func NewCheckCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "check FILE...",
		Args:  cobra.MinimumNArgs(1),
		Short: "Load catalogs and report their contents and warnings",
		Long: `Check loads every catalog file, prints per-status entry counts and the
warnings found while loading. It fails when a file cannot be parsed, and
with --strict also when a file has warnings or no usable entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args, viper.GetString("check-lang"), viper.GetBool("check-strict"))
		},
	}
	root.AddCommand(c)
	c.Flags().String("lang", "", "Language of the catalogs (default: the language declared in each file)")
	c.Flags().Bool("strict", false, "Treat warnings and empty catalogs as failures")
	_ = viper.BindPFlag("check-lang", c.Flags().Lookup("lang"))
	_ = viper.BindPFlag("check-strict", c.Flags().Lookup("strict"))
	return c
}

// register the subcommand into rootCmd
var _ = NewCheckCmd(rootCmd)

func runCheck(out io.Writer, files []string, lang string, strict bool) error {
	var result *multierror.Error
	for _, file := range files {
		catalog, err := trcat.LoadFile(file, lang)
		if catalog == nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
			fmt.Fprintf(out, "%s: FAILED: %v\n", file, err)
			continue
		}

		s := catalog.Summary()
		fmt.Fprintf(out, "%s: %s %s, %d entries (%d finished, %d unfinished, %d obsolete, %d plural), %d warnings\n",
			file, s.Language, catalog.Format(), s.Entries, s.Finished, s.Unfinished, s.Obsolete, s.Plural, s.Warnings)
		for _, w := range catalog.Warnings() {
			fmt.Fprintf(out, "  warning: %v\n", w)
		}

		if errors.Is(err, trcat.ErrEmptyDocument) {
			fmt.Fprintf(out, "  no usable entries\n")
			if strict {
				result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
			}
		}
		if strict && s.Warnings > 0 {
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, catalog.WarningErr()))
		}
	}
	return result.ErrorOrNil()
}
