package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loopcontext/trcat"
)

func NewConvertCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "convert --to FORMAT FILE",
		Args:  cobra.ExactArgs(1),
		Short: "Convert a catalog between YAML, TOML and TS",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := trcat.ParseFormat(viper.GetString("convert-to"))
			if err != nil {
				return err
			}
			if format == trcat.FormatAuto {
				return fmt.Errorf("convert: --to is required")
			}

			catalog, err := openCatalog(args[0], viper.GetString("convert-lang"))
			if err != nil {
				return err
			}
			data, err := trcat.EncodeDocument(catalog.Document(), format)
			if err != nil {
				return fmt.Errorf("encode %s: %w", format, err)
			}

			out := viper.GetString("convert-out")
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "trcat: wrote %s\n", out)
			return nil
		},
	}
	root.AddCommand(c)
	c.Flags().String("to", "", "Target format: yaml, toml or ts")
	c.Flags().String("out", "", "Output file (default stdout)")
	c.Flags().String("lang", "", "Language of the catalog (default: the language declared in the file)")
	_ = viper.BindPFlag("convert-to", c.Flags().Lookup("to"))
	_ = viper.BindPFlag("convert-out", c.Flags().Lookup("out"))
	_ = viper.BindPFlag("convert-lang", c.Flags().Lookup("lang"))
	return c
}

// register the subcommand into rootCmd
var _ = NewConvertCmd(rootCmd)

// openCatalog loads a catalog file for rewriting. A catalog without usable
// entries is still returned.
func openCatalog(path, lang string) (*trcat.Catalog, error) {
	catalog, err := trcat.LoadFile(path, lang)
	if catalog == nil {
		return nil, err
	}
	if err != nil && !errors.Is(err, trcat.ErrEmptyDocument) {
		return nil, err
	}
	return catalog, nil
}

func writeCatalog(path string, lang string, entries []trcat.Entry, format trcat.Format) error {
	data, err := trcat.EncodeDocument(trcat.NewDocument(lang, entries), format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
