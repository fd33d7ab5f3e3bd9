package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loopcontext/trcat"
)

func NewResolveCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "resolve --file FILE SOURCE [ARGS...]",
		Args:  cobra.MinimumNArgs(1),
		Short: "Resolve one message against a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			file := viper.GetString("resolve-file")
			if file == "" {
				return fmt.Errorf("resolve: --file is required")
			}
			catalog, err := trcat.LoadFile(file, viper.GetString("resolve-lang"))
			if catalog == nil {
				return err
			}

			req := trcat.Request{
				Context:        viper.GetString("resolve-context"),
				Source:         args[0],
				Disambiguation: viper.GetString("resolve-comment"),
				Args:           args[1:],
			}
			if cmd.Flags().Changed("count") {
				req.Count = trcat.Count(viper.GetInt("resolve-count"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalog.Resolve(req))
			return nil
		},
	}
	root.AddCommand(c)
	c.Flags().String("file", "", "Catalog file")
	c.Flags().String("lang", "", "Language of the catalog (default: the language declared in the file)")
	c.Flags().String("context", "", "Message context")
	c.Flags().String("comment", "", "Disambiguation comment")
	c.Flags().Int("count", 0, "Plural count")
	_ = viper.BindPFlag("resolve-file", c.Flags().Lookup("file"))
	_ = viper.BindPFlag("resolve-lang", c.Flags().Lookup("lang"))
	_ = viper.BindPFlag("resolve-context", c.Flags().Lookup("context"))
	_ = viper.BindPFlag("resolve-comment", c.Flags().Lookup("comment"))
	_ = viper.BindPFlag("resolve-count", c.Flags().Lookup("count"))
	return c
}

// register the subcommand into rootCmd
var _ = NewResolveCmd(rootCmd)
