package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loopcontext/trcat"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "trcat",
		Short:         "Translation catalog tool: check, resolve, convert, extract and merge catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd)
		},
	}
	cmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	cmd.PersistentFlags().Bool("quiet", false, "Only log errors")
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", cmd.PersistentFlags().Lookup("quiet"))
	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd()

func init() {
	viper.SetEnvPrefix("TRCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogging(cmd *cobra.Command) {
	level := zerolog.InfoLevel
	switch {
	case viper.GetBool("debug"):
		level = zerolog.DebugLevel
	case viper.GetBool("quiet"):
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	out := cmd.ErrOrStderr()
	if f, ok := out.(*os.File); ok {
		out = consoleWriter(f)
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	trcat.Logger = log.With().Str("sys", "trcat").Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("trcat failed")
		os.Exit(1)
	}
}
