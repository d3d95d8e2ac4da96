// Package main is the accu command: journal article conversion, metadata
// tooling, member credential checks and the members-only web front end.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "accu",
	Short: "Tools for the ACCU website",
	Long: `accu converts journal articles from the old website into AsciiDoc pages,
turns legacy bibliographies and exported article records into page metadata,
checks member credentials and serves the members-only journal pages.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd.ErrOrStderr(), viper.GetBool("verbose"))
		slog.SetDefault(logger)

		// maxprocs.Set only fails on an invalid GOMAXPROCS; runtime defaults apply then.
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./accu.yaml or ~/.config/accu/accu.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("accu")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "accu"))
		}
	}

	viper.SetDefault("database.driver", "sqlite3")
	viper.SetDefault("web.addr", ":8080")
	viper.SetDefault("web.pages", "pages")
	viper.SetEnvPrefix("ACCU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each named flag to the viper key "<section>.<name>".
func bindFlags(section string, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = viper.BindPFlag(section+"."+name, flags.Lookup(name))
	}
}

// newLogger returns a text logger on w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
