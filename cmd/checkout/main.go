package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fjod/go_checkout/internal/config"
	"github.com/fjod/go_checkout/internal/logger"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// app is shared by the subcommands once PersistentPreRunE has run.
type app struct {
	v       *viper.Viper
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "checkout",
		Short:         "Mock checkout API and interactive checkout wizard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.envFile)
			if err != nil {
				return codeError(3, "loading config: %s", err)
			}
			log, err := logger.New(cfg.AppEnv)
			if err != nil {
				return codeError(3, "building logger: %s", err)
			}
			zap.ReplaceGlobals(log)
			a.cfg, a.logger = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "Path of a .env file to load if present")
	pf.String("config", "", "Optional config file (yaml, json or toml)")
	_ = a.v.BindPFlag(config.KeyConfigFile, pf.Lookup("config"))

	root.AddCommand(newServeCmd(a), newRunCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
