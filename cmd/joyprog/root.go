package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/joyprog/internal/config"
	"github.com/dshills/joyprog/internal/logging"
)

// cli holds what every command needs once the root command has loaded
// the configuration.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "joyprog",
		Short: "Compile joystick control profiles for the jsprog daemon",
		Long: `joyprog turns joystick profile documents into the Lua payloads run by the
jsprog daemon. A profile maps the device's buttons to key presses and mouse
movements, optionally depending on shift states formed by other buttons.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", config.DefaultPath(), "Path to configuration file")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(
		newCompileCmd(c),
		newCheckCmd(c),
		newFormatCmd(c),
		newMatchCmd(c),
		newDumpCmd(c),
		newWatchCmd(c),
	)
	return cmd
}

// setup loads the configuration, applies the global flags on top of it
// and creates the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.cfg = config.New(config.WithFile(c.configPath))
	if err := c.cfg.Load(); err != nil {
		return err
	}

	overrides := map[string]string{
		"log-level":  "logging.level",
		"log-format": "logging.format",
	}
	var setErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if path, ok := overrides[f.Name]; ok && setErr == nil {
			setErr = c.cfg.Set(path, f.Value.String())
		}
	})
	if setErr != nil {
		return setErr
	}

	logCfg := c.cfg.Logging()
	logger, err := logging.New(logCfg.Level, logCfg.Format, c.stderr)
	if err != nil {
		return err
	}
	c.logger = logger
	c.logger.WithField("config", c.cfg.Path()).Debug("Configuration loaded")
	return nil
}

// inputs returns the paths given on the command line, or the configured
// profile directories when there are none.
func (c *cli) inputs(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return c.cfg.Profiles().Dirs
}
