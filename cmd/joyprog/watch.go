package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/joyprog/internal/compiler"
	"github.com/dshills/joyprog/internal/watcher"
)

func newWatchCmd(c *cli) *cobra.Command {
	var (
		outDir  string
		initial bool
	)

	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Recompile profiles when they change",
		Long: `Watch the given profile directories (or the configured ones) and recompile a
document into the output directory whenever it is saved. The payload of a
deleted document is removed. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				outDir = c.cfg.Output().Dir
			}
			ext := c.cfg.Profiles().Extension
			dirs := c.inputs(args)
			if len(dirs) == 0 {
				return compiler.ErrNoInput
			}

			comp := compiler.New(
				compiler.WithOutputDir(outDir),
				compiler.WithExtension(ext),
				compiler.WithCheck(c.cfg.Check().Enabled),
				compiler.WithLogger(c.logger),
			)

			src, err := watcher.NewFSNotifySource(ext)
			if err != nil {
				return err
			}
			defer src.Close()
			for _, dir := range dirs {
				if err := src.Add(dir); err != nil {
					return err
				}
			}

			if initial {
				// Failures are logged per document; keep watching.
				_, _ = comp.Compile(cmd.Context(), dirs)
			}

			c.logger.WithFields(logrus.Fields{
				"dirs":   dirs,
				"output": outDir,
			}).Info("Watching for profile changes")

			w := watcher.New(src,
				watcher.WithDebounceDelay(c.cfg.Watch().Debounce),
				watcher.WithLogger(c.logger))
			return w.Run(cmd.Context(), func(e watcher.Event) {
				log := c.logger.WithField("document", e.Path)
				if e.Op.Gone() {
					if err := comp.Remove(e.Path); err != nil {
						log.WithError(err).Warn("Payload could not be removed")
						return
					}
					log.Info("Profile removed")
					return
				}
				if res := comp.CompileFile(e.Path); res.OK() {
					log.WithField("output", res.Output).Info("Profile recompiled")
				}
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Directory to write payloads to (default from config)")
	cmd.Flags().BoolVar(&initial, "initial", true, "Compile every profile before watching")
	return cmd
}
