package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/joyprog/internal/compiler"
)

func newCompileCmd(c *cli) *cobra.Command {
	var (
		outDir  string
		noCheck bool
	)

	cmd := &cobra.Command{
		Use:   "compile [files|dirs...]",
		Short: "Compile profiles into daemon payloads",
		Long: `Compile every given profile document, and every document in the given
directories, into a daemon payload named after the document. Without
arguments the configured profile directories are compiled.

A document that fails does not stop the others; the command fails if any
document failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				outDir = c.cfg.Output().Dir
			}
			comp := compiler.New(
				compiler.WithOutputDir(outDir),
				compiler.WithExtension(c.cfg.Profiles().Extension),
				compiler.WithCheck(c.cfg.Check().Enabled && !noCheck),
				compiler.WithLogger(c.logger),
			)

			results, err := comp.Compile(cmd.Context(), c.inputs(args))
			for _, res := range results {
				if res.OK() {
					fmt.Fprintf(c.stdout, "%s -> %s\n", res.Source, res.Output)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Directory to write payloads to (default from config)")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "Skip verification of the generated code")
	return cmd
}
