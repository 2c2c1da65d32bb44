package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/joyprog/internal/compiler"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files|dirs...]",
		Short: "Validate profiles without writing payloads",
		Long: `Parse every given profile document, generate its code and verify the code
against the daemon API. One line is reported per document. The command fails
if any document is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp := compiler.New(
				compiler.WithExtension(c.cfg.Profiles().Extension),
				compiler.WithCheck(true),
				compiler.WithWrite(false),
				compiler.WithLogger(c.logger),
			)

			results, err := comp.Compile(cmd.Context(), c.inputs(args))
			for _, res := range results {
				if res.OK() {
					fmt.Fprintf(c.stdout, "ok    %s (%s, %d keys)\n", res.Source, res.Profile.Name, len(res.Profile.KeyProfiles()))
				} else {
					fmt.Fprintf(c.stdout, "FAIL  %s: %v\n", res.Source, res.Err)
				}
			}
			return err
		},
	}
}
