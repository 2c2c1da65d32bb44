package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/joyprog/internal/profile/parser"
)

func newFormatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "format FILE",
		Short: "Rewrite a profile in canonical form",
		Long: `Parse a profile document and write it back to standard output in canonical
form: fixed indentation and attribute order, keys referred to by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}
			return prof.WriteXML(c.stdout)
		},
	}
}
