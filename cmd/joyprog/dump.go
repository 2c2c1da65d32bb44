package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/joyprog/internal/profile/parser"
)

// ErrNoQueryResult is returned when a --query path selects nothing.
var ErrNoQueryResult = errors.New("query matched nothing")

func newDumpCmd(c *cli) *cobra.Command {
	var (
		format string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the structure of a profile",
		Long: `Print a summary of a profile: identity, shift levels and the handler tree
of every key. With --query only the part selected by a GJSON path over the
JSON form of the summary is printed, e.g. "keys.#.name" or
"keys.#(name==BTN_TRIGGER).shifts".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}

			var value any = prof.Summary()
			if query != "" {
				data, err := json.Marshal(value)
				if err != nil {
					return err
				}
				res := gjson.GetBytes(data, query)
				if !res.Exists() {
					return fmt.Errorf("%w: %s", ErrNoQueryResult, query)
				}
				if !res.IsObject() && !res.IsArray() {
					_, err := fmt.Fprintln(c.stdout, res.String())
					return err
				}
				value = res.Value()
			}

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(c.stdout)
				enc.SetIndent(2)
				if err := enc.Encode(value); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(c.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(value)
			default:
				return fmt.Errorf("unknown format %q (yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "GJSON path selecting part of the summary")
	return cmd
}
