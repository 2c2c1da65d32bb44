package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/joyprog/internal/device"
	"github.com/dshills/joyprog/internal/profile/parser"
)

type matchFlags struct {
	bus     string
	vendor  string
	product string
	version string
	name    string
	phys    string
	uniq    string
	all     bool
}

func (f *matchFlags) identity(cmd *cobra.Command) (device.Identity, error) {
	var id device.Identity

	bus, ok := device.BusTypeFromName(f.bus)
	if !ok {
		return id, fmt.Errorf("unknown bus type %q (one of %s)", f.bus, strings.Join(device.BusNames(), ", "))
	}
	id.InputID.BusType = bus

	for _, field := range []struct {
		flag  string
		value string
		dst   *uint16
	}{
		{"vendor", f.vendor, &id.InputID.Vendor},
		{"product", f.product, &id.InputID.Product},
		{"version", f.version, &id.InputID.Version},
	} {
		if field.value == "" {
			continue
		}
		v, err := parser.ParseHex(field.value)
		if err != nil {
			return id, fmt.Errorf("--%s: %w", field.flag, err)
		}
		*field.dst = v
	}

	id.Name = f.name
	id.Phys = f.phys
	if cmd.Flags().Changed("uniq") {
		uniq := f.uniq
		id.Uniq = &uniq
	}
	return id, nil
}

func newMatchCmd(c *cli) *cobra.Command {
	var f matchFlags

	cmd := &cobra.Command{
		Use:   "match [dirs...]",
		Short: "Rank the profiles that fit a device",
		Long: `Load the profiles in the given directories (or the configured ones) and list
those matching the described device, best match first. A profile matches
when bus type, vendor and product agree; equal version and name, and the
physical location and unique ID the profile is restricted to, add to its
score.`,
		Example: `  joyprog match --bus usb --vendor 046d --product c215 /usr/share/jsprog/profiles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := f.identity(cmd)
			if err != nil {
				return err
			}

			type ranked struct {
				score int
				path  string
				name  string
			}
			var matches []ranked
			for _, dir := range c.inputs(args) {
				loaded, _, err := parser.LoadDir(dir,
					parser.WithExtension(c.cfg.Profiles().Extension),
					parser.WithLogger(c.logger))
				if err != nil {
					return err
				}
				for _, l := range loaded {
					score := l.Profile.Match(dev)
					if score == device.NoMatch && !f.all {
						continue
					}
					matches = append(matches, ranked{score: score, path: l.Path, name: l.Profile.Name})
				}
			}

			sort.SliceStable(matches, func(i, j int) bool {
				return matches[i].score > matches[j].score
			})

			if len(matches) == 0 {
				c.logger.WithField("device", dev.String()).Info("No profile matches the device")
				return nil
			}

			tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tPROFILE\tPATH")
			for _, m := range matches {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", m.score, m.name, m.path)
			}
			return tw.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.bus, "bus", "usb", "Bus type of the device")
	flags.StringVar(&f.vendor, "vendor", "", "Vendor ID (hex)")
	flags.StringVar(&f.product, "product", "", "Product ID (hex)")
	flags.StringVar(&f.version, "version", "", "Version (hex)")
	flags.StringVar(&f.name, "name", "", "Device name")
	flags.StringVar(&f.phys, "phys", "", "Physical location")
	flags.StringVar(&f.uniq, "uniq", "", "Unique identifier")
	flags.BoolVar(&f.all, "all", false, "Also list profiles that do not match")
	return cmd
}
