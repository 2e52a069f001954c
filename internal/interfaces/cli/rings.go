package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/RSU-Analyzer/internal/domain/ring"
)

// newRingsCmd creates the rings command: list the named rings available to
// --ring, built-ins plus config-registered extras.
func newRingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rings",
		Short:   "List the named rings available to --ring",
		Example: "  rsu rings\n  rsu rings --output json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			entries := make(ringList, 0, len(cliCtx.Catalog))
			for _, name := range cliCtx.Catalog.Names() {
				entry := ringEntry{
					Name:         name,
					Conformation: cliCtx.Catalog[name],
					Source:       "built-in",
				}
				if _, fromConfig := cliCtx.Config.Rings[name]; fromConfig {
					entry.Source = "config"
				}
				if conf, parseErr := ring.ParseConformation(entry.Conformation); parseErr == nil {
					entry.Canonical = conf.String()
					entry.Units = conf.Len()
				} else {
					entry.Invalid = true
				}
				entries = append(entries, entry)
			}

			return PrintResult(cmd, entries)
		},
	}
}

// ringEntry describes one catalog ring.
type ringEntry struct {
	Name         string `json:"name"`
	Conformation string `json:"conformation"`
	Canonical    string `json:"canonical,omitempty"`
	Units        int    `json:"units,omitempty"`
	Source       string `json:"source"`
	Invalid      bool   `json:"invalid,omitempty"`
}

// ringList renders the catalog listing.
type ringList []ringEntry

func (l ringList) String() string {
	lines := make([]string, 0, len(l))
	for _, e := range l {
		switch {
		case e.Invalid:
			lines = append(lines, fmt.Sprintf("%-12s %s (invalid, %s)", e.Name, e.Conformation, e.Source))
		default:
			lines = append(lines, fmt.Sprintf("%-12s %s (%d units, %s)", e.Name, e.Conformation, e.Units, e.Source))
		}
	}
	return strings.Join(lines, "\n")
}

func (l ringList) TableHeaders() []string {
	return []string{"Name", "Conformation", "Canonical", "Units", "Source"}
}

func (l ringList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		units := strconv.Itoa(e.Units)
		if e.Invalid {
			units = "invalid"
		}
		rows = append(rows, []string{e.Name, e.Conformation, e.Canonical, units, e.Source})
	}
	return rows
}
