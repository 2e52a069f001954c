package ring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Conformation grammar
// ─────────────────────────────────────────────────────────────────────────────

// Unit is one ring vertex: a ligand and the bridge that follows it.  When the
// source string omits the bridge token the front-front default applies.
type Unit struct {
	Ligand LigandType
	Bridge BridgeType
}

// Conformation is the parsed "ring program": the ordered sequence of units
// walked by the engine.  Construct it with ParseConformation; a zero value
// has no units and is rejected by the walker.
type Conformation struct {
	Units []Unit
}

// Len returns the number of ligand units (ring vertices).
func (c Conformation) Len() int {
	return len(c.Units)
}

// Ligands returns the ordered ligand types, one per unit.
func (c Conformation) Ligands() []LigandType {
	out := make([]LigandType, len(c.Units))
	for i, u := range c.Units {
		out[i] = u.Ligand
	}
	return out
}

// String renders the canonical flat form: ligand and bridge tokens
// concatenated without brackets, e.g. "RRFFLLBBRRFFLLBB".  Bracketed input
// canonicalizes to this form ("RL(FF)RL(FF)RL(FF)" → "RLFFRLFFRLFF").
func (c Conformation) String() string {
	var sb strings.Builder
	sb.Grow(4 * len(c.Units))
	for _, u := range c.Units {
		sb.WriteString(string(u.Ligand))
		sb.WriteString(string(u.Bridge))
	}
	return sb.String()
}

// ParseConformation parses a symbolic conformation string into its unit
// sequence.  Brackets are stripped first, so "RL(FF)RL(FF)RL(FF)",
// "RLFFRLFFRLFF" and the ligand-only "RLRLRL" all parse (the last with
// front-front bridges implied).  The flattened stream is scanned as
// 2-character tokens; ligand tokens and bridge tokens alternate, with at
// most one bridge token after each ligand.
//
// Failures are InvalidArgument-class errors: empty input or no ligand tokens,
// odd flattened length, an unrecognized token, a bridge token before the
// first ligand, or two bridge tokens in a row.
func ParseConformation(s string) (Conformation, error) {
	flat := strings.NewReplacer("(", "", ")", "").Replace(s)
	if flat == "" {
		return Conformation{}, errors.New(errors.CodeConformationEmpty,
			"conformation string is empty")
	}
	if len(flat)%2 != 0 {
		return Conformation{}, errors.New(errors.CodeConformationOddLength,
			fmt.Sprintf("conformation %q has odd length %d after bracket removal", s, len(flat)))
	}

	var units []Unit
	bridged := false // the latest unit already carries an explicit bridge
	for i := 0; i < len(flat); i += 2 {
		tok := flat[i : i+2]
		switch {
		case LigandType(tok).IsValid():
			units = append(units, Unit{Ligand: LigandType(tok), Bridge: BridgeFF})
			bridged = false
		case BridgeType(tok).IsValid():
			if len(units) == 0 {
				return Conformation{}, errors.New(errors.CodeConformationBadBridge,
					fmt.Sprintf("bridge token %q before any ligand", tok))
			}
			if bridged {
				return Conformation{}, errors.New(errors.CodeConformationBadBridge,
					fmt.Sprintf("consecutive bridge tokens at offset %d", i))
			}
			units[len(units)-1].Bridge = BridgeType(tok)
			bridged = true
		default:
			return Conformation{}, errors.New(errors.CodeConformationBadToken,
				fmt.Sprintf("unrecognized token %q at offset %d", tok, i))
		}
	}

	return Conformation{Units: units}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Named ring catalog
// ─────────────────────────────────────────────────────────────────────────────

// Catalog maps ring names to conformation strings.  The built-in entries are
// the conformers used in the published analyses; configuration may register
// additional names.
type Catalog map[string]string

// builtinRings are the named conformers shipped with the tool.
var builtinRings = map[string]string{
	"syn-T-1": "RL(FF)RL(FF)RL(FF)",
	"syn-S-1": "RRFFLLBBRRFFLLBB",
}

// DefaultCatalog returns a fresh catalog seeded with the built-in rings.
// The caller may add or override entries without affecting other catalogs.
func DefaultCatalog() Catalog {
	c := make(Catalog, len(builtinRings))
	for name, conf := range builtinRings {
		c[name] = conf
	}
	return c
}

// Resolve parses the conformation registered under name.
func (c Catalog) Resolve(name string) (Conformation, error) {
	confID, ok := c[name]
	if !ok {
		return Conformation{}, errors.New(errors.CodeRingNameUnknown,
			fmt.Sprintf("ring %q not in catalog", name))
	}
	conf, err := ParseConformation(confID)
	if err != nil {
		return Conformation{}, errors.Wrap(err, errors.GetCode(err),
			fmt.Sprintf("catalog entry %q is malformed", name))
	}
	return conf, nil
}

// Names returns the registered ring names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
