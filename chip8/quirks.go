package chip8

import (
	"fmt"
	"sort"
	"strings"
)

// Quirks selects between the behaviors of historic CHIP-8 interpreters for
// the opcodes they disagree on.
type Quirks struct {
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY and store the result in VX
	// instead of shifting VX in place.
	ShiftUsesVY bool
	// JumpUsesVX makes BXNN jump to XNN+VX instead of NNN+V0.
	JumpUsesVX bool
	// IndexOverflowFlag makes FX1E set VF to 1 when I+VX leaves the 12 bit
	// address space and to 0 otherwise. When unset VF is not touched.
	IndexOverflowFlag bool
	// LoadStoreIncrementsI makes FX55 and FX65 leave I pointing past the
	// last transferred register.
	LoadStoreIncrementsI bool
	// LogicResetsVF makes 8XY1, 8XY2 and 8XY3 reset VF to 0.
	LogicResetsVF bool
	// WrapSprites wraps sprite pixels crossing the right or bottom screen
	// edge around to the opposite side instead of clipping them.
	WrapSprites bool
}

var (
	// QuirksModern is the behavior most contemporary ROMs and test suites
	// expect. It is the default.
	QuirksModern = Quirks{}

	// QuirksCOSMAC matches the original COSMAC VIP interpreter.
	QuirksCOSMAC = Quirks{
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
		LogicResetsVF:        true,
	}

	// QuirksSuperChip matches the CHIP-48 and SUPER-CHIP interpreters.
	QuirksSuperChip = Quirks{
		JumpUsesVX: true,
	}

	// QuirksAmiga matches the Amiga interpreter used by Spacefight 2091!.
	QuirksAmiga = Quirks{
		IndexOverflowFlag: true,
	}
)

var quirkProfiles = map[string]Quirks{
	"modern":    QuirksModern,
	"cosmac":    QuirksCOSMAC,
	"superchip": QuirksSuperChip,
	"amiga":     QuirksAmiga,
}

// QuirksByName returns the named quirk profile. Names are case insensitive.
func QuirksByName(name string) (Quirks, error) {
	q, ok := quirkProfiles[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unsupported quirk profile '%s'. Valid options: %s",
			name, strings.Join(QuirkProfileNames(), ", "))
	}
	return q, nil
}

// QuirkProfileNames returns the sorted names of all quirk profiles.
func QuirkProfileNames() []string {
	names := make([]string, 0, len(quirkProfiles))
	for name := range quirkProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
