/* teamref.go
 * Contains the TeamRef variant used for match participants. Knockout matches are created before their
 * participants are known, and the backend encodes those bracket slots as negative team ids
 */

package shared

import "fmt"

type TeamRefKind int

const (
	Known TeamRefKind = iota
	Placeholder
)

// Bracket slots, indexed by -id - 1. SF1 is A1 vs B2 and SF2 is B1 vs A2
var placeholderSlots = []string{
	"A1",
	"B2",
	"B1",
	"A2",
	"Winner SF1",
	"Winner SF2",
	"Loser SF1",
	"Loser SF2",
}

// TeamRef is either a known team id or a not-yet-determined bracket slot
type TeamRef struct {
	Kind TeamRefKind
	ID   int
	Slot string
}

// ResolveTeamRef converts a raw team id from the backend into a TeamRef.
// Negative ids outside the known slot range are kept as placeholders with a generic slot name.
func ResolveTeamRef(id int) TeamRef {
	if id >= 0 {
		return TeamRef{Kind: Known, ID: id}
	}
	idx := -id - 1
	if idx < len(placeholderSlots) {
		return TeamRef{Kind: Placeholder, ID: id, Slot: placeholderSlots[idx]}
	}
	return TeamRef{Kind: Placeholder, ID: id, Slot: fmt.Sprintf("Slot %d", -id)}
}

// IsPlaceholder reports whether the participant is still undetermined
func (r TeamRef) IsPlaceholder() bool {
	return r.Kind == Placeholder
}
