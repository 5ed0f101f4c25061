/* tiebreak.go
 * Contains the selection state machine used to resolve ties by hand, both for team standings (one instance per
 * group) and for best players (one instance)
 */

package logic

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"chess-tournament-ui/api/shared"
)

type Phase int

const (
	Idle Phase = iota
	CandidateSelected
	Swapping
)

func (p Phase) String() string {
	switch p {
	case CandidateSelected:
		return "candidate-selected"
	case Swapping:
		return "swapping"
	}
	return "idle"
}

type TransitionKind int

const (
	NoChange TransitionKind = iota
	Selected
	Deselected
	SwapRequested
)

// Transition is the outcome of a click. For SwapRequested, A is the selected entity and B the clicked one
type Transition struct {
	Kind TransitionKind
	A    int
	B    int
}

// Selection is a copy of the reconciler state, safe to render or restore
type Selection struct {
	Phase       Phase
	Selected    int
	Highlighted []int
}

// IsSelected reports whether id is the selected entity
func (s Selection) IsSelected(id int) bool {
	return s.Phase == CandidateSelected && s.Selected == id
}

// IsHighlighted reports whether id is in the tie set of the selected entity
func (s Selection) IsHighlighted(id int) bool {
	for _, h := range s.Highlighted {
		if h == id {
			return true
		}
	}
	return false
}

type Reconciler struct {
	mu        sync.Mutex
	ties      map[int][]int
	selection Selection
}

// NewReconciler creates an idle reconciler over a tie map of entity id -> ids it is tied with
func NewReconciler(ties map[int][]int) *Reconciler {
	return &Reconciler{ties: copyTies(ties)}
}

// Click applies one click on entity id:
//   - the selected entity deselects
//   - an entity in the highlighted tie set requests a swap with the selected one, leaving the selection as is
//   - an entity with ties becomes the selection and its ties are highlighted
//   - anything else returns to idle
//
// Clicks while a swap is in flight are ignored
func (r *Reconciler) Click(id int) Transition {
	r.mu.Lock()
	defer r.mu.Unlock()

	sel := r.selection
	if sel.Phase == Swapping {
		return Transition{Kind: NoChange}
	}

	if sel.Phase == CandidateSelected {
		if id == sel.Selected {
			r.selection = Selection{Phase: Idle}
			return Transition{Kind: Deselected, A: id}
		}
		if sel.IsHighlighted(id) {
			return Transition{Kind: SwapRequested, A: sel.Selected, B: id}
		}
	}

	if tied := r.ties[id]; len(tied) > 0 {
		highlighted := append([]int(nil), tied...)
		sort.Ints(highlighted)
		r.selection = Selection{Phase: CandidateSelected, Selected: id, Highlighted: highlighted}
		return Transition{Kind: Selected, A: id}
	}

	r.selection = Selection{Phase: Idle}
	if sel.Phase == CandidateSelected {
		return Transition{Kind: Deselected, A: sel.Selected}
	}
	return Transition{Kind: NoChange}
}

// Swap runs commit optimistically: the selection is cleared and the phase set to Swapping while commit runs.
// On success the reconciler is idle; on failure the selection from before the swap is restored and the commit error
// is returned
func (r *Reconciler) Swap(ctx context.Context, a int, b int, commit func(ctx context.Context, a int, b int) error) error {
	return RunOptimistic(ctx,
		func() Selection {
			r.mu.Lock()
			defer r.mu.Unlock()
			previous := r.selection
			r.selection = Selection{Phase: Swapping}
			return previous
		},
		func(ctx context.Context) error {
			if err := commit(ctx, a, b); err != nil {
				return err
			}
			r.mu.Lock()
			r.selection = Selection{Phase: Idle}
			r.mu.Unlock()
			return nil
		},
		func(previous Selection) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.selection = previous
		},
	)
}

// Reset replaces the tie map with a freshly fetched one and returns to idle
func (r *Reconciler) Reset(ties map[int][]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ties = copyTies(ties)
	r.selection = Selection{Phase: Idle}
}

func (r *Reconciler) Selection() Selection {
	r.mu.Lock()
	defer r.mu.Unlock()
	sel := r.selection
	sel.Highlighted = append([]int(nil), sel.Highlighted...)
	return sel
}

// HasTies reports whether id is tied with at least one other entity
func (r *Reconciler) HasTies(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ties[id]) > 0
}

func copyTies(ties map[int][]int) map[int][]int {
	out := make(map[int][]int, len(ties))
	for id, tied := range ties {
		out[id] = append([]int(nil), tied...)
	}
	return out
}

// PlayerTies converts the best players tie check into an id keyed map. Keys that are not ids are skipped
func PlayerTies(check shared.BestPlayersTieCheck) map[int][]int {
	return intKeys(check.Ties)
}

// StandingsTies converts the standings tie check into group -> team id -> tied team ids
func StandingsTies(check shared.StandingsTieCheck) map[int]map[int][]int {
	out := make(map[int]map[int][]int, len(check.Groups))
	for group, ties := range check.Groups {
		g, err := strconv.Atoi(group)
		if err != nil {
			continue
		}
		out[g] = intKeys(ties)
	}
	return out
}

func intKeys(ties map[string][]int) map[int][]int {
	out := make(map[int][]int, len(ties))
	for key, tied := range ties {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[id] = tied
	}
	return out
}

// TiebreakGate holds the conditions under which the tiebreak controls are shown
type TiebreakGate struct {
	FinalRoundCompleted bool
	Validated           bool
	AdminMode           bool
	HasTies             bool
}

// Visible reports whether the tiebreak controls are shown. Every condition must hold
func (g TiebreakGate) Visible() bool {
	return g.ValidateVisible() && g.HasTies
}

// ValidateVisible reports whether the lock action is shown. It does not depend on there being ties
func (g TiebreakGate) ValidateVisible() bool {
	return g.FinalRoundCompleted && !g.Validated && g.AdminMode
}
