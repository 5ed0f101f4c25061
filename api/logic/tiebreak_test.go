/* tiebreak_test.go
 * Contains unit tests for tiebreak.go and optimistic.go
 */

package logic

import (
	"context"
	"errors"
	"testing"

	"chess-tournament-ui/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1, 2 and 3 are tied with each other, 4 has no ties
func newTestReconciler() *Reconciler {
	return NewReconciler(map[int][]int{
		1: {2, 3},
		2: {1, 3},
		3: {1, 2},
	})
}

// region Click tests

func TestClick_SelectsTiedEntity(t *testing.T) {
	r := newTestReconciler()

	tr := r.Click(1)

	assert.Equal(t, Transition{Kind: Selected, A: 1}, tr)
	sel := r.Selection()
	assert.Equal(t, CandidateSelected, sel.Phase)
	assert.Equal(t, 1, sel.Selected)
	assert.Equal(t, []int{2, 3}, sel.Highlighted)
}

// TestClick_DoubleClickIsIdempotent tests that clicking the selected entity again returns to idle without a swap
func TestClick_DoubleClickIsIdempotent(t *testing.T) {
	r := newTestReconciler()

	first := r.Click(2)
	second := r.Click(2)

	assert.Equal(t, Selected, first.Kind)
	assert.Equal(t, Deselected, second.Kind)
	assert.Equal(t, Idle, r.Selection().Phase)
	assert.Empty(t, r.Selection().Highlighted)
}

func TestClick_HighlightedRequestsSwap(t *testing.T) {
	r := newTestReconciler()
	r.Click(1)

	tr := r.Click(3)

	assert.Equal(t, Transition{Kind: SwapRequested, A: 1, B: 3}, tr)
	assert.Equal(t, CandidateSelected, r.Selection().Phase)
}

func TestClick_UntiedEntityReturnsToIdle(t *testing.T) {
	r := newTestReconciler()

	assert.Equal(t, NoChange, r.Click(4).Kind)

	r.Click(1)
	tr := r.Click(4)
	assert.Equal(t, Transition{Kind: Deselected, A: 1}, tr)
	assert.Equal(t, Idle, r.Selection().Phase)
}

// TestClick_ReplacesSelection tests that clicking a tied entity outside the highlight set switches the selection
func TestClick_ReplacesSelection(t *testing.T) {
	r := NewReconciler(map[int][]int{
		1: {2},
		2: {1},
		5: {6},
		6: {5},
	})
	r.Click(1)

	tr := r.Click(5)

	assert.Equal(t, Transition{Kind: Selected, A: 5}, tr)
	assert.Equal(t, []int{6}, r.Selection().Highlighted)
}

// endregion

// region Swap tests

func TestSwap_Success(t *testing.T) {
	r := newTestReconciler()
	r.Click(1)
	tr := r.Click(2)
	require.Equal(t, SwapRequested, tr.Kind)

	var phaseDuringCommit Phase
	var gotA, gotB int
	err := r.Swap(context.Background(), tr.A, tr.B, func(ctx context.Context, a int, b int) error {
		phaseDuringCommit = r.Selection().Phase
		gotA, gotB = a, b
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, Swapping, phaseDuringCommit)
	assert.Equal(t, 1, gotA)
	assert.Equal(t, 2, gotB)
	assert.Equal(t, Idle, r.Selection().Phase)
}

// TestSwap_RollbackRestoresPreClickSelection tests that a rejected swap leaves the selection as it was before the click
func TestSwap_RollbackRestoresPreClickSelection(t *testing.T) {
	r := newTestReconciler()
	r.Click(1)
	before := r.Selection()
	tr := r.Click(3)

	rejected := errors.New("Teams are not tied")
	err := r.Swap(context.Background(), tr.A, tr.B, func(ctx context.Context, a int, b int) error {
		return rejected
	})

	assert.Equal(t, rejected, err)
	assert.Equal(t, before, r.Selection())
}

func TestClick_IgnoredWhileSwapping(t *testing.T) {
	r := newTestReconciler()
	r.Click(1)
	tr := r.Click(2)

	var during Transition
	_ = r.Swap(context.Background(), tr.A, tr.B, func(ctx context.Context, a int, b int) error {
		during = r.Click(3)
		return nil
	})

	assert.Equal(t, NoChange, during.Kind)
}

func TestReset_ReplacesTies(t *testing.T) {
	r := newTestReconciler()
	r.Click(1)

	r.Reset(map[int][]int{4: {5}, 5: {4}})

	assert.Equal(t, Idle, r.Selection().Phase)
	assert.False(t, r.HasTies(1))
	assert.True(t, r.HasTies(4))
}

// endregion

func TestRunOptimistic(t *testing.T) {
	state := "old"
	apply := func() string {
		previous := state
		state = "new"
		return previous
	}
	rollback := func(previous string) { state = previous }

	err := RunOptimistic(context.Background(), apply, func(ctx context.Context) error { return nil }, rollback)
	require.NoError(t, err)
	assert.Equal(t, "new", state)

	state = "old"
	err = RunOptimistic(context.Background(), apply, func(ctx context.Context) error { return errors.New("boom") }, rollback)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "old", state)
}

// region tie map and gate tests

func TestStandingsTies(t *testing.T) {
	check := shared.StandingsTieCheck{
		HasTies: true,
		Groups: map[string]map[string][]int{
			"1":   {"10": {11}, "11": {10}},
			"two": {"12": {13}},
		},
	}

	ties := StandingsTies(check)

	assert.Len(t, ties, 1)
	assert.Equal(t, []int{11}, ties[1][10])
}

func TestPlayerTies(t *testing.T) {
	ties := PlayerTies(shared.BestPlayersTieCheck{Ties: map[string][]int{"7": {8, 9}, "x": {1}}})

	assert.Equal(t, map[int][]int{7: {8, 9}}, ties)
}

func TestTiebreakGate(t *testing.T) {
	open := TiebreakGate{FinalRoundCompleted: true, AdminMode: true, HasTies: true}
	assert.True(t, open.Visible())
	assert.True(t, open.ValidateVisible())

	noTies := open
	noTies.HasTies = false
	assert.False(t, noTies.Visible())
	assert.True(t, noTies.ValidateVisible())

	for _, closed := range []TiebreakGate{
		{FinalRoundCompleted: false, AdminMode: true, HasTies: true},
		{FinalRoundCompleted: true, Validated: true, AdminMode: true, HasTies: true},
		{FinalRoundCompleted: true, AdminMode: false, HasTies: true},
	} {
		assert.False(t, closed.Visible())
		assert.False(t, closed.ValidateVisible())
	}
}

// endregion
