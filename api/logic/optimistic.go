/* optimistic.go
 * Contains the helper used for every optimistic update: apply locally, send, roll back on failure
 */

package logic

import "context"

// RunOptimistic applies a local change, then commits it.
// Preconditions: apply returns whatever rollback needs to restore the state it replaced
// Postconditions: if commit fails, rollback has been called with that value and the commit error is returned unchanged
func RunOptimistic[T any](ctx context.Context, apply func() T, commit func(ctx context.Context) error, rollback func(T)) error {
	previous := apply()
	if err := commit(ctx); err != nil {
		rollback(previous)
		return err
	}
	return nil
}
