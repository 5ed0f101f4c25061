/* values.go
 * Contains typed helpers on top of Interface. Values are stored as strings so every backend stays a plain
 * key-value table
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// GetBool returns the stored bool, or false if the key is missing or unparseable
func GetBool(ctx context.Context, s Interface, key Key) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return b, nil
}

func SetBool(ctx context.Context, s Interface, key Key, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// GetIntSet returns the stored set of ints in ascending order. A missing key is an empty set
func GetIntSet(ctx context.Context, s Interface, key Key) ([]int, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []int{}, nil
		}
		return nil, err
	}
	var ids []int
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("corrupt int set under %s/%d/%s: %w", key.Namespace, key.TournamentID, key.Name, err)
	}
	sort.Ints(ids)
	return ids, nil
}

func SetIntSet(ctx context.Context, s Interface, key Key, ids []int) error {
	seen := make(map[int]bool, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	sort.Ints(unique)

	data, err := json.Marshal(unique)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(data))
}
