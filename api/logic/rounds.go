/* rounds.go
 * Contains the round classification, titles, completion checks and grouping used by the schedule view
 */

package logic

import (
	"fmt"
	"sort"

	"chess-tournament-ui/api/shared"
)

type RoundType string

const (
	RoundGroup    RoundType = "group"
	RoundKnockout RoundType = "knockout"
)

// knockoutRounds is the number of trailing rounds played as knockout in group_knockout tournaments:
// the semi finals, then the final together with the third place match
const knockoutRounds = 2

// GetRoundType classifies a round of a tournament.
// Preconditions: receives the tournament and a 1-based round number
// Postconditions: returns RoundKnockout only for the last two rounds of a group_knockout tournament with at least two
// rounds; every other round is RoundGroup
func GetRoundType(t shared.Tournament, round int) RoundType {
	if t.Format != shared.FormatGroupKnockout || t.TotalRounds < knockoutRounds {
		return RoundGroup
	}
	if round > t.TotalRounds-knockoutRounds {
		return RoundKnockout
	}
	return RoundGroup
}

// RoundTitle returns the display title of a round. The bool is false for a knockout round that is neither the semi
// finals nor the finals, which has no title
func RoundTitle(t shared.Tournament, round int) (string, bool) {
	if GetRoundType(t, round) == RoundGroup {
		return fmt.Sprintf("Round %d", round), true
	}
	switch round {
	case t.TotalRounds - 1:
		return "Semi Finals", true
	case t.TotalRounds:
		return "Finals", true
	}
	return "", false
}

// PendingCount counts the matches of a round that are not completed
func PendingCount(matches []shared.Match, round int) int {
	count := 0
	for _, m := range matches {
		if m.RoundNumber == round && !m.IsCompleted {
			count++
		}
	}
	return count
}

// IsRoundCompletable reports whether the Complete Round action should be offered. A round with no matches is not
// completable
func IsRoundCompletable(matches []shared.Match, round int) bool {
	total := 0
	for _, m := range matches {
		if m.RoundNumber == round {
			total++
		}
	}
	return total > 0 && PendingCount(matches, round) == 0
}

// RoundBucket is one round bucket of the schedule
type RoundBucket struct {
	Round       int
	Title       string
	Type        RoundType
	Completable bool
	Pending     int
	Matches     []shared.Match
}

// GroupByRound buckets matches by round number. Buckets are returned in ascending round order and matches keep
// their input order within a bucket
func GroupByRound(t shared.Tournament, matches []shared.Match) []RoundBucket {
	byRound := make(map[int][]shared.Match)
	for _, m := range matches {
		byRound[m.RoundNumber] = append(byRound[m.RoundNumber], m)
	}

	rounds := make([]int, 0, len(byRound))
	for round := range byRound {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	buckets := make([]RoundBucket, 0, len(rounds))
	for _, round := range rounds {
		title, ok := RoundTitle(t, round)
		if !ok {
			title = fmt.Sprintf("Round %d", round)
		}
		roundMatches := byRound[round]
		buckets = append(buckets, RoundBucket{
			Round:       round,
			Title:       title,
			Type:        GetRoundType(t, round),
			Completable: IsRoundCompletable(roundMatches, round),
			Pending:     PendingCount(roundMatches, round),
			Matches:     roundMatches,
		})
	}
	return buckets
}

// RoundRobinMatchCount is the number of matches needed for n teams to each play every other team once
func RoundRobinMatchCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// FinalRoundCompleted reports whether every match of the round that decides an aggregate has been completed
func FinalRoundCompleted(matches []shared.Match, finalRound int) bool {
	return finalRound > 0 && IsRoundCompletable(matches, finalRound)
}
