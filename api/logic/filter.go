/* filter.go
 * Contains the team name resolution and free text filtering of matches, plus fuzzy team lookup for chat commands
 */

package logic

import (
	"fmt"
	"sort"
	"strings"

	"chess-tournament-ui/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var labelNames = map[string]string{
	shared.LabelSF1:        "Semi-Final 1",
	shared.LabelSF2:        "Semi-Final 2",
	shared.LabelFinal:      "Final",
	shared.LabelThirdPlace: "Third Place Match",
}

// LabelName returns the human readable name of a knockout match label, or an empty string for group matches
func LabelName(label string) string {
	return labelNames[label]
}

// TeamIndex maps team ids to teams
type TeamIndex map[int]shared.Team

func IndexTeams(teams []shared.Team) TeamIndex {
	index := make(TeamIndex, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}
	return index
}

// TeamName resolves the display name of a match participant. Placeholders show their bracket slot and unknown
// teams fall back to "Team {id}"
func (idx TeamIndex) TeamName(ref shared.TeamRef) string {
	if ref.IsPlaceholder() {
		return ref.Slot
	}
	if t, ok := idx[ref.ID]; ok && t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Team %d", ref.ID)
}

// FilterMatches keeps the matches whose team names or knockout label contain query, ignoring case.
// An empty query returns matches unchanged
func FilterMatches(matches []shared.Match, teams []shared.Team, query string) []shared.Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return matches
	}

	index := IndexTeams(teams)
	var filtered []shared.Match
	for _, m := range matches {
		haystack := []string{
			index.TeamName(m.White()),
			index.TeamName(m.Black()),
			LabelName(m.Label),
		}
		for _, s := range haystack {
			if s != "" && strings.Contains(strings.ToLower(s), query) {
				filtered = append(filtered, m)
				break
			}
		}
	}
	return filtered
}

// FindTeam matches a typed team name against the known teams.
// Preconditions: receives the user's input and the teams of the tournament
// Postconditions: returns the exact (case insensitive) match if there is one, otherwise the best ranked fuzzy match.
// The bool is false when nothing matches
func FindTeam(input string, teams []shared.Team) (shared.Team, bool) {
	lookup := make(map[string]shared.Team)
	var namesLower []string
	for _, t := range teams {
		lower := strings.ToLower(t.Name)
		lookup[lower] = t
		namesLower = append(namesLower, lower)
	}

	lowerInput := strings.ToLower(strings.TrimSpace(input))
	if lowerInput == "" {
		return shared.Team{}, false
	}
	if t, ok := lookup[lowerInput]; ok {
		return t, true
	}

	results := fuzzy.RankFind(lowerInput, namesLower)
	if len(results) == 0 {
		return shared.Team{}, false
	}
	sort.Sort(results)
	return lookup[results[0].Target], true
}
