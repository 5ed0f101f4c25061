/* models.go
 * This file contains the render-ready views returned to the web and bot packages
 */

package api

import (
	"chess-tournament-ui/api/auth"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

// Tabs of the console
const (
	TabSchedule    = "schedule"
	TabStandings   = "standings"
	TabTeams       = "teams"
	TabBestPlayers = "best-players"
	TabAdmin       = "admin"
)

// Aggregates named in refresh events
const (
	AggregateMatches     = "matches"
	AggregateStandings   = "standings"
	AggregateBestPlayers = "best-players"
	AggregateTeams       = "teams"
	AggregateTournament  = "tournament"
	AggregateNews        = "announcements"
)

type ScheduleView struct {
	Tournament   shared.Tournament
	Rounds       []logic.RoundBucket
	Teams        logic.TeamIndex
	Players      map[int]shared.Player
	Query        string
	CurrentRound int
	Expanded     map[int]bool
	Auth         auth.Snapshot
}

// StandingsGroup is one group table with its own tiebreak selection
type StandingsGroup struct {
	Group     int
	Entries   []shared.StandingsEntry
	Ties      map[int][]int
	Selection logic.Selection
}

type StandingsView struct {
	Tournament   shared.Tournament
	Groups       []StandingsGroup
	Gate         logic.TiebreakGate
	ShowTiebreak bool
	ShowValidate bool
	Auth         auth.Snapshot
}

type BestPlayersView struct {
	Tournament   shared.Tournament
	Entries      []shared.BestPlayerEntry
	Ties         map[int][]int
	Selection    logic.Selection
	Gate         logic.TiebreakGate
	ShowTiebreak bool
	ShowValidate bool
	Auth         auth.Snapshot
}

// TeamRoster is a team with its players, ordered by board
type TeamRoster struct {
	Team    shared.Team
	Players []shared.Player
}

type TeamsView struct {
	Tournament shared.Tournament
	Teams      []TeamRoster
	Auth       auth.Snapshot
}

type AdminView struct {
	Tournaments   []shared.Tournament
	Current       shared.Tournament
	HasCurrent    bool
	Announcements []shared.Announcement
	Auth          auth.Snapshot
}

// PlayerEdit is one row of the team editor
type PlayerEdit struct {
	PlayerID int
	Update   shared.PlayerUpdate
}
