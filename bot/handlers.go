/* handlers.go
 * Contains the command handlers of the bot. Every handler takes a DiscordSession so it can run against a mock
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"

	"chess-tournament-ui/api/api"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

// Number of best players and announcements listed by a command
const (
	bestPlayersShown   = 10
	announcementsShown = 5
)

// send posts a message and logs a failed send
func (b *Bot) send(session DiscordSession, channelID string, content string) {
	if _, err := session.ChannelMessageSend(channelID, truncate(content)); err != nil {
		b.Logger.Warn("failed to send discord message", "channel", channelID, "error", err)
	}
}

// sendError reports a failed command. A missing current tournament is a normal state and gets its own message
func (b *Bot) sendError(session DiscordSession, channelID string, action string, err error) {
	if errors.Is(err, api.ErrNoTournament) {
		b.send(session, channelID, "No tournament is currently running")
		return
	}
	b.Logger.Error("bot command failed", "action", action, "error", err)
	b.send(session, channelID, fmt.Sprintf("An error occurred getting the %s", action))
}

// arguments splits a command into its arguments. Names with spaces can be quoted, e.g. $team "Dark Knights"
func arguments(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	var args []string
	for i, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), "\"“”")
		if i == 0 || part == "" {
			continue
		}
		args = append(args, part)
	}
	return args, nil
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Chess Tournament Bot\n")
	res.WriteString("`$schedule [round]`: shows the pairings and scores of a round, the current round by default\n")
	res.WriteString("`$standings`: shows the team standings of every group\n")
	res.WriteString("`$bestplayers`: shows the best individual players\n")
	res.WriteString("`$teams`: lists the teams of the tournament\n")
	res.WriteString("`$team name`: shows the roster of a team. Names are fuzzy matched and names with spaces need to be quoted (e.g. \"Dark Knights\")\n")
	res.WriteString("`$news`: shows the latest announcements\n")
	b.send(session, message.ChannelID, res.String())
}

// scheduleHandler handles the $schedule command
func (b *Bot) scheduleHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	args, err := arguments(message.Content)
	if err != nil {
		b.send(session, message.ChannelID, "Could not read the command, check the quotes")
		return
	}

	view, err := b.APIPtr.LoadSchedule(ctx, "")
	if err != nil {
		b.sendError(session, message.ChannelID, "schedule", err)
		return
	}
	if len(view.Rounds) == 0 {
		b.send(session, message.ChannelID, "No matches have been scheduled yet")
		return
	}

	round := view.CurrentRound
	if len(args) > 0 {
		if round, err = strconv.Atoi(args[0]); err != nil {
			b.send(session, message.ChannelID, fmt.Sprintf("%q is not a round number", args[0]))
			return
		}
	}

	bucket, ok := findRound(view.Rounds, round)
	if !ok {
		if len(args) > 0 {
			b.send(session, message.ChannelID, fmt.Sprintf("Round %d has no matches", round))
			return
		}
		bucket = view.Rounds[0]
	}

	var res strings.Builder
	fmt.Fprintf(&res, "**%s - %s**\n", view.Tournament.Name, bucket.Title)
	for _, m := range bucket.Matches {
		if name := logic.LabelName(m.Label); name != "" {
			fmt.Fprintf(&res, "[%s] ", name)
		}
		fmt.Fprintf(&res, "%s vs %s", view.Teams.TeamName(m.White()), view.Teams.TeamName(m.Black()))
		if m.IsCompleted || m.WhiteScore+m.BlackScore > 0 {
			fmt.Fprintf(&res, " (%s - %s)", score(m.WhiteScore), score(m.BlackScore))
		}
		res.WriteString("\n")
	}
	if bucket.Pending > 0 {
		fmt.Fprintf(&res, "%d games pending\n", bucket.Pending)
	}
	b.send(session, message.ChannelID, res.String())
}

func findRound(rounds []logic.RoundBucket, round int) (logic.RoundBucket, bool) {
	for _, bucket := range rounds {
		if bucket.Round == round {
			return bucket, true
		}
	}
	return logic.RoundBucket{}, false
}

// score formats a game point total, e.g. 2.5
func score(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

// standingsHandler handles the $standings command
func (b *Bot) standingsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	view, err := b.APIPtr.LoadStandings(ctx)
	if err != nil {
		b.sendError(session, message.ChannelID, "standings", err)
		return
	}
	if len(view.Groups) == 0 {
		b.send(session, message.ChannelID, "No standings yet")
		return
	}

	var res strings.Builder
	fmt.Fprintf(&res, "**%s standings**", view.Tournament.Name)
	if view.Tournament.GroupStandingsValidated {
		res.WriteString(" (final)")
	}
	res.WriteString("\n")
	for _, g := range view.Groups {
		if g.Group > 0 {
			fmt.Fprintf(&res, "__Group %d__\n", g.Group)
		}
		for _, e := range g.Entries {
			fmt.Fprintf(&res, "%d. %s - %s MP, %s GP\n", e.Position, e.TeamName, score(e.MatchPoints), score(e.GamePoints))
		}
	}
	b.send(session, message.ChannelID, res.String())
}

// bestPlayersHandler handles the $bestplayers command
func (b *Bot) bestPlayersHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	view, err := b.APIPtr.LoadBestPlayers(ctx)
	if err != nil {
		b.sendError(session, message.ChannelID, "best players", err)
		return
	}
	if len(view.Entries) == 0 {
		b.send(session, message.ChannelID, "No games have been played yet")
		return
	}

	var res strings.Builder
	fmt.Fprintf(&res, "**%s best players**\n", view.Tournament.Name)
	for i, e := range view.Entries {
		if i == bestPlayersShown {
			break
		}
		fmt.Fprintf(&res, "%d. %s (%s) - %s/%d (%s%%)\n", e.Position, e.PlayerName, e.TeamName, score(e.Points), e.GamesPlayed, strconv.FormatFloat(e.Percentage, 'f', 1, 64))
	}
	b.send(session, message.ChannelID, res.String())
}

// teamsHandler handles the $teams command
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	view, err := b.APIPtr.LoadTeams(ctx)
	if err != nil {
		b.sendError(session, message.ChannelID, "teams list", err)
		return
	}
	if len(view.Teams) == 0 {
		b.send(session, message.ChannelID, "No teams are registered")
		return
	}

	var res strings.Builder
	res.WriteString("Teams in this tournament:\n")
	for _, roster := range view.Teams {
		fmt.Fprintf(&res, "- %s", roster.Team.Name)
		if roster.Team.Group > 0 {
			fmt.Fprintf(&res, " (Group %d)", roster.Team.Group)
		}
		res.WriteString("\n")
	}
	b.send(session, message.ChannelID, res.String())
}

// teamHandler handles the $team command, showing the roster of the team closest to the given name
func (b *Bot) teamHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	args, err := arguments(message.Content)
	if err != nil {
		b.send(session, message.ChannelID, "Could not read the command, check the quotes")
		return
	}
	if len(args) == 0 {
		b.send(session, message.ChannelID, "Usage: `$team name`")
		return
	}

	view, err := b.APIPtr.LoadTeams(ctx)
	if err != nil {
		b.sendError(session, message.ChannelID, "team", err)
		return
	}

	teams := make([]shared.Team, 0, len(view.Teams))
	for _, roster := range view.Teams {
		teams = append(teams, roster.Team)
	}
	name := strings.Join(args, " ")
	team, ok := logic.FindTeam(name, teams)
	if !ok {
		b.send(session, message.ChannelID, fmt.Sprintf("No team matches %q", name))
		return
	}

	var res strings.Builder
	fmt.Fprintf(&res, "**%s**\n", team.Name)
	for _, roster := range view.Teams {
		if roster.Team.ID != team.ID {
			continue
		}
		for board, p := range roster.Players {
			fmt.Fprintf(&res, "%d. %s", board+1, p.Name)
			if p.Rating > 0 {
				fmt.Fprintf(&res, " (%d)", p.Rating)
			}
			res.WriteString("\n")
		}
	}
	b.send(session, message.ChannelID, res.String())
}

// newsHandler handles the $news command
func (b *Bot) newsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	announcements, err := b.APIPtr.LoadAnnouncements(ctx)
	if err != nil {
		b.sendError(session, message.ChannelID, "announcements", err)
		return
	}
	if len(announcements) == 0 {
		b.send(session, message.ChannelID, "No announcements")
		return
	}

	var res strings.Builder
	for i, a := range announcements {
		if i == announcementsShown {
			break
		}
		if a.Pinned {
			res.WriteString("📌 ")
		}
		fmt.Fprintf(&res, "**%s**\n%s\n", a.Title, a.Content)
	}
	b.send(session, message.ChannelID, res.String())
}

// newMessageHandler routes messages to the command handlers. botUserID is the bot's own id so it never answers
// itself
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	if !startsWith(message.Content, "$") {
		return
	}
	command := strings.Fields(message.Content)

	switch command[0] {
	case "$help":
		b.helpMessageHandler(session, message)

	case "$schedule":
		b.scheduleHandler(session, message)

	case "$standings":
		b.standingsHandler(session, message)

	case "$bestplayers":
		b.bestPlayersHandler(session, message)

	case "$teams":
		b.teamsHandler(session, message)

	case "$team":
		b.teamHandler(session, message)

	case "$news":
		b.newsHandler(session, message)
	}
}
