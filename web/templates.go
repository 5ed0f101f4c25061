/* templates.go
 * Contains the HTML templates of the console. Every tab template renders a whole page through the shared header
 * and footer
 */

package web

const consoleTemplates = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{if .Tournament.Name}}{{.Tournament.Name}} - {{end}}Tournament Console</title>
</head>
<body data-tournament="{{.Tournament.ID}}">
<header>
    <h1>{{if .Tournament.Name}}{{.Tournament.Name}}{{else}}Tournament Console{{end}}</h1>
    <nav>
        <a href="/schedule" class="tab{{if eq .Tab "schedule"}} active{{end}}">Schedule</a>
        <a href="/standings" class="tab{{if eq .Tab "standings"}} active{{end}}">Standings</a>
        <a href="/teams" class="tab{{if eq .Tab "teams"}} active{{end}}">Teams</a>
        <a href="/best-players" class="tab{{if eq .Tab "best-players"}} active{{end}}">Best Players</a>
        {{if .Auth.Authenticated}}<a href="/admin" class="tab{{if eq .Tab "admin"}} active{{end}}">Admin</a>{{end}}
    </nav>
    <div class="session">
    {{if .Auth.Authenticated}}
        <span class="user">{{.Auth.Username}}</span>
        <form method="post" action="/admin-mode" class="inline">
            <input type="hidden" name="tab" value="{{.Tab}}">
            <button type="submit" id="admin-toggle">{{if .Auth.AdminMode}}Viewer mode{{else}}Admin mode{{end}}</button>
        </form>
        <form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>
    {{else}}
        <form method="post" action="/login" id="login-form" class="inline">
            <input type="hidden" name="tab" value="{{.Tab}}">
            <input name="username" placeholder="Username" value="{{formValue .Form "username" ""}}">
            <input name="password" type="password" placeholder="Password">
            <button type="submit">Log in</button>
        </form>
    {{end}}
    </div>
</header>
<main>
{{if .Error}}<div class="alert" role="alert">{{.Error}}</div>{{end}}
{{end}}

{{define "footer"}}
</main>
{{if .Tournament.ID}}
<script>
(function () {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var socket = new WebSocket(proto + location.host + "/ws?tournament=" + {{.Tournament.ID}});
    socket.onmessage = function () { location.reload(); };
})();
</script>
{{end}}
</body>
</html>
{{end}}

{{define "hiddenTournament"}}<input type="hidden" name="tournament_id" value="{{.}}">{{end}}

{{define "error"}}{{template "header" .}}
<section class="load-error">
    {{with tabLabel .Tab}}<h2>Could not show {{.}}</h2>{{end}}
    <p class="message">{{.Error}}</p>
    <a href="{{.RetryURL}}" id="retry">Retry</a>
</section>
{{template "footer" .}}{{end}}

{{define "schedule"}}{{template "header" .}}
{{$v := .Data}}{{$admin := .Auth.AdminMode}}{{$tid := .Tournament.ID}}
<form method="get" action="/schedule" class="search">
    <input name="q" value="{{$v.Query}}" placeholder="Search teams or matches">
    <button type="submit">Search</button>
</form>
{{if $admin}}{{if eq .Tournament.Stage "not_yet_started"}}
<form method="post" action="/tournaments/{{$tid}}/start"><button type="submit">Start tournament</button></form>
{{end}}{{end}}
{{range $v.Rounds}}
<section class="round" id="round-{{.Round}}" data-type="{{.Type}}">
    <h2>{{.Title}}{{if eq .Round $v.CurrentRound}} <span class="current">Current</span>{{end}}</h2>
    <p class="pending">{{.Pending}} pending</p>
    {{if $admin}}
    <form method="post" action="/rounds/{{.Round}}/reschedule" class="inline">
        {{template "hiddenTournament" $tid}}
        <input type="date" name="date">
        <button type="submit">Reschedule</button>
    </form>
    {{if .Completable}}
    <form method="post" action="/rounds/{{.Round}}/complete" class="inline complete-round">
        {{template "hiddenTournament" $tid}}
        <button type="submit">Complete Round</button>
    </form>
    {{end}}
    {{end}}
    {{range .Matches}}{{$m := .}}
    <article class="match" id="match-{{.ID}}">
        <h3>
            {{with label .Label}}<span class="label">{{.}}</span>{{end}}
            <span class="white">{{teamName $v.Teams .White}}</span> vs <span class="black">{{teamName $v.Teams .Black}}</span>
            <span class="score">{{.WhiteScore}} - {{.BlackScore}}</span>
        </h3>
        <form method="post" action="/matches/{{.ID}}/toggle" class="inline">
            {{template "hiddenTournament" $tid}}
            <button type="submit">{{if index $v.Expanded .ID}}Collapse{{else}}Expand{{end}}</button>
        </form>
        {{if $admin}}
        <form method="post" action="/matches/{{.ID}}/swap-colors" class="inline">
            {{template "hiddenTournament" $tid}}
            <button type="submit">Swap colors</button>
        </form>
        {{if needsTiebreaker .}}
        <form method="post" action="/matches/{{.ID}}/tiebreaker" class="inline tiebreaker">
            {{template "hiddenTournament" $tid}}
            <select name="result">
                <option value="white_win">{{teamName $v.Teams .White}} wins</option>
                <option value="black_win">{{teamName $v.Teams .Black}} wins</option>
            </select>
            <button type="submit">Record armageddon</button>
        </form>
        {{end}}
        {{end}}
        {{if index $v.Expanded .ID}}
        <table class="boards">
            {{range .Games}}
            <tr class="board" data-board="{{.BoardNumber}}">
                <td>Board {{.BoardNumber}}</td>
                {{if whiteFirst .BoardNumber}}
                <td class="white">{{playerName $v.Players .WhitePlayerID}}</td><td class="black">{{playerName $v.Players .BlackPlayerID}}</td>
                {{else}}
                <td class="black">{{playerName $v.Players .BlackPlayerID}}</td><td class="white">{{playerName $v.Players .WhitePlayerID}}</td>
                {{end}}
                <td class="result">{{resultText .Result}}</td>
                {{if $admin}}
                <td>
                    {{$game := .}}
                    {{range boardChoices}}
                    <form method="post" action="/matches/{{$m.ID}}/boards/{{$game.BoardNumber}}/result" class="inline">
                        {{template "hiddenTournament" $tid}}
                        <input type="hidden" name="current" value="{{$game.Result}}">
                        <button type="submit" name="result" value="{{.}}"{{if eq . $game.Result}} class="chosen"{{end}}>{{resultText .}}</button>
                    </form>
                    {{end}}
                    <a href="/matches/{{$m.ID}}/boards/{{.BoardNumber}}/swap">Swap player</a>
                </td>
                {{end}}
            </tr>
            {{end}}
        </table>
        {{end}}
    </article>
    {{end}}
</section>
{{else}}
<p class="empty">No matches scheduled yet.</p>
{{end}}
{{if $admin}}{{if eq .Tournament.Stage "final"}}
<form method="post" action="/tournaments/{{$tid}}/complete"><button type="submit">Complete tournament</button></form>
{{end}}{{end}}
{{template "footer" .}}{{end}}

{{define "swap"}}{{template "header" .}}
{{$d := .Data}}
<section class="swap-players">
    <h2>Swap player on board {{$d.Board}}</h2>
    {{if $d.Candidates}}
    <form method="post" action="/matches/{{$d.MatchID}}/swap-players">
        {{template "hiddenTournament" .Tournament.ID}}
        <input type="hidden" name="board" value="{{$d.Board}}">
        <input type="hidden" name="out_player_id" value="{{$d.OutPlayerID}}">
        <select name="in_player_id">
            {{range $d.Candidates}}<option value="{{.PlayerID}}">{{.PlayerName}}</option>{{end}}
        </select>
        <button type="submit">Swap</button>
    </form>
    {{else}}
    <p class="empty">No players available for this board.</p>
    {{end}}
    <a href="/schedule">Cancel</a>
</section>
{{template "footer" .}}{{end}}

{{define "standings"}}{{template "header" .}}
{{$v := .Data}}{{$tid := .Tournament.ID}}
{{range $v.Groups}}{{$g := .}}
<section class="standings-group" id="group-{{.Group}}">
    {{if .Group}}<h2>Group {{.Group}}</h2>{{end}}
    <table class="standings">
        <tr><th>#</th><th>Team</th><th>MP</th><th>W</th><th>D</th><th>L</th><th>MP</th><th>GP</th><th>SB</th></tr>
        {{range .Entries}}
        <tr class="{{if $g.Selection.IsSelected .TeamID}}selected{{else if $g.Selection.IsHighlighted .TeamID}}highlighted{{else if index $g.Ties .TeamID}}tied{{end}}" data-team="{{.TeamID}}">
            <td>{{.Position}}</td>
            <td>
            {{if $v.ShowTiebreak}}{{if index $g.Ties .TeamID}}
                <form method="post" action="/standings/click" class="inline">
                    {{template "hiddenTournament" $tid}}
                    <input type="hidden" name="group" value="{{$g.Group}}">
                    <button type="submit" name="team" value="{{.TeamID}}">{{.TeamName}}</button>
                </form>
            {{else}}{{.TeamName}}{{end}}{{else}}{{.TeamName}}{{end}}
            </td>
            <td>{{.MatchesPlayed}}</td><td>{{.Wins}}</td><td>{{.Draws}}</td><td>{{.Losses}}</td>
            <td>{{.MatchPoints}}</td><td>{{.GamePoints}}</td><td>{{.SonnebornBerger}}</td>
        </tr>
        {{end}}
    </table>
</section>
{{else}}
<p class="empty">No standings yet.</p>
{{end}}
{{if $v.ShowValidate}}
<form method="post" action="/standings/validate" id="lock-standings">
    {{template "hiddenTournament" $tid}}
    <button type="submit">Lock Standings</button>
</form>
{{end}}
{{template "footer" .}}{{end}}

{{define "best-players"}}{{template "header" .}}
{{$v := .Data}}{{$tid := .Tournament.ID}}
<table class="best-players">
    <tr><th>#</th><th>Player</th><th>Team</th><th>Board</th><th>Games</th><th>Points</th><th>%</th></tr>
    {{range $v.Entries}}
    <tr class="{{if $v.Selection.IsSelected .PlayerID}}selected{{else if $v.Selection.IsHighlighted .PlayerID}}highlighted{{else if index $v.Ties .PlayerID}}tied{{end}}" data-player="{{.PlayerID}}">
        <td>{{.Position}}</td>
        <td>
        {{if $v.ShowTiebreak}}{{if index $v.Ties .PlayerID}}
            <form method="post" action="/best-players/click" class="inline">
                {{template "hiddenTournament" $tid}}
                <button type="submit" name="player" value="{{.PlayerID}}">{{.PlayerName}}</button>
            </form>
        {{else}}{{.PlayerName}}{{end}}{{else}}{{.PlayerName}}{{end}}
        </td>
        <td>{{.TeamName}}</td><td>{{.BoardNumber}}</td><td>{{.GamesPlayed}}</td><td>{{.Points}}</td><td>{{.Percentage}}</td>
    </tr>
    {{else}}
    <tr><td colspan="7" class="empty">No games played yet.</td></tr>
    {{end}}
</table>
{{if $v.ShowValidate}}
<form method="post" action="/best-players/validate" id="lock-best-players">
    {{template "hiddenTournament" $tid}}
    <button type="submit">Lock Best Players</button>
</form>
{{end}}
{{template "footer" .}}{{end}}

{{define "teams"}}{{template "header" .}}
{{$v := .Data}}{{$admin := .Auth.AdminMode}}{{$tid := .Tournament.ID}}
{{range $v.Teams}}{{$roster := .}}
<section class="team" id="team-{{.Team.ID}}">
    <h2>{{.Team.Name}}{{if .Team.Group}} <span class="group">Group {{.Team.Group}}</span>{{end}}</h2>
    {{if $admin}}
    <form method="post" action="/teams/{{.Team.ID}}" class="team-editor">
        {{template "hiddenTournament" $tid}}
        <input name="name" value="{{.Team.Name}}">
        {{range .Players}}
        <div class="player-row">
            <input type="hidden" name="player_id" value="{{.ID}}">
            <input name="player_name" value="{{.Name}}">
            <input name="player_rating" type="number" value="{{.Rating}}">
        </div>
        {{end}}
        <button type="submit">Save team</button>
    </form>
    {{range .Players}}
    <form method="post" action="/players/{{.ID}}/delete" class="inline">
        {{template "hiddenTournament" $tid}}
        <input type="hidden" name="roster_size" value="{{len $roster.Players}}">
        <button type="submit">Remove {{.Name}}</button>
    </form>
    {{end}}
    <form method="post" action="/teams/{{.Team.ID}}/players" class="add-player">
        {{template "hiddenTournament" $tid}}
        <input type="hidden" name="roster_size" value="{{len .Players}}">
        <input name="name" placeholder="Player name">
        <input name="rating" type="number" placeholder="Rating">
        <button type="submit">Add player</button>
    </form>
    {{else}}
    <ol class="roster">
        {{range .Players}}<li>{{.Name}}{{if .Rating}} ({{.Rating}}){{end}}</li>{{end}}
    </ol>
    {{end}}
</section>
{{else}}
<p class="empty">No teams registered.</p>
{{end}}
{{template "footer" .}}{{end}}

{{define "admin"}}{{template "header" .}}
{{$v := .Data}}{{$form := .Form}}
{{if not .Auth.Authenticated}}
<p class="empty">Log in to manage tournaments.</p>
{{else}}
<section class="tournaments">
    <h2>Tournaments</h2>
    <table>
        <tr><th>Name</th><th>Format</th><th>Stage</th><th>Rounds</th><th></th></tr>
        {{range $v.Tournaments}}
        <tr id="tournament-{{.ID}}">
            <td>{{.Name}}{{if and $v.HasCurrent (eq .ID $v.Current.ID)}} <span class="current">Current</span>{{end}}</td>
            <td>{{.Format}}</td><td>{{.Stage}}</td><td>{{.TotalRounds}}</td>
            <td>
                <form method="post" action="/tournaments/{{.ID}}/set-current" class="inline"><button type="submit">Set current</button></form>
                <form method="post" action="/tournaments/{{.ID}}/delete" class="inline"><button type="submit">Delete</button></form>
            </td>
        </tr>
        {{end}}
    </table>
    <form method="post" action="/tournaments" id="create-tournament">
        <h3>New tournament</h3>
        <input name="name" placeholder="Name" value="{{formValue $form "name" ""}}">
        <select name="format">
            {{range formats}}<option value="{{.}}"{{if eq . (formValue $form "format" "")}} selected{{end}}>{{.}}</option>{{end}}
        </select>
        <input name="total_rounds" type="number" placeholder="Rounds" value="{{formValue $form "total_rounds" ""}}">
        <input name="total_group_stage_rounds" type="number" placeholder="Group stage rounds" value="{{formValue $form "total_group_stage_rounds" ""}}">
        <button type="submit">Create</button>
    </form>
    {{if $v.HasCurrent}}
    <form method="post" action="/tournaments/{{$v.Current.ID}}" id="update-tournament">
        <h3>Edit {{$v.Current.Name}}</h3>
        <input name="name" value="{{$v.Current.Name}}">
        <input name="total_rounds" type="number" value="{{$v.Current.TotalRounds}}">
        <button type="submit">Save</button>
    </form>
    {{end}}
</section>
{{if $v.HasCurrent}}
<section class="announcements">
    <h2>Announcements</h2>
    {{range $v.Announcements}}
    <article class="announcement{{if .Pinned}} pinned{{end}}" id="announcement-{{.ID}}">
        <p class="posted">Posted {{date .CreatedAt}}</p>
        <form method="post" action="/announcements/{{.ID}}">
            {{template "hiddenTournament" $v.Current.ID}}
            <input name="title" value="{{.Title}}">
            <textarea name="content">{{.Content}}</textarea>
            <label><input type="checkbox" name="pinned" value="true"{{if .Pinned}} checked{{end}}> Pinned</label>
            <button type="submit">Save</button>
        </form>
        <form method="post" action="/announcements/{{.ID}}/delete">
            {{template "hiddenTournament" $v.Current.ID}}
            <button type="submit">Delete</button>
        </form>
    </article>
    {{end}}
    <form method="post" action="/announcements" id="create-announcement">
        {{template "hiddenTournament" $v.Current.ID}}
        <input name="title" placeholder="Title" value="{{formValue $form "title" ""}}">
        <textarea name="content">{{formValue $form "content" ""}}</textarea>
        <label><input type="checkbox" name="pinned" value="true"> Pinned</label>
        <button type="submit">Post</button>
    </form>
</section>
{{end}}
{{end}}
{{template "footer" .}}{{end}}
`
