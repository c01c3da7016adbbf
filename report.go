package main

import "time"

// MatchReport is the plain serializable summary of a finished (or running)
// match, safe to hand to handlers, the websocket feed and the archive.
type MatchReport struct {
	MatchID     int           `json:"match_id"`
	Status      string        `json:"status"`
	Minute      int           `json:"minute"`
	HomeTeam    string        `json:"home_team"`
	AwayTeam    string        `json:"away_team"`
	HomeScore   int           `json:"home_score"`
	AwayScore   int           `json:"away_score"`
	TotalPlayed time.Duration `json:"total_played_ns"`
	Home        TeamReport    `json:"home"`
	Away        TeamReport    `json:"away"`
	Events      []EventRecord `json:"events,omitempty"`
}

// TeamReport is one side's aggregate and per-player numbers. Interceptions,
// tackles and saves are summed from the individual lines since they are
// credited per player.
type TeamReport struct {
	Team              string        `json:"team"`
	Tactic            string        `json:"tactic"`
	Possession        time.Duration `json:"possession_ns"`
	PossessionPercent float64       `json:"possession_percent"`
	Shots             int           `json:"shots"`
	ShotsOnTarget     int           `json:"shots_on_target"`
	PassesAttempted   int           `json:"passes_attempted"`
	PassesCompleted   int           `json:"passes_completed"`
	Crosses           int           `json:"crosses"`
	Interceptions     int           `json:"interceptions"`
	Tackles           int           `json:"tackles"`
	FoulsConceded     int           `json:"fouls_conceded"`
	Offsides          int           `json:"offsides"`
	YellowCards       int           `json:"yellow_cards"`
	RedCards          int           `json:"red_cards"`
	Corners           int           `json:"corners"`
	FreeKicks         int           `json:"free_kicks"`
	Saves             int           `json:"saves"`
	Players           []PlayerLine  `json:"players"`
}

// PlayerLine is a single player's match statistics.
type PlayerLine struct {
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	Goals         int     `json:"goals"`
	Shots         int     `json:"shots"`
	Passes        int     `json:"passes"`
	Interceptions int     `json:"interceptions"`
	Tackles       int     `json:"tackles"`
	Fouls         int     `json:"fouls"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	Saves         int     `json:"saves"`
	Fatigue       float64 `json:"fatigue"`
	SentOff       bool    `json:"sent_off"`
}

// EventRecord is the flattened, client-facing form of a SimulationEvent.
type EventRecord struct {
	Seq        int    `json:"seq"`
	Minute     int    `json:"minute"`
	Status     string `json:"status"`
	Type       string `json:"type"`
	Outcome    string `json:"outcome"`
	Side       string `json:"side"`
	Player     string `json:"player,omitempty"`
	Defender   string `json:"defender,omitempty"`
	Zone       string `json:"zone"`
	Commentary string `json:"commentary"`
}

func recordOf(ev *SimulationEvent) EventRecord {
	rec := EventRecord{
		Seq:        ev.Seq,
		Minute:     ev.State.Minute(),
		Status:     ev.State.Status.String(),
		Type:       ev.Type.String(),
		Outcome:    ev.Outcome.String(),
		Side:       ev.Side.String(),
		Zone:       ev.EndPosition.String(),
		Commentary: ev.Commentary,
	}
	if ev.Attacker != nil {
		rec.Player = ev.Attacker.Name
	}
	if ev.Defender != nil {
		rec.Defender = ev.Defender.Name
	}
	return rec
}

// buildReport snapshots a match into its serializable form. withEvents
// controls whether the full event log is included.
func buildReport(lg *LiveGame, withEvents bool) *MatchReport {
	homeScore, awayScore := lg.Score()
	report := &MatchReport{
		MatchID:     lg.ID,
		Status:      lg.State.Status.String(),
		Minute:      lg.State.Minute(),
		HomeTeam:    lg.Home.Club.Name,
		AwayTeam:    lg.Away.Club.Name,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		TotalPlayed: lg.TotalPlayed(),
		Home:        teamReport(lg.Home, lg.TotalPlayed()),
		Away:        teamReport(lg.Away, lg.TotalPlayed()),
	}
	if withEvents {
		for _, ev := range lg.Events() {
			report.Events = append(report.Events, recordOf(ev))
		}
	}
	return report
}

func teamReport(ts *TeamSimulationState, totalPlayed time.Duration) TeamReport {
	tr := TeamReport{
		Team:            ts.Club.Name,
		Tactic:          ts.Tactic,
		Possession:      ts.Stats.Possession,
		Shots:           ts.Stats.Shots,
		ShotsOnTarget:   ts.Stats.ShotsOnTarget,
		PassesAttempted: ts.Stats.PassesAttempted,
		PassesCompleted: ts.Stats.PassesCompleted,
		Crosses:         ts.Stats.Crosses,
		FoulsConceded:   ts.Stats.FoulsConceded,
		Offsides:        ts.Stats.Offsides,
		YellowCards:     ts.Stats.YellowCards,
		RedCards:        ts.Stats.RedCards,
		Corners:         ts.Stats.Corners,
		FreeKicks:       ts.Stats.FreeKicks,
	}
	if totalPlayed > 0 {
		tr.PossessionPercent = 100 * float64(ts.Stats.Possession) / float64(totalPlayed)
	}
	for _, mp := range ts.Lineup {
		tr.Interceptions += mp.Stats.Interceptions
		tr.Tackles += mp.Stats.Tackles
		tr.Saves += mp.Stats.Saves
		tr.Players = append(tr.Players, PlayerLine{
			Name:          mp.Ref.Name,
			Position:      mp.Ref.Position,
			Goals:         mp.Stats.Goals,
			Shots:         mp.Stats.Shots,
			Passes:        mp.Stats.PassesAttempted,
			Interceptions: mp.Stats.Interceptions,
			Tackles:       mp.Stats.Tackles,
			Fouls:         mp.Stats.FoulsCommitted,
			YellowCards:   mp.Stats.YellowCards,
			RedCards:      mp.Stats.RedCards,
			Saves:         mp.Stats.Saves,
			Fatigue:       mp.Fatigue,
			SentOff:       mp.SentOff,
		})
	}
	return tr
}
