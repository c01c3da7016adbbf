package main

import (
	"fmt"
	"sort"
)

// Fixture is one scheduled match of a season. Seed is derived from the base
// season seed at schedule time so every fixture replays identically no
// matter when it is actually simulated.
type Fixture struct {
	ID        int    `json:"id"`
	Matchday  int    `json:"matchday"`
	League    string `json:"league"`
	HomeID    int    `json:"home_id"`
	AwayID    int    `json:"away_id"`
	HomeName  string `json:"home_name"`
	AwayName  string `json:"away_name"`
	Played    bool   `json:"played"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Seed      int64  `json:"-"`
}

// LeagueTableRow is one club's standing.
type LeagueTableRow struct {
	Position     int    `json:"position"`
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// Season holds the schedule and standings for every league in the world.
type Season struct {
	Year     int                          `json:"year"`
	Matchday int                          `json:"matchday"`
	Fixtures map[string][]*Fixture        `json:"fixtures"`
	Tables   map[string][]*LeagueTableRow `json:"tables"`
}

// teamsByLeague returns the clubs of a league ordered by ID so schedule
// generation is deterministic.
func teamsByLeague(teams map[int]*TeamInfo, league string) []*TeamInfo {
	var out []*TeamInfo
	for _, t := range teams {
		if t.League == league {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// newSeason builds a double round-robin schedule and an empty table for each
// league.
func newSeason(year int, teams map[int]*TeamInfo, baseSeed int64) *Season {
	season := &Season{
		Year:     year,
		Matchday: 1,
		Fixtures: make(map[string][]*Fixture),
		Tables:   make(map[string][]*LeagueTableRow),
	}

	nextID := 1
	for _, league := range leagues {
		clubs := teamsByLeague(teams, league)
		fixtures := generateFixtures(league, clubs, baseSeed, &nextID)
		season.Fixtures[league] = fixtures

		var table []*LeagueTableRow
		for _, club := range clubs {
			table = append(table, &LeagueTableRow{TeamID: club.ID, TeamName: club.Name})
		}
		sortLeagueTable(table)
		season.Tables[league] = table

		logInfo("📅 %s: scheduled %d fixtures across %d matchdays", league, len(fixtures), 2*(len(clubs)-1))
	}
	return season
}

// generateFixtures produces a double round-robin: the circle method gives
// the first leg, the return leg swaps home and away.
func generateFixtures(league string, clubs []*TeamInfo, baseSeed int64, nextID *int) []*Fixture {
	n := len(clubs)
	if n < 2 || n%2 != 0 {
		logInfo("⚠️  %s has %d clubs, cannot build a balanced schedule", league, n)
		return nil
	}

	var fixtures []*Fixture
	rounds := n - 1

	add := func(matchday int, home, away *TeamInfo) {
		f := &Fixture{
			ID:       *nextID,
			Matchday: matchday,
			League:   league,
			HomeID:   home.ID,
			AwayID:   away.ID,
			HomeName: home.Name,
			AwayName: away.Name,
			Seed:     baseSeed + int64(*nextID)*7919,
		}
		*nextID++
		fixtures = append(fixtures, f)
	}

	// Circle method: club[n-1] is fixed, the rest rotate each round.
	for round := 0; round < rounds; round++ {
		pivot := clubs[n-1]
		other := clubs[(round)%(n-1)]
		if round%2 == 0 {
			add(round+1, pivot, other)
		} else {
			add(round+1, other, pivot)
		}
		for i := 1; i < n/2; i++ {
			a := clubs[(round+i)%(n-1)]
			b := clubs[(round+n-1-i)%(n-1)]
			if i%2 == 0 {
				add(round+1, a, b)
			} else {
				add(round+1, b, a)
			}
		}
	}

	// Return leg, mirrored.
	firstLeg := len(fixtures)
	for i := 0; i < firstLeg; i++ {
		src := fixtures[i]
		f := &Fixture{
			ID:       *nextID,
			Matchday: src.Matchday + rounds,
			League:   league,
			HomeID:   src.AwayID,
			AwayID:   src.HomeID,
			HomeName: src.AwayName,
			AwayName: src.HomeName,
			Seed:     baseSeed + int64(*nextID)*7919,
		}
		*nextID++
		fixtures = append(fixtures, f)
	}
	return fixtures
}

// fixturesForMatchday filters one league's schedule.
func (s *Season) fixturesForMatchday(league string, matchday int) []*Fixture {
	var out []*Fixture
	for _, f := range s.Fixtures[league] {
		if f.Matchday == matchday {
			out = append(out, f)
		}
	}
	return out
}

// recordResult marks a fixture played and folds the score into the league
// table and both clubs' form.
func (s *Season) recordResult(f *Fixture, homeScore, awayScore int, teams map[int]*TeamInfo) {
	f.Played = true
	f.HomeScore = homeScore
	f.AwayScore = awayScore

	table := s.Tables[f.League]
	home := tableRow(table, f.HomeID)
	away := tableRow(table, f.AwayID)
	if home == nil || away == nil {
		logInfo("⚠️  fixture %d references a club missing from the %s table", f.ID, f.League)
		return
	}

	home.Played++
	away.Played++
	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Won++
		home.Points += 3
		away.Lost++
		recordForm(teams[f.HomeID], "W")
		recordForm(teams[f.AwayID], "L")
	case awayScore > homeScore:
		away.Won++
		away.Points += 3
		home.Lost++
		recordForm(teams[f.HomeID], "L")
		recordForm(teams[f.AwayID], "W")
	default:
		home.Drawn++
		away.Drawn++
		home.Points++
		away.Points++
		recordForm(teams[f.HomeID], "D")
		recordForm(teams[f.AwayID], "D")
	}
	home.GoalDiff = home.GoalsFor - home.GoalsAgainst
	away.GoalDiff = away.GoalsFor - away.GoalsAgainst

	sortLeagueTable(table)
	logInfo("📊 %s %d - %d %s (matchday %d, %s)", f.HomeName, homeScore, awayScore, f.AwayName, f.Matchday, f.League)
}

// matchdayComplete reports whether every fixture of the current matchday is
// played, across all leagues.
func (s *Season) matchdayComplete() bool {
	for league := range s.Fixtures {
		for _, f := range s.fixturesForMatchday(league, s.Matchday) {
			if !f.Played {
				return false
			}
		}
	}
	return true
}

// advanceMatchday moves to the next round, reporting false once the season
// schedule is exhausted.
func (s *Season) advanceMatchday() bool {
	s.Matchday++
	for league := range s.Fixtures {
		if len(s.fixturesForMatchday(league, s.Matchday)) > 0 {
			return true
		}
	}
	return false
}

func tableRow(table []*LeagueTableRow, teamID int) *LeagueTableRow {
	for _, row := range table {
		if row.TeamID == teamID {
			return row
		}
	}
	return nil
}

// sortLeagueTable orders by points, goal difference, goals scored, then name
// for stability, and renumbers positions.
func sortLeagueTable(table []*LeagueTableRow) {
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].GoalDiff != table[j].GoalDiff {
			return table[i].GoalDiff > table[j].GoalDiff
		}
		if table[i].GoalsFor != table[j].GoalsFor {
			return table[i].GoalsFor > table[j].GoalsFor
		}
		return table[i].TeamName < table[j].TeamName
	})
	for i, row := range table {
		row.Position = i + 1
	}
}

// recordForm keeps the last five results newest-first and refreshes the
// club's form points (W=3, D=1).
func recordForm(team *TeamInfo, result string) {
	if team == nil {
		return
	}
	team.Form = append([]string{result}, team.Form...)
	if len(team.Form) > 5 {
		team.Form = team.Form[:5]
	}
	points := 0
	for _, r := range team.Form {
		switch r {
		case "W":
			points += 3
		case "D":
			points++
		}
	}
	team.FormPoints = points
}

// seasonLabel is the display name, e.g. "2026/27".
func (s *Season) seasonLabel() string {
	return fmt.Sprintf("%d/%02d", s.Year, (s.Year+1)%100)
}
