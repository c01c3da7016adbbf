package main

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// World state. The match engine goroutine is the only writer of simulation
// state; HTTP handlers take read locks and serve snapshots.
var (
	stateMu   sync.RWMutex
	appConfig *Config
	teams     map[int]*TeamInfo
	players   map[int]*Player
	season    *Season
	// liveMatches holds the current matchday's games, keyed by fixture ID.
	liveMatches  map[int]*LiveGame
	liveFixtures map[int]*Fixture
	archive      *MatchArchive
	feedHub      *FeedHub
	startedAt    = time.Now()
)

const worldYear = 2026

// initWorld generates teams and squads from the configured seed, schedules
// the season and kicks off the first matchday.
func initWorld(cfg *Config) {
	appConfig = cfg
	teams, players = generateWorld(cfg.Simulation.Seed)
	season = newSeason(worldYear, teams, cfg.Simulation.Seed)
	liveMatches = make(map[int]*LiveGame)
	liveFixtures = make(map[int]*Fixture)
	feedHub = newFeedHub()

	logInfo("🚀 World initialised: %d teams, %d players, season %s", len(teams), len(players), season.seasonLabel())
	startMatchday()
}

// startMatchday creates a LiveGame for every unplayed fixture of the current
// matchday. Fixtures whose pre-match validation fails are marked played as a
// 0-0 walkover so the season can always advance.
func startMatchday() {
	for _, league := range leagues {
		for _, f := range season.fixturesForMatchday(league, season.Matchday) {
			if f.Played {
				continue
			}
			lg, err := NewLiveGame(f.ID,
				teams[f.HomeID], startingEleven(f.HomeID, players),
				teams[f.AwayID], startingEleven(f.AwayID, players),
				appConfig.matchConfig(f.Seed))
			if err != nil {
				logError("fixture %d not playable: %v", f.ID, err)
				season.recordResult(f, 0, 0, teams)
				continue
			}
			liveMatches[f.ID] = lg
			liveFixtures[f.ID] = f
		}
	}
	logInfo("⚽ Matchday %d underway with %d live matches", season.Matchday, len(liveMatches))
}

// runMatchEngine drives every live match one tick per interval and rolls the
// season forward as matchdays complete. It owns all simulation writes.
func runMatchEngine(stop <-chan struct{}) {
	ticker := time.NewTicker(appConfig.tickInterval())
	defer ticker.Stop()
	logInfo("🎮 Match engine started, ticking every %s", appConfig.tickInterval())

	for {
		select {
		case <-stop:
			logInfo("🛑 Match engine stopped")
			return
		case <-ticker.C:
			stateMu.Lock()
			stepAllMatches()
			stateMu.Unlock()
		}
	}
}

// stepAllMatches advances each live match by one event; caller holds the
// write lock. Match IDs are stepped in order so a run is reproducible.
func stepAllMatches() {
	ids := make([]int, 0, len(liveMatches))
	for id := range liveMatches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		lg := liveMatches[id]
		ev, err := lg.Step()
		if err != nil {
			logError("match %d step failed: %v", id, err)
			delete(liveMatches, id)
			delete(liveFixtures, id)
			continue
		}
		feedHub.BroadcastEvent(id, ev)

		if lg.Finished() {
			finishMatch(id, lg)
		}
	}

	if len(liveMatches) == 0 && season.matchdayComplete() {
		if season.advanceMatchday() {
			startMatchday()
		} else {
			logInfo("🏁 Season %s complete, generating season %d", season.seasonLabel(), season.Year+1)
			season = newSeason(season.Year+1, teams, appConfig.Simulation.Seed+int64(season.Year+1))
			startMatchday()
		}
	}
}

func finishMatch(id int, lg *LiveGame) {
	f := liveFixtures[id]
	homeScore, awayScore := lg.Score()
	season.recordResult(f, homeScore, awayScore, teams)

	report := buildReport(lg, true)
	feedHub.BroadcastReport(report)
	if err := archive.SaveFinishedMatch(f, season.Year, report); err != nil {
		logError("archive failed: %v", err)
	}

	delete(liveMatches, id)
	delete(liveFixtures, id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logError("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	stateMu.RLock()
	live := len(liveMatches)
	matchday := season.Matchday
	label := season.seasonLabel()
	stateMu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"uptime":       time.Since(startedAt).String(),
		"live_matches": live,
		"matchday":     matchday,
		"season":       label,
		"archive":      archive.Enabled(),
	})
}

func getAllMatches(w http.ResponseWriter, r *http.Request) {
	stateMu.RLock()
	defer stateMu.RUnlock()

	ids := make([]int, 0, len(liveMatches))
	for id := range liveMatches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	reports := make([]*MatchReport, 0, len(ids))
	for _, id := range ids {
		reports = append(reports, buildReport(liveMatches[id], false))
	}
	writeJSON(w, http.StatusOK, reports)
}

func getMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	stateMu.RLock()
	defer stateMu.RUnlock()
	lg, exists := liveMatches[id]
	if !exists {
		writeError(w, http.StatusNotFound, "match not found or already finished")
		return
	}
	writeJSON(w, http.StatusOK, buildReport(lg, false))
}

func getMatchStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	stateMu.RLock()
	defer stateMu.RUnlock()
	lg, exists := liveMatches[id]
	if !exists {
		writeError(w, http.StatusNotFound, "match not found or already finished")
		return
	}
	report := buildReport(lg, false)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"match_id":     id,
		"home":         report.Home,
		"away":         report.Away,
		"degradations": lg.Degradations(),
	})
}

func getMatchEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	stateMu.RLock()
	defer stateMu.RUnlock()
	lg, exists := liveMatches[id]
	if !exists {
		writeError(w, http.StatusNotFound, "match not found or already finished")
		return
	}
	events := lg.Events()
	records := make([]EventRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, recordOf(ev))
	}
	writeJSON(w, http.StatusOK, records)
}

func getMatchCommentary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	stateMu.RLock()
	defer stateMu.RUnlock()
	lg, exists := liveMatches[id]
	if !exists {
		writeError(w, http.StatusNotFound, "match not found or already finished")
		return
	}
	events := lg.Events()
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	lines := make([]map[string]interface{}, 0, len(events))
	for _, ev := range events {
		lines = append(lines, map[string]interface{}{
			"minute":     ev.State.Minute(),
			"commentary": ev.Commentary,
		})
	}
	writeJSON(w, http.StatusOK, lines)
}

func getAllTeams(w http.ResponseWriter, r *http.Request) {
	stateMu.RLock()
	defer stateMu.RUnlock()
	out := make([]*TeamInfo, 0, len(teams))
	for _, t := range teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func getTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	stateMu.RLock()
	defer stateMu.RUnlock()
	team, exists := teams[id]
	if !exists {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}

	var squad []*Player
	for _, p := range players {
		if p.TeamID == id {
			squad = append(squad, p)
		}
	}
	sort.Slice(squad, func(i, j int) bool { return squad[i].ID < squad[j].ID })
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"team":  team,
		"squad": squad,
	})
}

func getAllPlayers(w http.ResponseWriter, r *http.Request) {
	stateMu.RLock()
	defer stateMu.RUnlock()
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func getPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	stateMu.RLock()
	defer stateMu.RUnlock()
	p, exists := players[id]
	if !exists {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func getLeagueTable(w http.ResponseWriter, r *http.Request) {
	league := mux.Vars(r)["league"]
	stateMu.RLock()
	defer stateMu.RUnlock()
	table, exists := season.Tables[league]
	if !exists {
		writeError(w, http.StatusNotFound, "league not found")
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func getLeagueFixtures(w http.ResponseWriter, r *http.Request) {
	league := mux.Vars(r)["league"]
	stateMu.RLock()
	defer stateMu.RUnlock()
	fixtures, exists := season.Fixtures[league]
	if !exists {
		writeError(w, http.StatusNotFound, "league not found")
		return
	}
	if raw := r.URL.Query().Get("matchday"); raw != "" {
		matchday, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid matchday")
			return
		}
		fixtures = season.fixturesForMatchday(league, matchday)
	}
	writeJSON(w, http.StatusOK, fixtures)
}

func getSeasonInfo(w http.ResponseWriter, r *http.Request) {
	stateMu.RLock()
	defer stateMu.RUnlock()
	total, played := 0, 0
	for _, fixtures := range season.Fixtures {
		for _, f := range fixtures {
			total++
			if f.Played {
				played++
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"season":          season.seasonLabel(),
		"year":            season.Year,
		"matchday":        season.Matchday,
		"fixtures_total":  total,
		"fixtures_played": played,
	})
}

func getResults(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	results, err := archive.RecentResults(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "archive unavailable")
		logError("reading archive: %v", err)
		return
	}
	if results == nil {
		// archive disabled: serve this season's played fixtures instead
		stateMu.RLock()
		for _, fixtures := range season.Fixtures {
			for _, f := range fixtures {
				if f.Played {
					results = append(results, f)
				}
			}
		}
		stateMu.RUnlock()
		sort.Slice(results, func(i, j int) bool { return results[i].ID > results[j].ID })
		if len(results) > limit {
			results = results[:limit]
		}
	}
	writeJSON(w, http.StatusOK, results)
}

func getLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, recentLogs(limit))
}

// newRouter wires every route. CORS wrapping happens in main.
func newRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", serveHomepage).Methods("GET")
	router.HandleFunc("/ws", feedHub.handleFeed)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthCheck).Methods("GET")
	api.HandleFunc("/logs", getLogs).Methods("GET")

	api.HandleFunc("/matches", getAllMatches).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}", getMatch).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/stats", getMatchStats).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/events", getMatchEvents).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/commentary", getMatchCommentary).Methods("GET")

	api.HandleFunc("/teams", getAllTeams).Methods("GET")
	api.HandleFunc("/teams/{id:[0-9]+}", getTeam).Methods("GET")
	api.HandleFunc("/players", getAllPlayers).Methods("GET")
	api.HandleFunc("/players/{id:[0-9]+}", getPlayer).Methods("GET")

	api.HandleFunc("/leagues/{league}/table", getLeagueTable).Methods("GET")
	api.HandleFunc("/leagues/{league}/fixtures", getLeagueFixtures).Methods("GET")
	api.HandleFunc("/seasons/current", getSeasonInfo).Methods("GET")
	api.HandleFunc("/results", getResults).Methods("GET")

	return router
}
