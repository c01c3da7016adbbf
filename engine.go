package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	// ErrMatchFinished is returned by Step once the match has reached full
	// time; the final state is frozen and can only be read.
	ErrMatchFinished = errors.New("match already finished")
	// ErrNilRandomSource guards the reproducibility contract: a match is
	// never allowed to fall back to ambient randomness.
	ErrNilRandomSource = errors.New("nil random source")
)

// MatchConfig is the pre-match configuration. The zero value is not usable;
// start from DefaultMatchConfig.
type MatchConfig struct {
	HalfLength       time.Duration `json:"half_length"`
	ExtraTimeEnabled bool          `json:"extra_time_enabled"`
	ExtraHalfLength  time.Duration `json:"extra_half_length"`
	Seed             int64         `json:"seed"`
}

func DefaultMatchConfig(seed int64) MatchConfig {
	return MatchConfig{
		HalfLength:      45 * time.Minute,
		ExtraHalfLength: 15 * time.Minute,
		Seed:            seed,
	}
}

type periodSpec struct {
	status  MatchStatus
	start   time.Duration // nominal match clock at kickoff
	length  time.Duration
	kickoff TeamSide
}

// LiveGame advances a single match strictly tick by tick. It exclusively
// owns its GameState, both TeamSimulationStates and the event log; callers
// observe the match through snapshots and the returned events, never by
// mutating shared state. All randomness flows through the per-match source,
// so the same seed, rosters and configuration always replay the exact same
// match.
type LiveGame struct {
	ID     int
	Config MatchConfig

	rng   *rand.Rand
	State GameState
	Home  *TeamSimulationState
	Away  *TeamSimulationState

	events []*SimulationEvent
	seq    int

	attacking        TeamSide
	pendingRestart   EventType
	hasRestart       bool
	period           periodSpec
	periodElapsed    time.Duration
	periodAdditional time.Duration
	periodOver       bool
	awaitingExtra    bool
	totalPlayed      time.Duration
	finished         bool

	// degradations counts mid-match fallbacks to the safe default event,
	// surfaced for observability but never treated as an error.
	degradations int
}

// NewLiveGame validates the pre-match configuration and builds the
// orchestrator. Invalid rosters or configuration are reported here, before
// the first tick, with the match and team identified; nothing is silently
// defaulted.
func NewLiveGame(id int, home *TeamInfo, homeEleven []*Player, away *TeamInfo, awayEleven []*Player, cfg MatchConfig) (*LiveGame, error) {
	return newLiveGameWithRand(id, home, homeEleven, away, awayEleven, cfg, rand.New(rand.NewSource(cfg.Seed)))
}

func newLiveGameWithRand(id int, home *TeamInfo, homeEleven []*Player, away *TeamInfo, awayEleven []*Player, cfg MatchConfig, rng *rand.Rand) (*LiveGame, error) {
	if rng == nil {
		return nil, fmt.Errorf("match %d: %w", id, ErrNilRandomSource)
	}
	if cfg.HalfLength <= 0 {
		return nil, fmt.Errorf("match %d: half length must be positive, got %s", id, cfg.HalfLength)
	}
	if cfg.ExtraTimeEnabled && cfg.ExtraHalfLength <= 0 {
		return nil, fmt.Errorf("match %d: extra time enabled with non-positive half length %s", id, cfg.ExtraHalfLength)
	}

	homeSim, err := newTeamSimulation(home, homeEleven, HomeSide)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", id, err)
	}
	awaySim, err := newTeamSimulation(away, awayEleven, AwaySide)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", id, err)
	}

	return &LiveGame{
		ID:     id,
		Config: cfg,
		rng:    rng,
		Home:   homeSim,
		Away:   awaySim,
		State: GameState{
			Status:   StatusPreMatch,
			Position: ZoneMidfieldCenter,
		},
	}, nil
}

func (lg *LiveGame) teamFor(side TeamSide) *TeamSimulationState {
	if side == HomeSide {
		return lg.Home
	}
	return lg.Away
}

// Score returns home and away goals.
func (lg *LiveGame) Score() (int, int) {
	return lg.Home.Stats.Goals, lg.Away.Stats.Goals
}

// Finished reports whether the match has reached full time.
func (lg *LiveGame) Finished() bool {
	return lg.finished
}

// Events returns the ordered event log. The slice and its entries must be
// treated as read-only.
func (lg *LiveGame) Events() []*SimulationEvent {
	return lg.events
}

// LatestEvent is the most recent entry of the event log, nil before kickoff.
func (lg *LiveGame) LatestEvent() *SimulationEvent {
	if len(lg.events) == 0 {
		return nil
	}
	return lg.events[len(lg.events)-1]
}

// TotalPlayed is the playing time simulated so far, the sum of every event
// duration. Home plus away possession always equals this value.
func (lg *LiveGame) TotalPlayed() time.Duration {
	return lg.totalPlayed
}

// Degradations is how often the engine had to fall back to the safe default
// event because no eligible actor remained for a role.
func (lg *LiveGame) Degradations() int {
	return lg.degradations
}

// Step advances the match by exactly one tick and returns the event it
// produced: a clock marker at phase boundaries, a resolved playable action
// otherwise. This is the primary external entry point; a GUI renders live
// commentary by calling Step and reading the returned event.
func (lg *LiveGame) Step() (*SimulationEvent, error) {
	if lg.finished {
		return nil, fmt.Errorf("match %d: %w", lg.ID, ErrMatchFinished)
	}

	switch {
	case lg.State.Status == StatusPreMatch:
		return lg.beginPeriod(periodSpec{StatusFirstHalf, 0, lg.Config.HalfLength, HomeSide}), nil

	case lg.State.Status == StatusHalfTime:
		return lg.beginPeriod(periodSpec{StatusSecondHalf, lg.Config.HalfLength, lg.Config.HalfLength, AwaySide}), nil

	case lg.State.Status == StatusExtraTimeHalfTime:
		return lg.beginPeriod(periodSpec{
			StatusExtraTimeSecondHalf,
			2*lg.Config.HalfLength + lg.Config.ExtraHalfLength,
			lg.Config.ExtraHalfLength,
			AwaySide,
		}), nil

	case lg.awaitingExtra:
		lg.awaitingExtra = false
		return lg.beginPeriod(periodSpec{StatusExtraTimeFirstHalf, 2 * lg.Config.HalfLength, lg.Config.ExtraHalfLength, HomeSide}), nil

	case lg.periodOver:
		return lg.endPeriod(), nil
	}

	return lg.playTick(), nil
}

// Simulate runs the match to completion and returns the number of events
// produced. The caller can equally drive the match one Step at a time; the
// loop never suspends mid-tick.
func (lg *LiveGame) Simulate() (int, error) {
	for !lg.finished {
		if _, err := lg.Step(); err != nil {
			return len(lg.events), err
		}
	}
	return len(lg.events), nil
}

// beginPeriod starts a playing phase: pins the clock to the period's nominal
// start, draws the referee's additional time for the period, resets the ball
// to the centre circle and emits a kickoff marker.
func (lg *LiveGame) beginPeriod(p periodSpec) *SimulationEvent {
	lg.period = p
	lg.periodElapsed = 0
	lg.periodOver = false
	lg.hasRestart = false

	if p.status == StatusExtraTimeFirstHalf || p.status == StatusExtraTimeSecondHalf {
		lg.periodAdditional = time.Duration(lg.rng.Intn(2)) * time.Minute
	} else {
		lg.periodAdditional = time.Duration(1+lg.rng.Intn(5)) * time.Minute
	}

	lg.State.Status = p.status
	lg.State.Elapsed = p.start
	lg.State.InAdditionalTime = false
	lg.State.AdditionalTimeElapsed = 0
	lg.State.Position = ZoneMidfieldCenter
	lg.attacking = p.kickoff

	return lg.appendMarker(EventKickoff, kickoffCommentary(p.status, lg.teamFor(p.kickoff).Club))
}

// endPeriod emits the break or full-time marker once a period's clock is
// exhausted, advancing the status machine.
func (lg *LiveGame) endPeriod() *SimulationEvent {
	lg.periodOver = false
	homeGoals, awayGoals := lg.Score()

	switch lg.State.Status {
	case StatusFirstHalf:
		lg.State.Status = StatusHalfTime
		return lg.appendMarker(EventBreak, fmt.Sprintf("Halftime! %s %d - %d %s",
			lg.Home.Club.Name, homeGoals, awayGoals, lg.Away.Club.Name))

	case StatusSecondHalf:
		if homeGoals == awayGoals && lg.Config.ExtraTimeEnabled {
			lg.awaitingExtra = true
			return lg.appendMarker(EventBreak, fmt.Sprintf("Ninety minutes played, %d-%d. Extra time coming up.",
				homeGoals, awayGoals))
		}
		return lg.finishMatch()

	case StatusExtraTimeFirstHalf:
		lg.State.Status = StatusExtraTimeHalfTime
		return lg.appendMarker(EventBreak, "End of the first period of extra time.")

	case StatusExtraTimeSecondHalf:
		return lg.finishMatch()
	}

	// Unreachable if the status machine is intact.
	return lg.finishMatch()
}

func (lg *LiveGame) finishMatch() *SimulationEvent {
	lg.State.Status = StatusFullTime
	lg.finished = true
	homeGoals, awayGoals := lg.Score()
	return lg.appendMarker(EventFullTime, fmt.Sprintf("Full time! %s %d - %d %s",
		lg.Home.Club.Name, homeGoals, awayGoals, lg.Away.Club.Name))
}

func (lg *LiveGame) appendMarker(t EventType, commentary string) *SimulationEvent {
	lg.seq++
	ev := &SimulationEvent{
		Seq:         lg.seq,
		Type:        t,
		Outcome:     OutcomeNone,
		State:       lg.State,
		Side:        lg.attacking,
		EndPosition: lg.State.Position,
		Commentary:  commentary,
	}
	lg.events = append(lg.events, ev)
	return ev
}

// playTick produces one resolved action for the team in possession and folds
// its consequences into the game state, the statistics and the clocks.
func (lg *LiveGame) playTick() *SimulationEvent {
	team := lg.teamFor(lg.attacking)
	opp := lg.teamFor(lg.attacking.Other())

	boundary := lg.period.length + lg.periodAdditional
	remaining := boundary - lg.periodElapsed

	action := team.chooseAction(lg.rng, lg.State.Position, team.Stats.Goals-opp.Stats.Goals, remaining)
	if lg.hasRestart {
		action = lg.pendingRestart
		lg.hasRestart = false
	}

	var actor *MatchPlayer
	if action == EventGoalKick {
		actor = team.Goalkeeper()
	}
	if actor == nil {
		actor = team.chooseActor(lg.rng, action, lg.State.Position)
	}
	if actor == nil {
		// Degrade to the safe default rather than failing the tick: a goal
		// kick taken by whoever is left resets play without drama.
		lg.degradations++
		logInfo("match %d: no eligible %s actor for %s, degrading to goal kick", lg.ID, team.Club.ShortName, action)
		action = EventGoalKick
		actor = firstAvailable(team)
	}

	snapshot := lg.State

	if actor == nil {
		// Nobody left on the pitch at all; dead ball straight to the
		// opposition.
		ev := lg.applyResolved(team, opp, action, OutcomeGoalKickMiss, lg.State.Position, nil, nil, nil, remaining, snapshot)
		return ev
	}

	var defender *MatchPlayer
	switch action {
	case EventPass, EventDribble, EventShot, EventCross, EventFoul:
		defender = opp.chooseDefender(lg.rng, lg.State.Position)
	}
	keeper := opp.Goalkeeper()

	ctx := eventContext{
		Type:      action,
		State:     lg.State,
		Attacker:  actor,
		Defender:  defender,
		Keeper:    keeper,
		Tactic:    team.Tactic,
		ScoreDiff: team.Stats.Goals - opp.Stats.Goals,
		Remaining: remaining,
	}
	outcome, endPos := resolveEvent(lg.rng, ctx)

	var receiver *MatchPlayer
	switch action {
	case EventPass, EventCross, EventCornerKick, EventFreeKick:
		receiver = team.chooseReceiver(lg.rng, actor, endPos)
	}

	return lg.applyResolved(team, opp, action, outcome, endPos, actor, defender, receiver, remaining, snapshot)
}

func firstAvailable(ts *TeamSimulationState) *MatchPlayer {
	for _, mp := range ts.Lineup {
		if mp.Available {
			return mp
		}
	}
	return nil
}

// applyResolved builds the immutable event, updates both teams, moves the
// ball (flipping to the equivalent zone on turnovers), advances the clocks
// and arms any dead-ball restart for the next tick.
func (lg *LiveGame) applyResolved(team, opp *TeamSimulationState, action EventType, outcome EventOutcome,
	endPos PitchPosition, actor, defender, receiver *MatchPlayer, remaining time.Duration, snapshot GameState) *SimulationEvent {

	duration := drawDuration(lg.rng, action)
	if duration > remaining {
		duration = remaining
	}

	lg.seq++
	ev := &SimulationEvent{
		Seq:         lg.seq,
		Type:        action,
		Outcome:     outcome,
		State:       snapshot,
		Side:        team.Side,
		EndPosition: endPos,
		Duration:    duration,
	}
	if actor != nil {
		ev.Attacker = actor.Ref
	}
	if defender != nil {
		ev.Defender = defender.Ref
	}
	if receiver != nil {
		ev.Receiver = receiver.Ref
	}
	ev.Commentary = renderCommentary(lg.rng, ev, team.Club, opp.Club)

	if actor != nil {
		team.recordAttack(ev, actor)
	}
	opp.recordDefense(ev, defender, opp.Goalkeeper())

	team.addPossession(duration)
	team.drainFatigue(duration, actor)
	opp.drainFatigue(duration, defender)

	if outcome == OutcomeShotGoal {
		team.celebrateGoal(actor)
		opp.concedeGoal()
		lg.State.Position = ZoneMidfieldCenter
		lg.attacking = opp.Side
		lg.hasRestart = false
	} else if retainsPossession[outcome] {
		lg.State.Position = endPos
	} else {
		lg.State.Position = endPos.Equivalent()
		lg.attacking = opp.Side
	}

	if restart, ok := restartAfter[outcome]; ok && outcome != OutcomeShotGoal {
		lg.pendingRestart = restart
		lg.hasRestart = true
	}

	lg.periodElapsed += duration
	lg.totalPlayed += duration
	lg.State.Elapsed += duration
	if lg.periodElapsed > lg.period.length {
		lg.State.InAdditionalTime = true
		lg.State.AdditionalTimeElapsed = lg.periodElapsed - lg.period.length
	}
	if lg.periodElapsed >= lg.period.length+lg.periodAdditional {
		lg.periodOver = true
	}

	lg.events = append(lg.events, ev)
	return ev
}

func kickoffCommentary(status MatchStatus, kicking *TeamInfo) string {
	switch status {
	case StatusFirstHalf:
		return fmt.Sprintf("Kickoff! %s get us underway.", kicking.Name)
	case StatusSecondHalf:
		return fmt.Sprintf("Second half underway, %s with the ball.", kicking.Name)
	case StatusExtraTimeFirstHalf:
		return "Extra time begins!"
	case StatusExtraTimeSecondHalf:
		return "The final period of extra time is underway."
	}
	return "Play resumes."
}
