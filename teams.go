package main

import (
	"fmt"
	"math/rand"
	"time"
)

type TeamSide int

const (
	HomeSide TeamSide = iota
	AwaySide
)

func (s TeamSide) Other() TeamSide {
	if s == HomeSide {
		return AwaySide
	}
	return HomeSide
}

func (s TeamSide) String() string {
	if s == HomeSide {
		return "HOME"
	}
	return "AWAY"
}

// PlayerMatchStats are per-player counters for one match. They only ever
// increase.
type PlayerMatchStats struct {
	PassesAttempted int `json:"passes_attempted"`
	PassesCompleted int `json:"passes_completed"`
	Shots           int `json:"shots"`
	ShotsOnTarget   int `json:"shots_on_target"`
	Goals           int `json:"goals"`
	Interceptions   int `json:"interceptions"`
	Tackles         int `json:"tackles"`
	FoulsCommitted  int `json:"fouls_committed"`
	YellowCards     int `json:"yellow_cards"`
	RedCards        int `json:"red_cards"`
	Saves           int `json:"saves"`
}

// MatchPlayer wraps a static Player record with the mutable per-match state:
// fatigue and morale accumulators, statistics and availability. The static
// record itself is never written to.
type MatchPlayer struct {
	Ref *Player
	// Fatigue grows from 0 towards 1 over the match and erodes effective
	// skill.
	Fatigue float64
	// Morale swings between -1 and 1 around a neutral 0.
	Morale    float64
	Stats     PlayerMatchStats
	Available bool
	SentOff   bool
}

func (mp *MatchPlayer) Name() string {
	if mp == nil || mp.Ref == nil {
		return "unknown player"
	}
	return mp.Ref.Name
}

// TeamMatchStats are the cumulative team counters for one match. Possession
// is accumulated by the orchestrator from event durations, so home plus away
// possession always equals total playing time.
type TeamMatchStats struct {
	Goals           int           `json:"goals"`
	Shots           int           `json:"shots"`
	ShotsOnTarget   int           `json:"shots_on_target"`
	PassesAttempted int           `json:"passes_attempted"`
	PassesCompleted int           `json:"passes_completed"`
	Crosses         int           `json:"crosses"`
	Corners         int           `json:"corners"`
	FreeKicks       int           `json:"free_kicks"`
	FoulsConceded   int           `json:"fouls_conceded"`
	Offsides        int           `json:"offsides"`
	YellowCards     int           `json:"yellow_cards"`
	RedCards        int           `json:"red_cards"`
	Possession      time.Duration `json:"possession_ns"`
}

// TeamSimulationState is one side's running aggregate for a single match:
// the on-pitch eleven, team statistics and the accumulators that drift as the
// match wears on. Owned by the LiveGame orchestrator; nothing else mutates it.
type TeamSimulationState struct {
	Club   *TeamInfo
	Side   TeamSide
	Tactic string
	Lineup []*MatchPlayer
	Stats  TeamMatchStats
}

func newTeamSimulation(club *TeamInfo, eleven []*Player, side TeamSide) (*TeamSimulationState, error) {
	if club == nil {
		return nil, fmt.Errorf("%s side: missing club record", side)
	}
	if len(eleven) != 11 {
		return nil, fmt.Errorf("%s (%s): lineup has %d players, want 11", club.Name, side, len(eleven))
	}

	ts := &TeamSimulationState{
		Club:   club,
		Side:   side,
		Tactic: club.Tactic,
		Lineup: make([]*MatchPlayer, 0, len(eleven)),
	}
	hasKeeper := false
	for _, p := range eleven {
		if p == nil || p.Attributes.Overall == 0 {
			return nil, fmt.Errorf("%s (%s): lineup contains a player without generated attributes", club.Name, side)
		}
		if p.Position == PosGK {
			hasKeeper = true
		}
		ts.Lineup = append(ts.Lineup, &MatchPlayer{Ref: p, Available: true})
	}
	if !hasKeeper {
		return nil, fmt.Errorf("%s (%s): lineup has no goalkeeper", club.Name, side)
	}
	if ts.Tactic == "" {
		ts.Tactic = TacticDirectPlay
	}
	return ts, nil
}

// OnPitchCount is how many players remain eligible to act.
func (ts *TeamSimulationState) OnPitchCount() int {
	n := 0
	for _, mp := range ts.Lineup {
		if mp.Available {
			n++
		}
	}
	return n
}

// Goalkeeper returns the on-pitch keeper, or nil after a keeper red card with
// no replacement (the outcome model then falls back to baseline opposition).
func (ts *TeamSimulationState) Goalkeeper() *MatchPlayer {
	for _, mp := range ts.Lineup {
		if mp.Available && mp.Ref.Position == PosGK {
			return mp
		}
	}
	return nil
}

// action weight rows: pass, dribble, shot, cross, foul. Shots are implausible
// outside the attacking third and get no weight there.
var (
	actionSet            = []EventType{EventPass, EventDribble, EventShot, EventCross, EventFoul}
	defensiveThirdRow    = []float64{58, 18, 0, 2, 10}
	middleThirdRow       = []float64{50, 22, 0, 8, 10}
	attackingThirdRow    = []float64{26, 15, 30, 18, 9}
	attackingBoxShotBias = 1.6
)

// chooseAction picks what the team attempts next, weighted by zone and
// tactical tendency. A side trailing late shifts weight towards shots and
// crosses (risk-taking under pressure).
func (ts *TeamSimulationState) chooseAction(rng *rand.Rand, pos PitchPosition, scoreDiff int, remaining time.Duration) EventType {
	var row []float64
	switch {
	case pos.IsDefensiveThird():
		row = defensiveThirdRow
	case pos.IsAttackingThird():
		row = attackingThirdRow
	default:
		row = middleThirdRow
	}

	weights := make([]float64, len(row))
	copy(weights, row)

	switch ts.Tactic {
	case TacticTikiTaka:
		weights[0] *= 1.4
	case TacticCounterAttack:
		weights[1] *= 1.3
	case TacticDirectPlay:
		weights[2] *= 1.3
		weights[3] *= 1.2
	case TacticWingPlay:
		weights[3] *= 1.6
	case TacticPressing:
		weights[1] *= 1.1
		weights[4] *= 1.2
	}

	if pos == ZoneOffBox {
		weights[2] *= attackingBoxShotBias
	}
	if scoreDiff < 0 && remaining < 15*time.Minute {
		weights[2] *= 1.5
		weights[3] *= 1.3
	}

	return actionSet[weightedIndex(rng, weights)]
}

// roleWeight scores how suitable a player is to perform the action from the
// given zone. Keepers only ever take goal kicks.
func roleWeight(position string, action EventType, pos PitchPosition) float64 {
	if position == PosGK {
		if action == EventGoalKick {
			return 10
		}
		return 0
	}

	var w float64
	switch action {
	case EventShot, EventPenaltyKick:
		switch position {
		case PosST:
			w = 5
		case PosLW, PosRW, PosCAM:
			w = 3
		case PosCM:
			w = 1.5
		default:
			w = 0.4
		}
	case EventCross:
		switch position {
		case PosLW, PosRW, PosLB, PosRB:
			w = 4
		case PosCM, PosCAM:
			w = 1.5
		default:
			w = 0.5
		}
	case EventDribble:
		switch position {
		case PosLW, PosRW, PosCAM, PosST:
			w = 3
		case PosCM, PosLB, PosRB:
			w = 1.5
		default:
			w = 0.7
		}
	default: // passes, free kicks and fouls drawn against the whole outfield
		switch position {
		case PosCM, PosCDM, PosCAM:
			w = 3
		default:
			w = 1.5
		}
	}

	// Zone bias: defenders carry the ball out of the back, forwards act in
	// the attacking third.
	switch {
	case pos.IsDefensiveThird():
		if position == PosCB || position == PosLB || position == PosRB || position == PosCDM {
			w *= 2
		}
	case pos.IsAttackingThird():
		if position == PosST || position == PosLW || position == PosRW || position == PosCAM {
			w *= 2
		}
	}
	return w
}

// chooseActor selects the player who attempts the action, weighted by role
// suitability. Returns nil when nobody eligible remains for the role, which
// the orchestrator degrades to a safe goal kick.
func (ts *TeamSimulationState) chooseActor(rng *rand.Rand, action EventType, pos PitchPosition) *MatchPlayer {
	weights := make([]float64, len(ts.Lineup))
	total := 0.0
	for i, mp := range ts.Lineup {
		if !mp.Available {
			continue
		}
		w := roleWeight(mp.Ref.Position, action, pos)
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil
	}
	return ts.Lineup[weightedIndex(rng, weights)]
}

// chooseDefender picks the opposing player contesting an action at the given
// zone (seen from the attacker's side, so the defender stands in the
// equivalent zone of his own half).
func (ts *TeamSimulationState) chooseDefender(rng *rand.Rand, attackerZone PitchPosition) *MatchPlayer {
	ownZone := attackerZone.Equivalent()
	weights := make([]float64, len(ts.Lineup))
	total := 0.0
	for i, mp := range ts.Lineup {
		if !mp.Available || mp.Ref.Position == PosGK {
			continue
		}
		w := 1.0
		switch mp.Ref.Position {
		case PosCB, PosLB, PosRB, PosCDM:
			w = 3
		case PosCM:
			w = 2
		}
		if ownZone.IsDefensiveThird() {
			switch mp.Ref.Position {
			case PosCB, PosLB, PosRB:
				w *= 2
			}
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil
	}
	return ts.Lineup[weightedIndex(rng, weights)]
}

// recordAttack folds a resolved event into the acting team's counters.
func (ts *TeamSimulationState) recordAttack(ev *SimulationEvent, actor *MatchPlayer) {
	switch ev.Type {
	case EventPass, EventFreeKick, EventGoalKick:
		if ev.Type == EventFreeKick {
			ts.Stats.FreeKicks++
		}
		switch ev.Outcome {
		case OutcomeShotGoal, OutcomeShotSaved, OutcomeShotWide:
			// a free kick struck at goal is not a pass attempt
		default:
			ts.Stats.PassesAttempted++
			actor.Stats.PassesAttempted++
		}
		switch ev.Outcome {
		case OutcomePassSuccess, OutcomeGoalKickSuccess:
			ts.Stats.PassesCompleted++
			actor.Stats.PassesCompleted++
		case OutcomePassOffside:
			ts.Stats.Offsides++
		}
	case EventCross, EventCornerKick:
		ts.Stats.Crosses++
		if ev.Type == EventCornerKick {
			ts.Stats.Corners++
		}
	case EventShot, EventPenaltyKick:
		ts.Stats.Shots++
		actor.Stats.Shots++
		switch ev.Outcome {
		case OutcomeShotGoal, OutcomeShotSaved:
			ts.Stats.ShotsOnTarget++
			actor.Stats.ShotsOnTarget++
		}
	}

	// Free kicks resolved as direct shots also count as attempts on goal.
	if ev.Type == EventFreeKick {
		switch ev.Outcome {
		case OutcomeShotGoal, OutcomeShotSaved:
			ts.Stats.Shots++
			ts.Stats.ShotsOnTarget++
			actor.Stats.Shots++
			actor.Stats.ShotsOnTarget++
		case OutcomeShotWide:
			ts.Stats.Shots++
			actor.Stats.Shots++
		}
	}

	if ev.Outcome == OutcomeShotGoal {
		ts.Stats.Goals++
		actor.Stats.Goals++
	}
}

// recordDefense folds the same event into the defending team's counters:
// interceptions, tackles, saves, and discipline for fouls the defender
// committed.
func (ts *TeamSimulationState) recordDefense(ev *SimulationEvent, defender, keeper *MatchPlayer) {
	switch ev.Outcome {
	case OutcomePassIntercept, OutcomeCrossIntercept:
		if defender != nil {
			defender.Stats.Interceptions++
		}
	case OutcomeDribbleFail:
		if defender != nil {
			defender.Stats.Tackles++
		}
	case OutcomeShotSaved:
		if keeper != nil {
			keeper.Stats.Saves++
		}
	case OutcomeFoulFreeKick, OutcomeFoulYellow, OutcomeFoulRed, OutcomeFoulPenalty:
		ts.Stats.FoulsConceded++
		if defender != nil {
			defender.Stats.FoulsCommitted++
		}
		switch ev.Outcome {
		case OutcomeFoulYellow:
			ts.Stats.YellowCards++
			if defender != nil {
				defender.Stats.YellowCards++
				if defender.Stats.YellowCards >= 2 {
					ts.sendOff(defender)
				}
			}
		case OutcomeFoulRed:
			ts.Stats.RedCards++
			if defender != nil {
				defender.Stats.RedCards++
				ts.sendOff(defender)
			}
		}
	}
}

func (ts *TeamSimulationState) sendOff(mp *MatchPlayer) {
	if mp.SentOff {
		return
	}
	mp.SentOff = true
	mp.Available = false
}

// addPossession credits playing time to this side. Called once per event by
// the orchestrator with the event's full duration.
func (ts *TeamSimulationState) addPossession(d time.Duration) {
	ts.Stats.Possession += d
}

// drainFatigue ages every on-pitch player by the event duration; low-stamina
// players tire faster, and the acting player pays a small surcharge.
func (ts *TeamSimulationState) drainFatigue(d time.Duration, actor *MatchPlayer) {
	seconds := d.Seconds()
	for _, mp := range ts.Lineup {
		if !mp.Available {
			continue
		}
		rate := (1.05 - float64(mp.Ref.Attributes.Stamina)/100) * 0.00012
		mp.Fatigue += seconds * rate
		if mp == actor {
			mp.Fatigue += 0.0015
		}
		if mp.Fatigue > 1 {
			mp.Fatigue = 1
		}
	}
}

// celebrate and concede shift morale after a goal.
func (ts *TeamSimulationState) celebrateGoal(scorer *MatchPlayer) {
	for _, mp := range ts.Lineup {
		mp.Morale = clampMorale(mp.Morale + 0.15)
	}
	if scorer != nil {
		scorer.Morale = clampMorale(scorer.Morale + 0.25)
	}
}

func (ts *TeamSimulationState) concedeGoal() {
	for _, mp := range ts.Lineup {
		mp.Morale = clampMorale(mp.Morale - 0.12)
	}
}

func clampMorale(m float64) float64 {
	if m < -1 {
		return -1
	}
	if m > 1 {
		return 1
	}
	return m
}

// chooseReceiver picks a teammate as the intended target of a pass or cross.
func (ts *TeamSimulationState) chooseReceiver(rng *rand.Rand, actor *MatchPlayer, zone PitchPosition) *MatchPlayer {
	weights := make([]float64, len(ts.Lineup))
	total := 0.0
	for i, mp := range ts.Lineup {
		if !mp.Available || mp == actor || mp.Ref.Position == PosGK {
			continue
		}
		w := 1.0
		if zone.IsAttackingThird() {
			switch mp.Ref.Position {
			case PosST, PosLW, PosRW, PosCAM:
				w = 3
			}
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil
	}
	return ts.Lineup[weightedIndex(rng, weights)]
}
