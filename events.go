package main

import (
	"fmt"
	"math/rand"
	"time"
)

// EventType enumerates every discrete occurrence the engine can produce.
// Kickoff, break and full-time entries are clock markers emitted by the
// orchestrator itself; the rest are playable actions resolved against player
// attributes.
type EventType int

const (
	EventPass EventType = iota
	EventDribble
	EventShot
	EventCross
	EventFoul
	EventFreeKick
	EventCornerKick
	EventGoalKick
	EventPenaltyKick
	EventKickoff
	EventBreak
	EventFullTime
)

var eventTypeNames = map[EventType]string{
	EventPass:        "PASS",
	EventDribble:     "DRIBBLE",
	EventShot:        "SHOT",
	EventCross:       "CROSS",
	EventFoul:        "FOUL",
	EventFreeKick:    "FREE_KICK",
	EventCornerKick:  "CORNER_KICK",
	EventGoalKick:    "GOAL_KICK",
	EventPenaltyKick: "PENALTY_KICK",
	EventKickoff:     "KICKOFF",
	EventBreak:       "BREAK",
	EventFullTime:    "FULL_TIME",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// EventOutcome is the resolved result of an event. Each outcome belongs to
// exactly one family and is only valid for the event types listed in
// validOutcomes below.
type EventOutcome int

const (
	OutcomeNone EventOutcome = iota
	OutcomePassSuccess
	OutcomePassMiss
	OutcomePassIntercept
	OutcomePassOffside
	OutcomeDribbleSuccess
	OutcomeDribbleFail
	OutcomeShotGoal
	OutcomeShotSaved
	OutcomeShotWide
	OutcomeShotBlocked
	OutcomeCrossSuccess
	OutcomeCrossMiss
	OutcomeCrossIntercept
	OutcomeFoulFreeKick
	OutcomeFoulYellow
	OutcomeFoulRed
	OutcomeFoulPenalty
	OutcomeGoalKickSuccess
	OutcomeGoalKickMiss
)

var eventOutcomeNames = map[EventOutcome]string{
	OutcomeNone:            "NONE",
	OutcomePassSuccess:     "PASS_SUCCESS",
	OutcomePassMiss:        "PASS_MISS",
	OutcomePassIntercept:   "PASS_INTERCEPT",
	OutcomePassOffside:     "PASS_OFFSIDE",
	OutcomeDribbleSuccess:  "DRIBBLE_SUCCESS",
	OutcomeDribbleFail:     "DRIBBLE_FAIL",
	OutcomeShotGoal:        "GOAL",
	OutcomeShotSaved:       "SHOT_SAVED",
	OutcomeShotWide:        "SHOT_WIDE",
	OutcomeShotBlocked:     "SHOT_BLOCKED",
	OutcomeCrossSuccess:    "CROSS_SUCCESS",
	OutcomeCrossMiss:       "CROSS_MISS",
	OutcomeCrossIntercept:  "CROSS_INTERCEPT",
	OutcomeFoulFreeKick:    "FOUL_FREE_KICK",
	OutcomeFoulYellow:      "FOUL_YELLOW_CARD",
	OutcomeFoulRed:         "FOUL_RED_CARD",
	OutcomeFoulPenalty:     "FOUL_PENALTY",
	OutcomeGoalKickSuccess: "GOAL_KICK_SUCCESS",
	OutcomeGoalKickMiss:    "GOAL_KICK_MISS",
}

func (o EventOutcome) String() string {
	if name, ok := eventOutcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// validOutcomes fixes the outcome set per event type. A pass can never be
// saved, a shot can never be offside. Free kicks carry both families because
// a set piece can be played short or struck directly at goal.
var validOutcomes = map[EventType][]EventOutcome{
	EventPass:        {OutcomePassSuccess, OutcomePassMiss, OutcomePassIntercept, OutcomePassOffside},
	EventDribble:     {OutcomeDribbleSuccess, OutcomeDribbleFail},
	EventShot:        {OutcomeShotGoal, OutcomeShotSaved, OutcomeShotWide, OutcomeShotBlocked},
	EventCross:       {OutcomeCrossSuccess, OutcomeCrossMiss, OutcomeCrossIntercept},
	EventFoul:        {OutcomeFoulFreeKick, OutcomeFoulYellow, OutcomeFoulRed, OutcomeFoulPenalty},
	EventFreeKick:    {OutcomePassSuccess, OutcomePassMiss, OutcomePassIntercept, OutcomeShotGoal, OutcomeShotSaved, OutcomeShotWide},
	EventCornerKick:  {OutcomeCrossSuccess, OutcomeCrossMiss, OutcomeCrossIntercept},
	EventGoalKick:    {OutcomeGoalKickSuccess, OutcomeGoalKickMiss},
	EventPenaltyKick: {OutcomeShotGoal, OutcomeShotSaved, OutcomeShotWide},
	EventKickoff:     {OutcomeNone},
	EventBreak:       {OutcomeNone},
	EventFullTime:    {OutcomeNone},
}

// OutcomeValidFor reports whether the outcome belongs to the event type's
// outcome set.
func OutcomeValidFor(t EventType, o EventOutcome) bool {
	for _, valid := range validOutcomes[t] {
		if valid == o {
			return true
		}
	}
	return false
}

// retainsPossession is the possession policy table: whether the acting team
// keeps the ball after the given outcome. Goals hand the kickoff to the
// conceding side, saves and wide shots restart with the opposition keeper,
// blocked shots stay alive for a corner, and every foul outcome keeps the
// ball with the fouled (acting) team.
var retainsPossession = map[EventOutcome]bool{
	OutcomeNone:            true,
	OutcomePassSuccess:     true,
	OutcomePassMiss:        false,
	OutcomePassIntercept:   false,
	OutcomePassOffside:     false,
	OutcomeDribbleSuccess:  true,
	OutcomeDribbleFail:     false,
	OutcomeShotGoal:        false,
	OutcomeShotSaved:       false,
	OutcomeShotWide:        false,
	OutcomeShotBlocked:     true,
	OutcomeCrossSuccess:    true,
	OutcomeCrossMiss:       false,
	OutcomeCrossIntercept:  false,
	OutcomeFoulFreeKick:    true,
	OutcomeFoulYellow:      true,
	OutcomeFoulRed:         true,
	OutcomeFoulPenalty:     true,
	OutcomeGoalKickSuccess: true,
	OutcomeGoalKickMiss:    false,
}

// restartAfter maps outcomes that force a dead-ball restart to the event type
// the next tick must produce. The restart belongs to whichever team holds
// possession after the policy table above is applied.
var restartAfter = map[EventOutcome]EventType{
	OutcomeShotBlocked:  EventCornerKick,
	OutcomeShotSaved:    EventGoalKick,
	OutcomeShotWide:     EventGoalKick,
	OutcomePassOffside:  EventFreeKick,
	OutcomeFoulFreeKick: EventFreeKick,
	OutcomeFoulYellow:   EventFreeKick,
	OutcomeFoulRed:      EventFreeKick,
	OutcomeFoulPenalty:  EventPenaltyKick,
}

// eventDurations bounds the simulated seconds a single event may consume.
var eventDurations = map[EventType]struct{ min, max time.Duration }{
	EventPass:        {3 * time.Second, 15 * time.Second},
	EventDribble:     {4 * time.Second, 12 * time.Second},
	EventShot:        {3 * time.Second, 10 * time.Second},
	EventCross:       {4 * time.Second, 15 * time.Second},
	EventFoul:        {15 * time.Second, 40 * time.Second},
	EventFreeKick:    {20 * time.Second, 60 * time.Second},
	EventCornerKick:  {20 * time.Second, 45 * time.Second},
	EventGoalKick:    {15 * time.Second, 30 * time.Second},
	EventPenaltyKick: {30 * time.Second, 90 * time.Second},
}

// MaxEventDuration returns the per-type upper bound (zero for markers).
func MaxEventDuration(t EventType) time.Duration {
	return eventDurations[t].max
}

// SimulationEvent is one resolved match occurrence. It is immutable once the
// orchestrator appends it to the event log and owns a value snapshot of the
// game state taken before the event ran.
type SimulationEvent struct {
	Seq     int          `json:"seq"`
	Type    EventType    `json:"-"`
	Outcome EventOutcome `json:"-"`
	// State is the game state at the moment the event began.
	State GameState `json:"-"`
	Side  TeamSide  `json:"-"`
	// Attacker is the acting player; nil on clock markers.
	Attacker *Player `json:"-"`
	// Defender is the opposing player contesting the action; nil when the
	// action was unopposed (set pieces, markers).
	Defender *Player `json:"-"`
	// Receiver is the intended target of passes and crosses.
	Receiver    *Player       `json:"-"`
	EndPosition PitchPosition `json:"-"`
	Duration    time.Duration `json:"-"`
	Commentary  string        `json:"commentary"`
}

// probability clamping: no action is ever certain or impossible, so repeated
// simulations always keep some variance.
const (
	minProbability = 0.01
	maxProbability = 0.99

	// baselineOpposition stands in for the defender rating on unopposed
	// actions, keeping probabilities comparable with contested ones.
	baselineOpposition = 50.0
)

func clampProbability(p float64) float64 {
	if p < minProbability {
		return minProbability
	}
	if p > maxProbability {
		return maxProbability
	}
	return p
}

// weightedIndex draws an index from the weights slice. Negative weights count
// as zero; a degenerate all-zero slice falls back to the first entry.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}

// eventContext carries everything the outcome model needs to resolve one
// action: the actors, the state snapshot and the match situation modifiers.
type eventContext struct {
	Type     EventType
	State    GameState
	Attacker *MatchPlayer
	// Defender is nil for unopposed actions; resolution then substitutes
	// baselineOpposition for the defensive term.
	Defender *MatchPlayer
	// Keeper is the opposing goalkeeper, consulted on shots.
	Keeper *MatchPlayer
	Tactic string
	// ScoreDiff is acting team goals minus opponent goals.
	ScoreDiff int
	// Remaining is the playing time left in the current period.
	Remaining time.Duration
}

// effectiveSkill folds the per-match accumulators into a raw attribute:
// fatigue erodes up to a quarter of the skill, morale swings it a few points
// either way.
func effectiveSkill(raw int, mp *MatchPlayer) float64 {
	v := float64(raw)
	if mp != nil {
		v *= 1 - 0.25*mp.Fatigue
		v *= 1 + 0.05*mp.Morale
	}
	return v
}

// pressureFactor nudges success probability down for a side chasing the game
// in the closing minutes; rushed actions fail more often.
func pressureFactor(ctx eventContext) float64 {
	if ctx.ScoreDiff < 0 && ctx.Remaining < 15*time.Minute {
		return 0.95
	}
	return 1.0
}

func opposeSkill(ctx eventContext) float64 {
	if ctx.Defender == nil {
		return baselineOpposition
	}
	return effectiveSkill(ctx.Defender.Ref.Attributes.Defending, ctx.Defender)*0.7 +
		effectiveSkill(ctx.Defender.Ref.Attributes.Speed, ctx.Defender)*0.3
}

// zoneDelta weights by offensive tactic: how far forward a pass or carry is
// likely to travel. Index 0 maps to a two-zone retreat.
var tacticZoneWeights = map[string][]float64{
	TacticTikiTaka:      {0.8, 1.6, 1.2, 2.4, 1.2, 0.5, 0.3},
	TacticCounterAttack: {0.3, 0.6, 0.6, 1.2, 1.6, 1.8, 1.4},
	TacticDirectPlay:    {0.3, 0.7, 0.5, 1.2, 1.5, 1.8, 1.6},
	TacticWingPlay:      {0.5, 1.0, 0.8, 1.6, 1.6, 1.2, 0.8},
	TacticPressing:      {0.5, 1.0, 0.9, 1.8, 1.5, 1.0, 0.6},
}

// targetZone draws where an action aims to put the ball, biased forward
// according to the team's tactic.
func targetZone(rng *rand.Rand, start PitchPosition, tactic string) PitchPosition {
	weights, ok := tacticZoneWeights[tactic]
	if !ok {
		weights = tacticZoneWeights[TacticDirectPlay]
	}
	delta := weightedIndex(rng, weights) - 2 // deltas -2..+4
	end := int(start) + delta
	if end < 0 {
		end = 0
	}
	if end >= zoneCount {
		end = zoneCount - 1
	}
	return PitchPosition(end)
}

// resolveEvent runs the outcome model for one playable action and returns the
// outcome together with the zone the ball ends up in (still from the acting
// team's point of view). All randomness flows through rng.
func resolveEvent(rng *rand.Rand, ctx eventContext) (EventOutcome, PitchPosition) {
	switch ctx.Type {
	case EventPass:
		return resolvePass(rng, ctx, false)
	case EventDribble:
		return resolveDribble(rng, ctx)
	case EventShot:
		return resolveShot(rng, ctx, true)
	case EventCross, EventCornerKick:
		return resolveCross(rng, ctx)
	case EventFoul:
		return resolveFoul(rng, ctx)
	case EventFreeKick:
		return resolveFreeKick(rng, ctx)
	case EventGoalKick:
		return resolveGoalKick(rng, ctx)
	case EventPenaltyKick:
		return resolveShot(rng, ctx, false)
	}
	return OutcomeNone, ctx.State.Position
}

// resolvePass follows the classic shape: a primary miss/success draw scaled
// by pass distance, an interception draw when the ball does go astray, and an
// offside check on successful balls played into the attacking third. The
// free-kick variant is harder to misplace but uses a stiffer base term.
func resolvePass(rng *rand.Rand, ctx eventContext, setPiece bool) (EventOutcome, PitchPosition) {
	end := targetZone(rng, ctx.State.Position, ctx.Tactic)
	distance := int(end) - int(ctx.State.Position)
	if distance < 0 {
		distance = -distance
	}

	passing := effectiveSkill(ctx.Attacker.Ref.Attributes.Passing, ctx.Attacker)
	vision := effectiveSkill(ctx.Attacker.Ref.Attributes.Mentality, ctx.Attacker)

	base := 25.0
	if setPiece {
		base = 50.0
	}
	pMiss := clampProbability((base + 6*float64(distance)) / (100 + passing + vision) / pressureFactor(ctx))

	if rng.Float64() < pMiss {
		// The ball is loose: does the defender actually claim it?
		pIntercept := clampProbability(opposeSkill(ctx) / 200)
		if rng.Float64() < pIntercept {
			return OutcomePassIntercept, end
		}
		return OutcomePassMiss, end
	}

	if !setPiece && end > ctx.State.Position && end.IsAttackingThird() {
		pOffside := clampProbability(10 / (200 + passing + vision))
		if rng.Float64() < pOffside {
			return OutcomePassOffside, end
		}
	}
	return OutcomePassSuccess, end
}

func resolveDribble(rng *rand.Rand, ctx eventContext) (EventOutcome, PitchPosition) {
	end := targetZone(rng, ctx.State.Position, ctx.Tactic)
	if end < ctx.State.Position {
		end = ctx.State.Position // a carry never goes backwards
	}

	dribbling := effectiveSkill(ctx.Attacker.Ref.Attributes.Dribbling, ctx.Attacker)*0.7 +
		effectiveSkill(ctx.Attacker.Ref.Attributes.Speed, ctx.Attacker)*0.3
	pSuccess := clampProbability(dribbling / (dribbling + opposeSkill(ctx)) * pressureFactor(ctx))

	if rng.Float64() < pSuccess {
		return OutcomeDribbleSuccess, end
	}
	return OutcomeDribbleFail, ctx.State.Position
}

// resolveShot decides blocked (open play only), then on-target, then the duel
// with the keeper. Save probability grows strictly with the keeper's
// goalkeeping attribute, so better keepers concede measurably fewer goals.
func resolveShot(rng *rand.Rand, ctx eventContext, openPlay bool) (EventOutcome, PitchPosition) {
	shooting := effectiveSkill(ctx.Attacker.Ref.Attributes.Shooting, ctx.Attacker)
	composure := effectiveSkill(ctx.Attacker.Ref.Attributes.Mentality, ctx.Attacker)

	if openPlay && ctx.Defender != nil {
		pBlocked := clampProbability(opposeSkill(ctx) / 400)
		if rng.Float64() < pBlocked {
			return OutcomeShotBlocked, ctx.State.Position
		}
	}

	// Distance penalty: shots from outside the box are harder to keep on
	// target.
	rangePenalty := 0.0
	if openPlay && ctx.State.Position != ZoneOffBox {
		rangePenalty = 25.0
	}
	pOnTarget := clampProbability((shooting + composure/2 - rangePenalty) / 160 * pressureFactor(ctx))
	if ctx.Type == EventPenaltyKick {
		pOnTarget = clampProbability(0.90 + composure/1000)
	}
	if rng.Float64() >= pOnTarget {
		return OutcomeShotWide, ctx.State.Position
	}

	if rng.Float64() < saveProbability(ctx.Keeper, shooting, ctx.Type == EventPenaltyKick) {
		return OutcomeShotSaved, ctx.State.Position
	}
	return OutcomeShotGoal, ctx.State.Position
}

// saveProbability is monotonically non-decreasing in the keeper's goalkeeping
// attribute. A missing keeper degrades to the baseline opposition strength.
func saveProbability(keeper *MatchPlayer, shooting float64, penalty bool) float64 {
	keeping := baselineOpposition
	if keeper != nil {
		keeping = effectiveSkill(keeper.Ref.Attributes.Goalkeeping, keeper)*0.8 +
			effectiveSkill(keeper.Ref.Attributes.Mentality, keeper)*0.2
	}
	p := keeping / (keeping + shooting)
	if penalty {
		p *= 0.35 // even elite keepers save few well-struck penalties
	}
	return clampProbability(p)
}

func resolveCross(rng *rand.Rand, ctx eventContext) (EventOutcome, PitchPosition) {
	end := ZoneOffBox
	crossing := effectiveSkill(ctx.Attacker.Ref.Attributes.Passing, ctx.Attacker)*0.6 +
		effectiveSkill(ctx.Attacker.Ref.Attributes.Speed, ctx.Attacker)*0.4

	pMiss := clampProbability((35 + opposeSkill(ctx)/2) / (100 + crossing) / pressureFactor(ctx))
	if rng.Float64() < pMiss {
		pIntercept := clampProbability(opposeSkill(ctx) / 180)
		if rng.Float64() < pIntercept {
			return OutcomeCrossIntercept, end
		}
		return OutcomeCrossMiss, end
	}
	return OutcomeCrossSuccess, end
}

// resolveFoul grades the defender's challenge. Inside the attacking box the
// foul always concedes a penalty; elsewhere the card severity scales with the
// fouler's physicality.
func resolveFoul(rng *rand.Rand, ctx eventContext) (EventOutcome, PitchPosition) {
	if ctx.State.Position == ZoneOffBox {
		return OutcomeFoulPenalty, ctx.State.Position
	}

	aggression := baselineOpposition
	if ctx.Defender != nil {
		aggression = float64(ctx.Defender.Ref.Attributes.Physicality)
	}
	pRed := clampProbability(0.02 + aggression/4000)
	pYellow := clampProbability(0.20 + aggression/400)

	r := rng.Float64()
	switch {
	case r < pRed:
		return OutcomeFoulRed, ctx.State.Position
	case r < pRed+pYellow:
		return OutcomeFoulYellow, ctx.State.Position
	default:
		return OutcomeFoulFreeKick, ctx.State.Position
	}
}

// resolveFreeKick is struck directly at goal from the attacking third and
// otherwise played as a set-piece pass.
func resolveFreeKick(rng *rand.Rand, ctx eventContext) (EventOutcome, PitchPosition) {
	if ctx.State.Position.IsAttackingThird() {
		return resolveShot(rng, ctx, false)
	}
	return resolvePass(rng, ctx, true)
}

func resolveGoalKick(rng *rand.Rand, ctx eventContext) (EventOutcome, PitchPosition) {
	end := PitchPosition(int(ZoneDefMidfieldCenter) + rng.Intn(int(ZoneMidfieldRight-ZoneDefMidfieldCenter)+1))
	kicking := effectiveSkill(ctx.Attacker.Ref.Attributes.Passing, ctx.Attacker)
	pSuccess := clampProbability(kicking / (kicking + baselineOpposition))
	if rng.Float64() < pSuccess {
		return OutcomeGoalKickSuccess, end
	}
	return OutcomeGoalKickMiss, end
}

// drawDuration picks the simulated seconds the event consumes, within the
// per-type bounds. Markers take no time.
func drawDuration(rng *rand.Rand, t EventType) time.Duration {
	bounds, ok := eventDurations[t]
	if !ok {
		return 0
	}
	spread := int(bounds.max/time.Second) - int(bounds.min/time.Second)
	return bounds.min + time.Duration(rng.Intn(spread+1))*time.Second
}
