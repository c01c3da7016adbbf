package main

import (
	"math/rand"
	"testing"
	"time"
)

func testPlayer(attrs PlayerAttributes, position string) *MatchPlayer {
	if attrs.Overall == 0 {
		attrs.Overall = 60
	}
	return &MatchPlayer{
		Ref:       &Player{ID: 1, Name: "Test Player", Position: position, Attributes: attrs},
		Available: true,
	}
}

func testContext(eventType EventType, pos PitchPosition) eventContext {
	return eventContext{
		Type:     eventType,
		State:    GameState{Status: StatusFirstHalf, Position: pos},
		Attacker: testPlayer(PlayerAttributes{Speed: 70, Shooting: 70, Passing: 70, Dribbling: 70, Mentality: 70, Stamina: 80}, PosCM),
		Defender: testPlayer(PlayerAttributes{Speed: 65, Defending: 70, Physicality: 65, Mentality: 60, Stamina: 80}, PosCB),
		Keeper:   testPlayer(PlayerAttributes{Goalkeeping: 75, Defending: 60, Physicality: 70, Mentality: 75, Stamina: 80}, PosGK),
		Tactic:   TacticDirectPlay,
	}
}

func TestClampProbability(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0.01},
		{0, 0.01},
		{0.005, 0.01},
		{0.5, 0.5},
		{0.995, 0.99},
		{2, 0.99},
	}
	for _, tc := range cases {
		if got := clampProbability(tc.in); got != tc.want {
			t.Errorf("clampProbability(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestResolveEventOutcomesAlwaysValid(t *testing.T) {
	playable := []EventType{
		EventPass, EventDribble, EventShot, EventCross, EventFoul,
		EventFreeKick, EventCornerKick, EventGoalKick, EventPenaltyKick,
	}
	positions := []PitchPosition{ZoneDefBox, ZoneDefMidfieldCenter, ZoneMidfieldCenter, ZoneOffMidfieldCenter, ZoneOffBox}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, eventType := range playable {
			for _, pos := range positions {
				ctx := testContext(eventType, pos)
				outcome, end := resolveEvent(rng, ctx)
				if !OutcomeValidFor(eventType, outcome) {
					t.Fatalf("seed %d: %v at %v resolved to invalid outcome %v", seed, eventType, pos, outcome)
				}
				if end < 0 || int(end) >= zoneCount {
					t.Fatalf("seed %d: %v produced out-of-range end zone %d", seed, eventType, int(end))
				}
			}
		}
	}
}

func TestResolveEventWithNilDefender(t *testing.T) {
	// A missing defender must fall back to baseline opposition, never panic,
	// and still produce an outcome from the valid set.
	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, eventType := range []EventType{EventPass, EventDribble, EventShot, EventCross} {
			ctx := testContext(eventType, ZoneOffMidfieldCenter)
			ctx.Defender = nil
			outcome, _ := resolveEvent(rng, ctx)
			if !OutcomeValidFor(eventType, outcome) {
				t.Fatalf("nil defender: %v resolved to invalid outcome %v", eventType, outcome)
			}
		}
	}
}

func TestResolveEventWithNilKeeper(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		ctx := testContext(EventShot, ZoneOffBox)
		ctx.Keeper = nil
		outcome, _ := resolveEvent(rng, ctx)
		if !OutcomeValidFor(EventShot, outcome) {
			t.Fatalf("nil keeper: shot resolved to invalid outcome %v", outcome)
		}
	}
}

func TestSaveProbabilityMonotonicInGoalkeeping(t *testing.T) {
	shooting := 75.0
	prev := -1.0
	for keeping := 1; keeping <= 100; keeping++ {
		keeper := testPlayer(PlayerAttributes{Goalkeeping: keeping, Mentality: 70, Stamina: 80}, PosGK)
		p := saveProbability(keeper, shooting, false)
		if p < prev {
			t.Fatalf("save probability dropped from %v to %v at goalkeeping %d", prev, p, keeping)
		}
		if p < minProbability || p > maxProbability {
			t.Fatalf("save probability %v outside clamp at goalkeeping %d", p, keeping)
		}
		prev = p
	}

	// Penalties are harder to save at every skill level.
	keeper := testPlayer(PlayerAttributes{Goalkeeping: 90, Mentality: 80, Stamina: 80}, PosGK)
	if saveProbability(keeper, shooting, true) >= saveProbability(keeper, shooting, false) {
		t.Error("penalty save probability should be below open-play save probability")
	}
}

func TestFoulInBoxIsAlwaysPenalty(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		outcome, _ := resolveFoul(rng, testContext(EventFoul, ZoneOffBox))
		if outcome != OutcomeFoulPenalty {
			t.Fatalf("foul in the box resolved to %v, want penalty", outcome)
		}
	}
}

func TestDribbleNeverMovesBackwards(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		start := ZoneMidfieldCenter
		ctx := testContext(EventDribble, start)
		outcome, end := resolveDribble(rng, ctx)
		if outcome == OutcomeDribbleSuccess && end < start {
			t.Fatalf("successful dribble moved backwards from %v to %v", start, end)
		}
		if outcome == OutcomeDribbleFail && end != start {
			t.Fatalf("failed dribble moved the ball from %v to %v", start, end)
		}
	}
}

func TestCrossAlwaysTargetsBox(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		_, end := resolveCross(rng, testContext(EventCross, ZoneOffMidfieldLeft))
		if end != ZoneOffBox {
			t.Fatalf("cross ended at %v, want opposition box", end)
		}
	}
}

func TestDrawDurationWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for eventType, bounds := range eventDurations {
		for i := 0; i < 200; i++ {
			d := drawDuration(rng, eventType)
			if d < bounds.min || d > bounds.max {
				t.Fatalf("%v duration %v outside [%v, %v]", eventType, d, bounds.min, bounds.max)
			}
		}
	}
	for _, marker := range []EventType{EventKickoff, EventBreak, EventFullTime} {
		if d := drawDuration(rng, marker); d != 0 {
			t.Errorf("marker %v drew duration %v, want 0", marker, d)
		}
	}
}

func TestMarkersOnlyCarryNoOutcome(t *testing.T) {
	for _, marker := range []EventType{EventKickoff, EventBreak, EventFullTime} {
		if !OutcomeValidFor(marker, OutcomeNone) {
			t.Errorf("%v should accept the empty outcome", marker)
		}
		if OutcomeValidFor(marker, OutcomeShotGoal) {
			t.Errorf("%v should reject playable outcomes", marker)
		}
	}
}

func TestRestartTableTargetsDeadBallEvents(t *testing.T) {
	cases := map[EventOutcome]EventType{
		OutcomeShotBlocked:  EventCornerKick,
		OutcomeShotSaved:    EventGoalKick,
		OutcomeShotWide:     EventGoalKick,
		OutcomePassOffside:  EventFreeKick,
		OutcomeFoulPenalty:  EventPenaltyKick,
		OutcomeFoulFreeKick: EventFreeKick,
	}
	for outcome, want := range cases {
		if got := restartAfter[outcome]; got != want {
			t.Errorf("restart after %v = %v, want %v", outcome, got, want)
		}
	}
	if _, ok := restartAfter[OutcomePassSuccess]; ok {
		t.Error("successful pass must not force a restart")
	}
}

func TestPossessionPolicyCoversEveryOutcome(t *testing.T) {
	for _, outcomes := range validOutcomes {
		for _, outcome := range outcomes {
			if _, ok := retainsPossession[outcome]; !ok {
				t.Errorf("possession policy missing entry for %v", outcome)
			}
		}
	}
	// Fouls keep the ball with the fouled side; turnover outcomes flip it.
	if !retainsPossession[OutcomeFoulRed] {
		t.Error("a foul suffered must retain possession")
	}
	if retainsPossession[OutcomePassIntercept] {
		t.Error("an interception must flip possession")
	}
}

func TestEffectiveSkillFatigueAndMorale(t *testing.T) {
	mp := testPlayer(PlayerAttributes{Passing: 80, Stamina: 80}, PosCM)

	fresh := effectiveSkill(80, mp)
	mp.Fatigue = 1
	exhausted := effectiveSkill(80, mp)
	if exhausted >= fresh {
		t.Errorf("fatigue should erode skill: fresh %v, exhausted %v", fresh, exhausted)
	}
	if exhausted < 80*0.74 {
		t.Errorf("fatigue erosion too deep: %v", exhausted)
	}

	mp.Fatigue = 0
	mp.Morale = 1
	if effectiveSkill(80, mp) <= fresh {
		t.Error("high morale should lift skill")
	}
}

func TestWeightedIndexRespectsZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	weights := []float64{0, 5, 0, 5, 0}
	for i := 0; i < 500; i++ {
		idx := weightedIndex(rng, weights)
		if weights[idx] == 0 {
			t.Fatalf("weightedIndex picked zero-weight entry %d", idx)
		}
	}
}

func TestPressureFactorOnlyWhenTrailingLate(t *testing.T) {
	ctx := testContext(EventPass, ZoneMidfieldCenter)
	ctx.ScoreDiff = -1
	ctx.Remaining = 10 * time.Minute
	if pressureFactor(ctx) >= 1 {
		t.Error("trailing late should apply pressure")
	}
	ctx.Remaining = 30 * time.Minute
	if pressureFactor(ctx) != 1 {
		t.Error("trailing early should not apply pressure")
	}
	ctx.ScoreDiff = 1
	ctx.Remaining = 5 * time.Minute
	if pressureFactor(ctx) != 1 {
		t.Error("leading late should not apply pressure")
	}
}
