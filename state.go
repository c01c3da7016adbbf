package main

import (
	"fmt"
	"time"
)

// PitchPosition is the coarse zone the ball currently occupies, always seen
// from the attacking team's point of view: Def* zones are in front of its own
// goal, Off* zones in front of the opponent's goal.
type PitchPosition int

const (
	ZoneDefBox PitchPosition = iota
	ZoneDefLeft
	ZoneDefRight
	ZoneDefMidfieldCenter
	ZoneDefMidfieldLeft
	ZoneDefMidfieldRight
	ZoneMidfieldLeft
	ZoneMidfieldCenter
	ZoneMidfieldRight
	ZoneOffMidfieldCenter
	ZoneOffMidfieldLeft
	ZoneOffMidfieldRight
	ZoneOffLeft
	ZoneOffRight
	ZoneOffBox

	zoneCount = int(ZoneOffBox) + 1
)

var zoneNames = [zoneCount]string{
	"own box", "own left flank", "own right flank",
	"deep midfield", "deep left midfield", "deep right midfield",
	"left midfield", "central midfield", "right midfield",
	"advanced midfield", "advanced left midfield", "advanced right midfield",
	"left attacking flank", "right attacking flank", "opposition box",
}

func (p PitchPosition) String() string {
	if p < 0 || int(p) >= zoneCount {
		return fmt.Sprintf("zone(%d)", int(p))
	}
	return zoneNames[p]
}

// Equivalent returns the same physical spot on the pitch as seen by the other
// team. Used whenever possession changes hands: the interceptor's "own box"
// is the attacker's "opposition box".
func (p PitchPosition) Equivalent() PitchPosition {
	return ZoneOffBox - p
}

// IsDefensiveThird reports whether the zone sits in front of the attacking
// team's own goal.
func (p PitchPosition) IsDefensiveThird() bool {
	return p <= ZoneDefMidfieldRight
}

// IsAttackingThird reports whether the zone is close enough to the opposition
// goal for shots and crosses to be plausible.
func (p PitchPosition) IsAttackingThird() bool {
	return p >= ZoneOffMidfieldCenter
}

// MatchStatus is the phase of the match state machine. Transitions only ever
// move forward through this sequence; extra-time phases are skipped entirely
// unless the match configuration enables them and regulation ends level.
type MatchStatus int

const (
	StatusPreMatch MatchStatus = iota
	StatusFirstHalf
	StatusHalfTime
	StatusSecondHalf
	StatusExtraTimeFirstHalf
	StatusExtraTimeHalfTime
	StatusExtraTimeSecondHalf
	StatusFullTime
)

var statusNames = map[MatchStatus]string{
	StatusPreMatch:            "PRE_MATCH",
	StatusFirstHalf:           "FIRST_HALF",
	StatusHalfTime:            "HALFTIME",
	StatusSecondHalf:          "SECOND_HALF",
	StatusExtraTimeFirstHalf:  "ET_FIRST_HALF",
	StatusExtraTimeHalfTime:   "ET_HALFTIME",
	StatusExtraTimeSecondHalf: "ET_SECOND_HALF",
	StatusFullTime:            "FULL_TIME",
}

func (s MatchStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// IsPlaying reports whether the clock is running in this phase.
func (s MatchStatus) IsPlaying() bool {
	switch s {
	case StatusFirstHalf, StatusSecondHalf, StatusExtraTimeFirstHalf, StatusExtraTimeSecondHalf:
		return true
	}
	return false
}

// GameState is the instantaneous condition of a match. It is owned and
// mutated exclusively by the LiveGame orchestrator; every SimulationEvent
// carries a value copy taken at the moment the event began.
type GameState struct {
	// Elapsed is the match clock. It runs from zero, is pinned to the
	// nominal boundary (45m, 90m, 105m) whenever a new period kicks off and
	// never decreases within a period.
	Elapsed time.Duration
	Status  MatchStatus
	// Position is the ball zone from the attacking team's point of view.
	Position PitchPosition
	// InAdditionalTime is set once the current period has run past its
	// nominal length and is playing the referee's added minutes.
	InAdditionalTime      bool
	AdditionalTimeElapsed time.Duration
}

// Minute is the conventional 1-based display minute for commentary.
func (g GameState) Minute() int {
	return int(g.Elapsed/time.Minute) + 1
}
