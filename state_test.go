package main

import (
	"testing"
	"time"
)

func TestZoneEquivalent(t *testing.T) {
	cases := []struct {
		zone PitchPosition
		want PitchPosition
	}{
		{ZoneDefBox, ZoneOffBox},
		{ZoneOffBox, ZoneDefBox},
		{ZoneMidfieldCenter, ZoneMidfieldCenter},
		{ZoneDefMidfieldCenter, ZoneOffMidfieldRight},
	}
	for _, tc := range cases {
		if got := tc.zone.Equivalent(); got != tc.want {
			t.Errorf("Equivalent(%v) = %v, want %v", tc.zone, got, tc.want)
		}
	}

	// Flipping twice always lands back on the original zone.
	for z := PitchPosition(0); int(z) < zoneCount; z++ {
		if got := z.Equivalent().Equivalent(); got != z {
			t.Errorf("double Equivalent of %v = %v", z, got)
		}
	}
}

func TestZoneThirds(t *testing.T) {
	for z := PitchPosition(0); int(z) < zoneCount; z++ {
		if z.IsDefensiveThird() && z.IsAttackingThird() {
			t.Errorf("zone %v claims both thirds", z)
		}
	}
	if !ZoneDefBox.IsDefensiveThird() {
		t.Error("own box should be defensive third")
	}
	if !ZoneOffBox.IsAttackingThird() {
		t.Error("opposition box should be attacking third")
	}
	if ZoneMidfieldCenter.IsDefensiveThird() || ZoneMidfieldCenter.IsAttackingThird() {
		t.Error("central midfield belongs to neither third")
	}

	// A defensive zone's equivalent is always attacking, and vice versa.
	for z := PitchPosition(0); int(z) < zoneCount; z++ {
		if z.IsDefensiveThird() && !z.Equivalent().IsAttackingThird() {
			t.Errorf("equivalent of defensive zone %v is not attacking", z)
		}
	}
}

func TestMatchStatusOrderAndNames(t *testing.T) {
	order := []MatchStatus{
		StatusPreMatch, StatusFirstHalf, StatusHalfTime, StatusSecondHalf,
		StatusExtraTimeFirstHalf, StatusExtraTimeHalfTime, StatusExtraTimeSecondHalf, StatusFullTime,
	}
	for i := 1; i < len(order); i++ {
		if order[i] <= order[i-1] {
			t.Errorf("status %v does not sort after %v", order[i], order[i-1])
		}
	}
	if StatusFirstHalf.String() != "FIRST_HALF" {
		t.Errorf("unexpected name %q", StatusFirstHalf.String())
	}
	if !StatusExtraTimeSecondHalf.IsPlaying() {
		t.Error("ET second half should count as playing")
	}
	if StatusHalfTime.IsPlaying() || StatusFullTime.IsPlaying() {
		t.Error("breaks must not count as playing")
	}
}

func TestGameStateMinute(t *testing.T) {
	g := GameState{Elapsed: 0}
	if g.Minute() != 1 {
		t.Errorf("minute at kickoff = %d, want 1", g.Minute())
	}
	g.Elapsed = 44*time.Minute + 59*time.Second
	if g.Minute() != 45 {
		t.Errorf("minute = %d, want 45", g.Minute())
	}
	g.Elapsed = 45 * time.Minute
	if g.Minute() != 46 {
		t.Errorf("minute = %d, want 46", g.Minute())
	}
}
