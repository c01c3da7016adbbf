package main

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRenderCommentarySubstitutesEveryPlaceholder(t *testing.T) {
	attacker := &Player{Name: "Arthur Pemberton"}
	defender := &Player{Name: "Corrado Vitelli"}
	receiver := &Player{Name: "Iker Salvatierra"}
	home := &TeamInfo{Name: "Harbourside Rovers", ShortName: "HBR"}
	away := &TeamInfo{Name: "Milltown Athletic", ShortName: "MIL"}

	rng := rand.New(rand.NewSource(5))
	for outcome, pool := range commentaryTemplates {
		for range pool {
			ev := &SimulationEvent{
				Type:        EventPass,
				Outcome:     outcome,
				State:       GameState{Status: StatusFirstHalf},
				Attacker:    attacker,
				Defender:    defender,
				Receiver:    receiver,
				EndPosition: ZoneMidfieldCenter,
			}
			line := renderCommentary(rng, ev, home, away)
			if line == "" {
				t.Fatalf("%v rendered empty commentary", outcome)
			}
			if strings.Contains(line, "{") || strings.Contains(line, "}") {
				t.Fatalf("%v left a placeholder unsubstituted: %q", outcome, line)
			}
		}
	}
}

func TestRenderCommentaryToleratesMissingPlayers(t *testing.T) {
	home := &TeamInfo{Name: "Harbourside Rovers", ShortName: "HBR"}
	away := &TeamInfo{Name: "Milltown Athletic", ShortName: "MIL"}
	rng := rand.New(rand.NewSource(5))

	for seed := 0; seed < 20; seed++ {
		ev := &SimulationEvent{
			Type:    EventGoalKick,
			Outcome: OutcomeGoalKickMiss,
			State:   GameState{Status: StatusSecondHalf},
		}
		line := renderCommentary(rng, ev, home, away)
		if line == "" || strings.Contains(line, "{") {
			t.Fatalf("nil players produced bad commentary %q", line)
		}
	}
}

func TestRenderCommentaryDeterministicPerSource(t *testing.T) {
	attacker := &Player{Name: "Dante Ferraresi"}
	home := &TeamInfo{Name: "Ferndale United", ShortName: "FER"}
	away := &TeamInfo{Name: "Port Calder FC", ShortName: "PCA"}

	render := func() []string {
		rng := rand.New(rand.NewSource(99))
		var out []string
		for i := 0; i < 50; i++ {
			ev := &SimulationEvent{
				Type:     EventShot,
				Outcome:  OutcomeShotGoal,
				State:    GameState{Status: StatusFirstHalf},
				Attacker: attacker,
			}
			out = append(out, renderCommentary(rng, ev, home, away))
		}
		return out
	}

	a, b := render(), render()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("line %d differs between identical sources", i)
		}
	}
}
