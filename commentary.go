package main

import (
	"fmt"
	"math/rand"
	"strings"
)

// Commentary templates, one pool per outcome. Placeholders are substituted
// at render time: {player} is the acting player, {defender} the opposing
// player involved, {receiver} the intended target, {team} and {opponent}
// the club short names, {zone} the ball zone and {minute} the display minute.
var commentaryTemplates = map[EventOutcome][]string{
	OutcomePassSuccess: {
		"{player} finds {receiver} in the {zone}",
		"Neat ball from {player} to {receiver}",
		"{player} keeps it moving for {team}",
	},
	OutcomePassMiss: {
		"{player} overhits it and the ball runs away from {team}",
		"Loose pass from {player}, possession surrendered",
		"{player} can't pick out {receiver} this time",
	},
	OutcomePassIntercept: {
		"{defender} reads it! {opponent} break up the move",
		"Intercepted by {defender}, {opponent} turn it over",
		"{player}'s pass is cut out by {defender}",
	},
	OutcomePassOffside: {
		"The flag is up! {receiver} strayed offside",
		"{player} releases it too late, offside against {team}",
	},
	OutcomeDribbleSuccess: {
		"{player} glides past {defender}",
		"Lovely feet from {player}, into the {zone}",
		"{player} carries it forward for {team}",
	},
	OutcomeDribbleFail: {
		"{defender} stands firm and wins it off {player}",
		"{player} runs into traffic, {opponent} come away with it",
		"Strong challenge from {defender} halts {player}",
	},
	OutcomeShotGoal: {
		"GOAL! {player} finds the net for {team}! ({minute}')",
		"GOAL! A clinical finish from {player}! ({minute}')",
		"GOAL! {player} beats the keeper and {team} celebrate! ({minute}')",
	},
	OutcomeShotSaved: {
		"{player} forces a save, the keeper holds on for {opponent}",
		"Good stop! {player}'s effort is kept out",
		"{player} tests the goalkeeper but it's gathered",
	},
	OutcomeShotWide: {
		"{player} drags it wide of the post",
		"Off target! {player} can't keep it down",
		"{player} lets fly from the {zone} but misses",
	},
	OutcomeShotBlocked: {
		"Blocked! {defender} throws himself in the way",
		"{player}'s shot is charged down by {defender}, corner to {team}",
	},
	OutcomeCrossSuccess: {
		"{player} whips it into the box for {team}",
		"Dangerous delivery from {player}, {receiver} is waiting",
	},
	OutcomeCrossMiss: {
		"{player}'s cross sails over everyone",
		"Poor delivery from {player}, easily cleared",
	},
	OutcomeCrossIntercept: {
		"{defender} rises highest and heads it clear",
		"{player}'s cross is claimed by {opponent}",
	},
	OutcomeFoulFreeKick: {
		"{player} is brought down by {defender}, free kick to {team}",
		"Foul by {defender}, {team} have a set piece in the {zone}",
	},
	OutcomeFoulYellow: {
		"Yellow card! {defender} goes into the book for that one",
		"{defender} is cautioned after catching {player} late",
	},
	OutcomeFoulRed: {
		"RED CARD! {defender} is sent off and {opponent} are down to ten!",
		"Straight red for {defender}! A dreadful challenge on {player}",
	},
	OutcomeFoulPenalty: {
		"PENALTY to {team}! {defender} brings down {player} in the box!",
		"The referee points to the spot! {team} have a penalty",
	},
	OutcomeGoalKickSuccess: {
		"{player} restarts play with a goal kick for {team}",
		"Long kick from {player}, {team} look to build again",
	},
	OutcomeGoalKickMiss: {
		"{player}'s goal kick is won in the air by {opponent}",
		"The restart goes straight to {opponent}",
	},
}

// renderCommentary produces the broadcast line for a resolved event. The
// random pick goes through the match source so replays produce identical
// commentary.
func renderCommentary(rng *rand.Rand, ev *SimulationEvent, attacking, defending *TeamInfo) string {
	pool, ok := commentaryTemplates[ev.Outcome]
	if !ok || len(pool) == 0 {
		return fmt.Sprintf("%s by %s", ev.Type, attacking.ShortName)
	}
	line := pool[rng.Intn(len(pool))]

	replacer := strings.NewReplacer(
		"{player}", playerNameOr(ev.Attacker, attacking.ShortName),
		"{defender}", playerNameOr(ev.Defender, defending.ShortName),
		"{receiver}", playerNameOr(ev.Receiver, "a teammate"),
		"{team}", attacking.ShortName,
		"{opponent}", defending.ShortName,
		"{zone}", ev.EndPosition.String(),
		"{minute}", fmt.Sprintf("%d", ev.State.Minute()),
	)
	return replacer.Replace(line)
}

func playerNameOr(p *Player, fallback string) string {
	if p == nil {
		return fallback
	}
	return p.Name
}
