package main

import (
	"fmt"
	"math/rand"
)

// String constants shared across the squad generator and the simulation
const (
	// Positions
	PosGK  = "GK"
	PosCB  = "CB"
	PosLB  = "LB"
	PosRB  = "RB"
	PosCDM = "CDM"
	PosCM  = "CM"
	PosCAM = "CAM"
	PosLW  = "LW"
	PosRW  = "RW"
	PosST  = "ST"

	// Offensive tactics
	TacticTikiTaka      = "TIKI_TAKA"
	TacticCounterAttack = "COUNTER_ATTACK"
	TacticDirectPlay    = "DIRECT_PLAY"
	TacticWingPlay      = "WING_PLAY"
	TacticPressing      = "HIGH_PRESSING"

	// Nationalities used by the name pool
	NatEngland = "England"
	NatSpain   = "Spain"
	NatItaly   = "Italy"
	NatBrazil  = "Brazil"
)

var tactics = []string{TacticTikiTaka, TacticCounterAttack, TacticDirectPlay, TacticWingPlay, TacticPressing}

// PlayerAttributes is the numeric bundle every probability calculation in the
// match engine reads from. All values live on a 1-100 scale. The simulation
// never mutates attributes; fatigue and morale are tracked per match on
// MatchPlayer instead.
type PlayerAttributes struct {
	Speed       int `json:"speed"`
	Shooting    int `json:"shooting"`
	Passing     int `json:"passing"`
	Dribbling   int `json:"dribbling"`
	Defending   int `json:"defending"`
	Goalkeeping int `json:"goalkeeping"`
	Physicality int `json:"physicality"`
	Mentality   int `json:"mentality"`
	Stamina     int `json:"stamina"`
	Overall     int `json:"overall"`
}

type Player struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Position    string           `json:"position"`
	Number      int              `json:"number"`
	Age         int              `json:"age"`
	Nationality string           `json:"nationality"`
	TeamID      int              `json:"team_id"`
	Attributes  PlayerAttributes `json:"attributes"`
}

type TeamInfo struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	ShortName  string   `json:"short_name"`
	Stadium    string   `json:"stadium"`
	Founded    int      `json:"founded"`
	Manager    string   `json:"manager"`
	League     string   `json:"league"`
	Tactic     string   `json:"tactic"`
	Form       []string `json:"form"`
	FormPoints int      `json:"form_points"`
}

var teamData = []struct {
	ID        int
	Name      string
	ShortName string
	Stadium   string
	League    string
	Manager   string
	Founded   int
}{
	// First Division - 10 teams
	{1, "Harbourside Rovers", "HBR", "Quayside Park", LeagueFirstDivision, "Edwin Marsh", 1911},
	{2, "Milltown Athletic", "MIL", "Loomfield", LeagueFirstDivision, "Stefan Brandt", 1904},
	{3, "Ferndale United", "FER", "Bracken Lane", LeagueFirstDivision, "Tomás Aguirre", 1921},
	{4, "Port Calder FC", "PCA", "Anchor Ground", LeagueFirstDivision, "Douglas Wren", 1899},
	{5, "Kingsbridge City", "KGB", "Crown Meadow", LeagueFirstDivision, "Aldo Venturi", 1907},
	{6, "Redwick Wanderers", "RDW", "Foundry Road", LeagueFirstDivision, "Pavel Horák", 1915},
	{7, "Ashborough Town", "ASH", "Cinder Hill", LeagueFirstDivision, "Gareth Plummer", 1923},
	{8, "Silverlake FC", "SLK", "Mirror Bowl", LeagueFirstDivision, "Iñaki Bermejo", 1930},
	{9, "Northgate Albion", "NGA", "The Palisade", LeagueFirstDivision, "Cormac Deane", 1902},
	{10, "Easthaven FC", "EHV", "Seawall Stadium", LeagueFirstDivision, "Rolf Steiner", 1919},

	// Second Division - 10 teams
	{11, "Oakhurst County", "OAK", "Acorn Field", LeagueSecondDivision, "Benedikt Falk", 1926},
	{12, "Stonebridge FC", "STB", "Mason's Yard", LeagueSecondDivision, "Hugo Lindt", 1910},
	{13, "Wrenfield Rangers", "WRF", "Hedgerow Park", LeagueSecondDivision, "Otis Cartwright", 1933},
	{14, "Lakemoor United", "LKM", "Reedbank", LeagueSecondDivision, "Salvo Mancuso", 1908},
	{15, "Coalford Colliers", "CLF", "Pithead Ground", LeagueSecondDivision, "Wyn Prothero", 1897},
	{16, "Birchvale Swifts", "BVS", "Swift's Nest", LeagueSecondDivision, "Jonas Keller", 1928},
	{17, "Drayton Olympic", "DRY", "Laurel Circus", LeagueSecondDivision, "Ferenc Bodnar", 1912},
	{18, "Marsh End FC", "MSH", "Tidewater Lane", LeagueSecondDivision, "Clive Osgood", 1925},
	{19, "Hollowbrook Celtic", "HOL", "Dell Park", LeagueSecondDivision, "Eoin Gallagher", 1917},
	{20, "Westcliff Corinthians", "WCC", "Promenade Ground", LeagueSecondDivision, "Amos Whitfield", 1905},
}

var playerNamePool = []struct {
	Name        string
	Nationality string
}{
	{"Arthur Pemberton", NatEngland}, {"Joel Hardcastle", NatEngland}, {"Stanley Crewe", NatEngland},
	{"Reuben Ollerton", NatEngland}, {"Miles Fenwick", NatEngland}, {"Dominic Ashworth", NatEngland},
	{"Callum Tredwell", NatEngland}, {"Ewan Priestley", NatEngland}, {"Frederick Noakes", NatEngland},
	{"Iker Salvatierra", NatSpain}, {"Mateo Urdiales", NatSpain}, {"Gonzalo Riquelme", NatSpain},
	{"Adrián Cobos", NatSpain}, {"Pau Ferrándiz", NatSpain}, {"Nacho Villaplana", NatSpain},
	{"Raúl Esparza", NatSpain}, {"Sergi Monreal", NatSpain}, {"Unai Bergara", NatSpain},
	{"Tiziano Scalabrini", NatItaly}, {"Ennio Farnese", NatItaly}, {"Corrado Vitelli", NatItaly},
	{"Gianmarco Teodori", NatItaly}, {"Ottavio Lucarelli", NatItaly}, {"Silvano Borgese", NatItaly},
	{"Dante Ferraresi", NatItaly}, {"Ludovico Armani", NatItaly}, {"Ezio Campofranco", NatItaly},
	{"Jairzinho Valente", NatBrazil}, {"Edson Carvalheira", NatBrazil}, {"Rubens Galvão", NatBrazil},
	{"Tiago Mirassol", NatBrazil}, {"Wanderlei Fonseca", NatBrazil}, {"Maurício Pelegrino", NatBrazil},
}

// squadPositions is the generated squad layout: 18 players per club, a full
// eleven plus bench cover for every role.
var squadPositions = []string{
	PosGK, PosGK,
	PosCB, PosCB, PosCB,
	PosLB, PosLB,
	PosRB, PosRB,
	PosCDM, PosCDM,
	PosCM, PosCM, PosCM,
	PosCAM,
	PosLW, PosRW,
	PosST,
}

// generatePlayerAttributes rolls a positional attribute spread. Ranges follow
// the role: keepers top out on goalkeeping, strikers on shooting, and so on.
func generatePlayerAttributes(rng *rand.Rand, position string) PlayerAttributes {
	var a PlayerAttributes

	switch position {
	case PosGK:
		a = PlayerAttributes{
			Speed:       20 + rng.Intn(30),
			Shooting:    10 + rng.Intn(20),
			Passing:     40 + rng.Intn(40),
			Dribbling:   20 + rng.Intn(30),
			Defending:   50 + rng.Intn(30),
			Goalkeeping: 65 + rng.Intn(35),
			Physicality: 60 + rng.Intn(40),
			Mentality:   70 + rng.Intn(30),
		}
	case PosCB:
		a = PlayerAttributes{
			Speed:       30 + rng.Intn(40),
			Shooting:    20 + rng.Intn(30),
			Passing:     50 + rng.Intn(40),
			Dribbling:   30 + rng.Intn(30),
			Defending:   70 + rng.Intn(30),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 70 + rng.Intn(30),
			Mentality:   60 + rng.Intn(40),
		}
	case PosLB, PosRB:
		a = PlayerAttributes{
			Speed:       60 + rng.Intn(40),
			Shooting:    30 + rng.Intn(40),
			Passing:     60 + rng.Intn(40),
			Dribbling:   55 + rng.Intn(35),
			Defending:   60 + rng.Intn(40),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 50 + rng.Intn(40),
			Mentality:   50 + rng.Intn(40),
		}
	case PosCDM:
		a = PlayerAttributes{
			Speed:       40 + rng.Intn(40),
			Shooting:    40 + rng.Intn(40),
			Passing:     70 + rng.Intn(30),
			Dribbling:   50 + rng.Intn(35),
			Defending:   70 + rng.Intn(30),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 60 + rng.Intn(40),
			Mentality:   60 + rng.Intn(40),
		}
	case PosCM:
		a = PlayerAttributes{
			Speed:       50 + rng.Intn(40),
			Shooting:    50 + rng.Intn(40),
			Passing:     70 + rng.Intn(30),
			Dribbling:   60 + rng.Intn(35),
			Defending:   50 + rng.Intn(40),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 50 + rng.Intn(40),
			Mentality:   60 + rng.Intn(40),
		}
	case PosCAM:
		a = PlayerAttributes{
			Speed:       60 + rng.Intn(40),
			Shooting:    70 + rng.Intn(30),
			Passing:     70 + rng.Intn(30),
			Dribbling:   70 + rng.Intn(30),
			Defending:   30 + rng.Intn(40),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 40 + rng.Intn(40),
			Mentality:   70 + rng.Intn(30),
		}
	case PosLW, PosRW:
		a = PlayerAttributes{
			Speed:       70 + rng.Intn(30),
			Shooting:    60 + rng.Intn(40),
			Passing:     60 + rng.Intn(40),
			Dribbling:   70 + rng.Intn(30),
			Defending:   30 + rng.Intn(40),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 40 + rng.Intn(40),
			Mentality:   60 + rng.Intn(40),
		}
	case PosST:
		a = PlayerAttributes{
			Speed:       60 + rng.Intn(40),
			Shooting:    80 + rng.Intn(20),
			Passing:     50 + rng.Intn(40),
			Dribbling:   60 + rng.Intn(35),
			Defending:   20 + rng.Intn(30),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 60 + rng.Intn(40),
			Mentality:   70 + rng.Intn(30),
		}
	default:
		a = PlayerAttributes{
			Speed:       50 + rng.Intn(40),
			Shooting:    50 + rng.Intn(40),
			Passing:     50 + rng.Intn(40),
			Dribbling:   50 + rng.Intn(40),
			Defending:   50 + rng.Intn(40),
			Goalkeeping: 5 + rng.Intn(15),
			Physicality: 50 + rng.Intn(40),
			Mentality:   50 + rng.Intn(40),
		}
	}

	a.Stamina = 55 + rng.Intn(45)
	a.Overall = (a.Speed + a.Shooting + a.Passing + a.Dribbling + a.Defending + a.Physicality + a.Mentality) / 7
	if position == PosGK {
		a.Overall = (a.Goalkeeping + a.Defending + a.Physicality + a.Mentality) / 4
	}
	return a
}

// generateWorld builds the static reference data: every club and its squad.
// A dedicated seeded source keeps the generated world reproducible and fully
// separate from the per-match randomness.
func generateWorld(seed int64) (map[int]*TeamInfo, map[int]*Player) {
	rng := rand.New(rand.NewSource(seed))

	clubs := make(map[int]*TeamInfo, len(teamData))
	squad := make(map[int]*Player)

	playerID := 1
	for _, td := range teamData {
		clubs[td.ID] = &TeamInfo{
			ID:        td.ID,
			Name:      td.Name,
			ShortName: td.ShortName,
			Stadium:   td.Stadium,
			Founded:   td.Founded,
			Manager:   td.Manager,
			League:    td.League,
			Tactic:    tactics[rng.Intn(len(tactics))],
			Form:      []string{},
		}

		for i, position := range squadPositions {
			tmpl := playerNamePool[rng.Intn(len(playerNamePool))]
			squad[playerID] = &Player{
				ID:          playerID,
				Name:        fmt.Sprintf("%s %d", tmpl.Name, i+1),
				Position:    position,
				Number:      i + 1,
				Age:         18 + rng.Intn(20),
				Nationality: tmpl.Nationality,
				TeamID:      td.ID,
				Attributes:  generatePlayerAttributes(rng, position),
			}
			playerID++
		}
	}

	return clubs, squad
}

// startingEleven picks the first available player per lineup slot, in squad
// order so the selection is stable for a given world.
func startingEleven(teamID int, squad map[int]*Player) []*Player {
	byPosition := make(map[string][]*Player)
	for id := 1; id <= len(squad); id++ {
		p, ok := squad[id]
		if !ok || p.TeamID != teamID {
			continue
		}
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}

	lineupPlan := []struct {
		position string
		count    int
	}{
		{PosGK, 1}, {PosCB, 2}, {PosLB, 1}, {PosRB, 1},
		{PosCDM, 1}, {PosCM, 2}, {PosCAM, 1}, {PosLW, 1}, {PosST, 1},
	}

	var eleven []*Player
	for _, slot := range lineupPlan {
		pool := byPosition[slot.position]
		for i := 0; i < slot.count && i < len(pool); i++ {
			eleven = append(eleven, pool[i])
		}
	}
	// Pad from the remaining squad if a role was short
	if len(eleven) < 11 {
		seen := make(map[int]bool, len(eleven))
		for _, p := range eleven {
			seen[p.ID] = true
		}
		for id := 1; id <= len(squad) && len(eleven) < 11; id++ {
			p, ok := squad[id]
			if ok && p.TeamID == teamID && !seen[p.ID] {
				eleven = append(eleven, p)
			}
		}
	}
	return eleven
}

const (
	LeagueFirstDivision  = "First Division"
	LeagueSecondDivision = "Second Division"
)

var leagues = []string{LeagueFirstDivision, LeagueSecondDivision}
