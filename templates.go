package main

import (
	"net/http"
	"text/template"
)

// HTML for the homepage: a short, self-contained API reference.
const homepageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Openfoot Manager</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #1a202c;
            background: linear-gradient(135deg, #134e4a 0%, #1e3a8a 100%);
            min-height: 100vh;
        }
        .container { max-width: 900px; margin: 0 auto; padding: 2rem; }
        .header { text-align: center; color: white; margin-bottom: 2.5rem; }
        .header h1 { font-size: 2.5rem; font-weight: 800; }
        .header p { opacity: 0.85; margin-top: 0.5rem; }
        .card {
            background: white;
            border-radius: 10px;
            padding: 1.5rem;
            margin-bottom: 1.25rem;
            box-shadow: 0 4px 12px rgba(0,0,0,0.15);
        }
        .card h2 { font-size: 1.1rem; margin-bottom: 0.75rem; color: #1e3a8a; }
        .endpoint { font-family: ui-monospace, monospace; font-size: 0.9rem; padding: 0.25rem 0; }
        .endpoint a { color: #0f766e; text-decoration: none; }
        .endpoint a:hover { text-decoration: underline; }
        .desc { color: #4a5568; font-size: 0.85rem; margin-left: 1rem; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>⚽ Openfoot Manager</h1>
            <p>Probabilistic football match simulation — season {{.Season}}, matchday {{.Matchday}}, {{.Live}} matches live</p>
        </div>
        {{range .Sections}}
        <div class="card">
            <h2>{{.Title}}</h2>
            {{range .Endpoints}}
            <div class="endpoint"><a href="{{.Path}}">{{.Path}}</a><span class="desc">{{.Desc}}</span></div>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>`

type endpointDoc struct {
	Path string
	Desc string
}

type homepageSection struct {
	Title     string
	Endpoints []endpointDoc
}

var homepageSections = []homepageSection{
	{"System", []endpointDoc{
		{"/api/v1/health", "service health and season progress"},
		{"/api/v1/logs?limit=100", "recent engine log lines"},
		{"/ws?match=1", "websocket feed of live simulation events"},
	}},
	{"Matches", []endpointDoc{
		{"/api/v1/matches", "all live matches"},
		{"/api/v1/matches/1", "one live match"},
		{"/api/v1/matches/1/stats", "team statistics"},
		{"/api/v1/matches/1/events", "full event log"},
		{"/api/v1/matches/1/commentary?limit=20", "latest commentary lines"},
	}},
	{"World", []endpointDoc{
		{"/api/v1/teams", "all clubs"},
		{"/api/v1/teams/1", "club and squad"},
		{"/api/v1/players", "all players"},
		{"/api/v1/players/1", "one player with attributes"},
	}},
	{"Season", []endpointDoc{
		{"/api/v1/leagues/First Division/table", "league standings"},
		{"/api/v1/leagues/First Division/fixtures?matchday=1", "fixture list"},
		{"/api/v1/seasons/current", "season progress"},
		{"/api/v1/results?limit=20", "recent final scores"},
	}},
}

func serveHomepage(w http.ResponseWriter, r *http.Request) {
	stateMu.RLock()
	data := struct {
		Season   string
		Matchday int
		Live     int
		Sections []homepageSection
	}{
		Season:   season.seasonLabel(),
		Matchday: season.Matchday,
		Live:     len(liveMatches),
		Sections: homepageSections,
	}
	stateMu.RUnlock()

	tmpl, err := template.New("homepage").Parse(homepageTemplate)
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		logError("Homepage template execution: %v", err)
	}
}
