package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

type templates struct {
	game  *template.Template
	frag  *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(baseTemplate))
	// the fragment lives in the same set so the game page can include it
	template.Must(base.New("game").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Tic-tac-toe</h1>
<form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div><a href="/">Home</a> <form class="inline" action="/game" method="post"><button>New game</button></form></div>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events" sse-swap="game">{{template "game" .}}</div>`))
	// Standalone fragment used for htmx swaps and SSE payloads
	frag := template.Must(template.New("game_only").Parse(gameTemplate))
	return &templates{game: game, frag: frag, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

type cellView struct {
	Index   int
	Mark    string
	Winning bool
}

// gameView is the template model for one session.
type gameView struct {
	ID         string
	Rows       [3][3]cellView
	Status     string
	Moves      []domain.MoveEntry
	Descending bool
}

func newGameView(gs app.Session) gameView {
	v := gameView{
		ID:         gs.ID,
		Status:     gs.State.Status(),
		Moves:      gs.State.Moves(gs.Order),
		Descending: gs.Order == domain.Descending,
	}
	res, won := gs.State.Winner()
	board := gs.State.Current().Board
	for i, c := range board {
		v.Rows[i/3][i%3] = cellView{Index: i, Mark: c.String(), Winning: won && res.Line.Contains(i)}
	}
	return v
}

const baseTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-tac-toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
body { font: 14px sans-serif; margin: 20px; }
.game { display: flex; flex-direction: row; }
.game-info { margin-left: 20px; }
.board-row { display: flex; }
.board-row form { margin: 0; }
.square { background: #fff; border: 1px solid #999; font-size: 24px; font-weight: bold; height: 34px; width: 34px; margin: -1px -1px 0 0; padding: 0; }
.square.winning { background: #ffe066; }
.current { font-weight: bold; }
form.inline { display: inline; }
</style>
</head><body>{{template "content" .}}</body></html>`

const gameTemplate = `<div id="game" class="game">
  <div class="game-board">
    {{- range .Rows}}
    <div class="board-row">
      {{- range .}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML" action="/game/{{$.ID}}/play" method="post">
        <input type="hidden" name="cell" value="{{.Index}}">
        <button type="submit" class="square{{if .Winning}} winning{{end}}">{{.Mark}}</button>
      </form>
      {{- end}}
    </div>
    {{- end}}
  </div>
  <div class="game-info">
    <div class="status">{{.Status}}</div>
    <form hx-post="/game/{{.ID}}/order" hx-target="#game" hx-swap="outerHTML" action="/game/{{.ID}}/order" method="post">
      <button type="submit">{{if .Descending}}Sort ascending{{else}}Sort descending{{end}}</button>
    </form>
    {{if .Descending}}<ol reversed>{{else}}<ol>{{end}}
      {{- range .Moves}}
      <li>
        <form class="inline" hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML" action="/game/{{$.ID}}/jump" method="post">
          <input type="hidden" name="step" value="{{.Step}}">
          <button type="submit"{{if .Current}} class="current"{{end}}>{{.Label}}</button>
        </form>
        <label>{{.Description}}</label>
      </li>
      {{- end}}
    </ol>
  </div>
</div>`
