package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
)

const defaultHeartbeat = 15 * time.Second

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       zerolog.Logger
	heartbeat time.Duration
}

func (h *handlers) renderGame(gs app.Session) []byte {
	return renderTemplate(h.tpl.frag, "", newGameView(gs))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		h.log.Error().Err(err).Msg("create game")
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", newGameView(*gs)))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	cell, err := formInt(r, "cell")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	gs, err := h.svc.Play(chi.URLParam(r, "id"), cell)
	h.respond(w, r, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	step, err := formInt(r, "step")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	gs, err := h.svc.JumpTo(chi.URLParam(r, "id"), step)
	h.respond(w, r, gs, err)
}

func (h *handlers) order(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ToggleOrder(chi.URLParam(r, "id"))
	h.respond(w, r, gs, err)
}

// respond writes the game fragment for htmx requests and redirects plain
// form posts back to the game page.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, gs *app.Session, err error) {
	if errors.Is(err, app.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("game transition")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderGame(*gs))
}

func formInt(r *http.Request, key string) (int, error) {
	if err := r.ParseForm(); err != nil {
		return 0, fmt.Errorf("parse form: %w", err)
	}
	v, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, r.Form.Get(key))
	}
	return v, nil
}

type moveJSON struct {
	Step        int    `json:"step"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Current     bool   `json:"current,omitempty"`
}

type stateJSON struct {
	ID      string     `json:"id"`
	Board   [9]string  `json:"board"`
	Cursor  int        `json:"cursor"`
	Next    string     `json:"next"`
	Status  string     `json:"status"`
	Winner  string     `json:"winner,omitempty"`
	Line    []int      `json:"line,omitempty"`
	Order   string     `json:"order"`
	Moves   []moveJSON `json:"moves"`
	Updated time.Time  `json:"updated"`
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	out := stateJSON{
		ID:      gs.ID,
		Cursor:  gs.State.Cursor,
		Next:    gs.State.Next().String(),
		Status:  gs.State.Status(),
		Order:   gs.Order.String(),
		Updated: gs.Updated,
	}
	for i, c := range gs.State.Current().Board {
		out.Board[i] = c.String()
	}
	if res, won := gs.State.Winner(); won {
		out.Winner = res.Winner.String()
		out.Line = res.Line[:]
	}
	for _, m := range gs.State.Moves(gs.Order) {
		out.Moves = append(out.Moves, moveJSON(m))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.log.Warn().Err(err).Msg("encode state")
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// Non-EventSource requests just get the headers
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent frames payload as one SSE event; every payload line gets its
// own data field.
func writeEvent(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(string(payload), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
