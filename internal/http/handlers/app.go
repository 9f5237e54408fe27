package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"display-service/internal/display"
	"display-service/internal/domain"
	"display-service/internal/infra"
	"display-service/internal/store"
	"display-service/internal/ws"
)

// ReceiptHistory is the read side of the receipt store.
type ReceiptHistory interface {
	List(ctx context.Context, limit int) ([]store.Entry, error)
	Last(ctx context.Context) (store.Entry, error)
}

// CardRenderer renders a stored receipt into card form.
type CardRenderer interface {
	Text(receipt domain.Receipt, locale string) (string, error)
	HTML(receipt domain.Receipt, locale string) (string, error)
}

// App bundles the dependencies shared by the HTTP handlers.
type App struct {
	Cfg      *infra.Config
	Logger   infra.Logger
	Board    *display.Board
	History  ReceiptHistory
	Renderer CardRenderer
	Hub      *ws.Hub

	upgrader websocket.Upgrader
}

func NewApp(cfg *infra.Config, logger infra.Logger, board *display.Board, history ReceiptHistory, renderer CardRenderer, hub *ws.Hub) *App {
	return &App{
		Cfg:      cfg,
		Logger:   logger,
		Board:    board,
		History:  history,
		Renderer: renderer,
		Hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// originChecker allows every origin when the list contains "*", otherwise
// only listed origins. Requests without an Origin header always pass.
func originChecker(allowed []string) func(*http.Request) bool {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
		}
		set[strings.ToLower(origin)] = struct{}{}
	}
	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := strings.ToLower(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
