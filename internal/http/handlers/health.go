package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if a.Hub != nil {
		resp["clients"] = a.Hub.Count()
	}
	a.json(w, http.StatusOK, resp)
}
