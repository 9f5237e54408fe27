package handlers

import (
	"net/http"
)

// Live upgrades the request to a websocket and streams display snapshots.
// The current snapshot is pushed immediately so late joiners converge.
func (a *App) Live(w http.ResponseWriter, r *http.Request) {
	if a.Hub == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "live updates not enabled")
		return
	}
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		a.Logger.Warn().Err(err).Msg("ws: upgrade failed")
		return
	}
	c := a.Hub.Add(conn, a.Board.Snapshot())
	c.ReadLoop(2 * a.Cfg.WSPingInterval)
	a.Hub.Remove(c)
}
