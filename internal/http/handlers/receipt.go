package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"display-service/internal/middleware"
	"display-service/internal/store"
)

// ReceiptSnapshot returns the current display state: the last stored receipt,
// whether the card is visible, and the change sequence.
func (a *App) ReceiptSnapshot(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Board.Snapshot())
}

// ReceiptCard renders the visible receipt as a card. Responds 204 while the
// display is hidden or before the first receipt arrives.
func (a *App) ReceiptCard(w http.ResponseWriter, r *http.Request) {
	snap := a.Board.Snapshot()
	if !snap.Visible || snap.Receipt == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	if wantsText(r) {
		body, err := a.Renderer.Text(*snap.Receipt, locale)
		if err != nil {
			a.Logger.Error().Err(err).Msg("failed to render text card")
			a.error(w, http.StatusInternalServerError, "internal", "failed to render receipt")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
		return
	}

	body, err := a.Renderer.HTML(*snap.Receipt, locale)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to render html card")
		a.error(w, http.StatusInternalServerError, "internal", "failed to render receipt")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// ReceiptDismiss hides the card without clearing the stored receipt and tells
// every connected client.
func (a *App) ReceiptDismiss(w http.ResponseWriter, r *http.Request) {
	snap := a.Board.Dismiss()
	if a.Hub != nil {
		a.Hub.Broadcast(snap)
	}
	a.Logger.Info().Uint64("seq", snap.Seq).Msg("receipt dismissed")
	a.json(w, http.StatusOK, snap)
}

// ReceiptsList returns stored receipts, newest first.
func (a *App) ReceiptsList(w http.ResponseWriter, r *http.Request) {
	limit, ok := a.listLimit(w, r)
	if !ok {
		return
	}
	entries, err := a.History.List(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to list receipts")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load receipts")
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": entries})
}

// listLimit reads the limit query parameter, falling back to the configured
// history limit. Writes the error response itself when the value is invalid.
func (a *App) listLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limit := a.Cfg.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			a.error(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return 0, false
		}
		limit = parsed
	}
	return limit, true
}

// wantsText reports whether the client asked for the plain-text card. The
// format query parameter wins over Accept negotiation; HTML is the default.
func wantsText(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
	case "text", "txt", "plain":
		return true
	case "html":
		return false
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "text/html") {
		return false
	}
	return strings.Contains(accept, "text/plain")
}
