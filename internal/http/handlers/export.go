package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"display-service/internal/middleware"
	"display-service/pkg/zip"
)

// ReceiptsExport downloads the most recent receipts as a zip archive holding
// the raw JSON log plus one rendered text card per receipt.
func (a *App) ReceiptsExport(w http.ResponseWriter, r *http.Request) {
	limit, ok := a.listLimit(w, r)
	if !ok {
		return
	}
	entries, err := a.History.List(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to load receipts for export")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load receipts")
		return
	}

	manifest, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode receipts")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	files := []zip.File{{Name: "receipts.json", Data: manifest}}
	for i, entry := range entries {
		card, err := a.Renderer.Text(entry.Receipt, locale)
		if err != nil {
			a.Logger.Warn().Err(err).Str("id", entry.ID.String()).Msg("skipping card in export")
			continue
		}
		name := fmt.Sprintf("cards/%03d-%s.txt", i+1, exportSlug(entry.Receipt.Name))
		files = append(files, zip.File{Name: name, Data: []byte(card)})
	}

	archive, err := zip.Archive(files)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to build export archive")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="receipts.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// exportSlug reduces a customer name to a safe archive filename fragment.
func exportSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "receipt"
	}
	return b.String()
}
