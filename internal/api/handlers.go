package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openaac/boardkit/core/board"
	boarderrors "github.com/openaac/boardkit/core/errors"
	"github.com/openaac/boardkit/internal/formats"
)

// maxBoardBytes bounds request bodies; boards of realistic size are a few
// hundred kilobytes at most.
const maxBoardBytes = 4 << 20

// APIResponse is the standard JSON response wrapper.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// FormatInfo describes one registered export format.
type FormatInfo struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	MIME      string `json:"mime"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

func handleListFormats(w http.ResponseWriter, r *http.Request) {
	var infos []FormatInfo
	for _, p := range formats.List() {
		infos = append(infos, FormatInfo{
			Name:      p.Format(),
			Extension: p.Extension(),
			MIME:      p.MIME(),
		})
	}
	writeSuccess(w, http.StatusOK, infos, &APIMeta{Total: len(infos), Timestamp: timestamp()})
}

func handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	p, err := formats.Get(format)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_format", fmt.Sprintf("unknown format %q", format))
		return
	}

	b, err := board.Decode(http.MaxBytesReader(w, r.Body, maxBoardBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_board", err.Error())
		return
	}
	if problems := board.Validate(b); len(problems) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "invalid_board", problems[0].Error())
		return
	}

	data, err := formats.Export(b, format)
	if err != nil {
		// the opaque export message names the format without leaking the
		// archive-level cause
		if boarderrors.Is(err, boarderrors.ErrExportFailed) {
			writeError(w, http.StatusInternalServerError, "export_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "export_failed", fmt.Sprintf("export failed for format %s", format))
		return
	}

	filename := formats.Filename(b, p)
	w.Header().Set("Content-Type", p.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeSuccess(w http.ResponseWriter, status int, data any, meta *APIMeta) {
	writeJSON(w, status, APIResponse{Success: true, Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
