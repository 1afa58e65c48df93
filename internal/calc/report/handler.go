package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"CPCalc/internal/auth"
	"CPCalc/internal/calc/surfacearea"

	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "report")

type Handler struct {
	Sessions surfacearea.Sessions
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "application/pdf", "pdf", WritePDF)
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", WriteXLSX)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, contentType, ext string, write func(io.Writer, Report) error) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var input Input
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
	}

	var rep Report
	h.Sessions.Read(r.Context(), userID, func(c *surfacearea.Calculator) {
		rep, ok = New(input, c, time.Now())
	})
	if !ok {
		http.Error(w, "Nothing to report: calculate first", http.StatusConflict)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, rep); err != nil {
		log.PrintErr("render report", "format", ext, "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"surface-area-%s.%s\"", rep.ID[:8], ext))
	w.Write(buf.Bytes())
}
