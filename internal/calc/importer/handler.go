package importer

import (
	"encoding/json"
	"net/http"

	"CPCalc/internal/calc/surfacearea"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "importer")

const maxUploadSize = 10 << 20 // 10MB

type Handler struct{}

type ImportItem struct {
	Line   int                     `json:"line"`
	Result *surfacearea.ResultView `json:"result,omitempty"`
	Error  *surfacearea.ErrorView  `json:"error,omitempty"`
}

type ImportResult struct {
	Count   int          `json:"count"`
	Failed  int          `json:"failed"`
	Results []ImportItem `json:"results"`
}

// Calculate evaluates every imported row; bad rows are reported, not skipped.
func Calculate(rows []Row) ImportResult {
	out := ImportResult{Results: make([]ImportItem, 0, len(rows))}
	for _, row := range rows {
		item := ImportItem{Line: row.Line}
		res, err := surfacearea.Calculate(row.Input)
		if err != nil {
			item.Error = surfacearea.NewErrorView(err)
			out.Failed++
		} else {
			item.Result = surfacearea.NewResultView(res)
			out.Count++
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func (h *Handler) SurfaceArea(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadXLSX(file)
	if err != nil {
		http.Error(w, err.Error(), merry.HTTPCode(err))
		return
	}
	if len(rows) > surfacearea.MaxBatchItems {
		http.Error(w, "Too many rows", http.StatusRequestEntityTooLarge)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Calculate(rows)); err != nil {
		log.PrintErr("encode response", "err", err)
	}
}

func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"surface-area-import.xlsx\"")
	if err := WriteTemplate(w); err != nil {
		log.PrintErr("write template", "err", err)
		http.Error(w, "Template generation error", http.StatusInternalServerError)
	}
}
