package surfacearea

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"CPCalc/internal/auth"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "surfacearea")

// Sessions gives access to the calculator of a signed-in user.
type Sessions interface {
	Read(ctx context.Context, userID int, fn func(c *Calculator))
	Do(ctx context.Context, userID int, fn func(c *Calculator))
	Discard(ctx context.Context, userID int) error
}

type Handler struct {
	Sessions Sessions
}

type structureRequest struct {
	Structure string `json:"structure"`
}

type inputRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type unitRequest struct {
	Field string `json:"field"`
	Unit  string `json:"unit"`
}

type StructureInfo struct {
	Value    Structure `json:"value"`
	Label    string    `json:"label"`
	Required []Field   `json:"required"`
	Formula  []string  `json:"formula"`
}

type Meta struct {
	Structures []StructureInfo `json:"structures"`
	Units      []Unit          `json:"units"`
}

func NewMeta() Meta {
	m := Meta{Units: Units}
	for _, s := range Structures {
		m.Structures = append(m.Structures, StructureInfo{
			Value:    s,
			Label:    s.Label(),
			Required: structures[s].required,
			Formula:  Formula(s),
		})
	}
	return m
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.PrintErr("encode response", "err", err)
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		log.Debug("write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := merry.HTTPCode(err)
	if code >= http.StatusInternalServerError {
		log.PrintErr("request failed", "err", err)
		http.Error(w, "Calculation error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

func (h *Handler) Meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewMeta())
}

// Calc is a one-shot calculation that does not touch the user's session.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) || merry.Is(err, ErrResultOutOfRange) {
			writeJSON(w, http.StatusUnprocessableEntity, NewErrorView(err))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewResultView(res))
}

func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var input BatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	for i := range input.Items {
		item, err := input.Items[i].Normalize()
		if err != nil {
			writeError(w, merry.Prependf(err, "item %d", i))
			return
		}
		input.Items[i] = item
	}
	res, err := CalculateBatch(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// session runs a transition for the signed-in user and answers with the
// resulting view. A nil transition only reads the state.
func (h *Handler) session(w http.ResponseWriter, r *http.Request, fn func(c *Calculator)) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var v View
	if fn == nil {
		h.Sessions.Read(r.Context(), userID, func(c *Calculator) { v = NewView(c) })
	} else {
		h.Sessions.Do(r.Context(), userID, func(c *Calculator) {
			fn(c)
			v = NewView(c)
		})
	}
	status := http.StatusOK
	if v.Error != nil {
		if v.Error.Kind == "validation" || v.Error.Kind == "range" {
			status = http.StatusUnprocessableEntity
		} else {
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, v)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, nil)
}

func (h *Handler) Structure(w http.ResponseWriter, r *http.Request) {
	var req structureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	s, ok := ParseStructure(req.Structure)
	if !ok {
		writeError(w, merry.Wrap(ErrUnknownStructure).Appendf("%q", req.Structure))
		return
	}
	h.session(w, r, func(c *Calculator) { c.SelectStructure(s) })
}

func (h *Handler) Input(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	f, ok := ParseField(req.Field)
	if !ok {
		writeError(w, merry.Wrap(ErrUnknownField).Appendf("%q", req.Field))
		return
	}
	h.session(w, r, func(c *Calculator) { c.SetInput(f, req.Value) })
}

func (h *Handler) Unit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	f, ok := ParseField(req.Field)
	if !ok {
		writeError(w, merry.Wrap(ErrUnknownField).Appendf("%q", req.Field))
		return
	}
	u, ok := ParseUnit(req.Unit)
	if !ok {
		writeError(w, merry.Wrap(ErrUnknownUnit).Appendf("%q", req.Unit))
		return
	}
	h.session(w, r, func(c *Calculator) { c.SetUnit(f, u) })
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, func(c *Calculator) {
		if err := c.Submit(); err != nil && merry.Is(err, ErrUnsupportedStructure) {
			log.PrintErr("submit", "structure", c.Structure(), "err", err)
		}
	})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, func(c *Calculator) { c.Reset() })
}

func (h *Handler) Preset(w http.ResponseWriter, r *http.Request) {
	var req structureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	s, ok := ParseStructure(req.Structure)
	if !ok {
		writeError(w, merry.Wrap(ErrUnknownStructure).Appendf("%q", req.Structure))
		return
	}
	h.session(w, r, func(c *Calculator) { c.ApplyPreset(s) })
}

// Discard forgets the user's saved calculator state.
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Sessions.Discard(r.Context(), userID); err != nil {
		log.PrintErr("discard session", "user", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
