package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CPCalc/internal/auth"
	"CPCalc/internal/calc/surfacearea"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testDate = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func submitted(t *testing.T, s surfacearea.Structure) *surfacearea.Calculator {
	t.Helper()
	c := surfacearea.NewCalculator()
	c.ApplyPreset(s)
	require.NoError(t, c.Submit())
	return c
}

func TestNewWithoutResult(t *testing.T) {
	_, ok := New(Input{}, surfacearea.NewCalculator(), testDate)
	assert.False(t, ok)
}

func TestNewPipeline(t *testing.T) {
	rep, ok := New(Input{Project: "Line 7"}, submitted(t, surfacearea.Pipeline), testDate)
	require.True(t, ok)

	assert.Len(t, rep.ID, 36)
	assert.Equal(t, "Surface Area Calculation", rep.Title)
	assert.Equal(t, "Line 7", rep.Project)
	assert.Equal(t, surfacearea.Pipeline.Label(), rep.Structure)
	require.Len(t, rep.Inputs, 2)
	assert.Equal(t, "diameter", rep.Inputs[0].Name)
	assert.Equal(t, surfacearea.UnitIN, rep.Inputs[0].Unit)
	assert.InDelta(t, 0.3048, rep.Inputs[0].Meters, 1e-9)
	assert.Equal(t, "length", rep.Inputs[1].Name)
	assert.NotEmpty(t, rep.Steps)
	assert.NotEmpty(t, rep.Formula)

	require.Len(t, rep.Areas, 1)
	assert.InDelta(t, 957.5574, rep.Areas[0].M2, 1e-3)
	assert.InDelta(t, rep.Areas[0].M2*10.76391041671, rep.Areas[0].Ft2, 1e-6)
}

func TestNewTank(t *testing.T) {
	rep, ok := New(Input{Title: "T-101"}, submitted(t, surfacearea.TankInternal), testDate)
	require.True(t, ok)
	assert.Equal(t, "T-101", rep.Title)
	require.Len(t, rep.Inputs, 2)
	assert.Equal(t, "height", rep.Inputs[1].Name)
	require.Len(t, rep.Areas, 3)
	assert.Equal(t, []string{"Shell", "Bottom", "Total"},
		[]string{rep.Areas[0].Label, rep.Areas[1].Label, rep.Areas[2].Label})
	assert.InDelta(t, rep.Areas[0].M2+rep.Areas[1].M2, rep.Areas[2].M2, 1e-9)
}

func TestWritePDF(t *testing.T) {
	rep, ok := New(Input{Author: "Ana", Notes: "as-built"}, submitted(t, surfacearea.TankInternal), testDate)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteXLSX(t *testing.T) {
	rep, ok := New(Input{Project: "Line 7"}, submitted(t, surfacearea.TankExternalBottom), testDate)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Surface Area Calculation", rows[0][0])
	assert.Equal(t, []string{"Project", "Line 7"}, rows[1])

	var found bool
	for _, row := range rows {
		if len(row) == 3 && row[0] == "Area" && row[1] != "m²" {
			found = true
		}
	}
	assert.True(t, found, "area row")
}

type fakeSessions struct {
	calc *surfacearea.Calculator
}

func (s *fakeSessions) Read(_ context.Context, _ int, fn func(c *surfacearea.Calculator)) {
	fn(s.calc)
}

func (s *fakeSessions) Do(_ context.Context, _ int, fn func(c *surfacearea.Calculator)) {
	fn(s.calc)
}

func (s *fakeSessions) Discard(context.Context, int) error { return nil }

func TestHandler(t *testing.T) {
	sessions := &fakeSessions{calc: surfacearea.NewCalculator()}
	h := &Handler{Sessions: sessions}

	do := func(handler http.HandlerFunc, body string, user bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/user/tools/surface-area/report", strings.NewReader(body))
		if user {
			req = req.WithContext(auth.WithUser(req.Context(), 1, "eng"))
		}
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, do(h.PDF, "", false).Code)
	assert.Equal(t, http.StatusConflict, do(h.PDF, "", true).Code)

	sessions.calc = submitted(t, surfacearea.Pipeline)
	assert.Equal(t, http.StatusBadRequest, do(h.PDF, "{", true).Code)

	rec := do(h.PDF, `{"project":"Line 7"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="surface-area-[0-9a-f-]{8}\.pdf"$`, rec.Header().Get("Content-Disposition"))

	rec = do(h.XLSX, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
