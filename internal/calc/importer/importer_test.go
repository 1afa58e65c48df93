package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"CPCalc/internal/calc/surfacearea"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func header() []interface{} {
	h := make([]interface{}, len(Columns))
	for i, c := range Columns {
		h[i] = c
	}
	return h
}

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	rows, err := ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, surfacearea.Pipeline, rows[0].Input.Structure)
	assert.Equal(t, surfacearea.Unit("in"), rows[0].Input.DiameterUnit)

	res := Calculate(rows)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 0, res.Failed)
	assert.InDelta(t, 957.5574, res.Results[0].Result.AreaM2, 1e-3)
	require.NotNil(t, res.Results[1].Result.Tank)
	assert.InDelta(t, 80*3.141592653589793+25*3.141592653589793, res.Results[1].Result.Tank.TotalM2, 1e-9)
	assert.InDelta(t, 36*3.141592653589793, res.Results[2].Result.AreaM2, 1e-9)
}

func TestReadXLSX(t *testing.T) {
	buf := workbook(t,
		header(),
		[]interface{}{" Pipeline ", "100", "MM", "20", "", "", ""},
		[]interface{}{"", "", "", "", "", "", ""},
		[]interface{}{"tank-internal", "4"},
	)
	rows, err := ReadXLSX(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, surfacearea.Pipeline, rows[0].Input.Structure)
	assert.Equal(t, "100", rows[0].Input.Diameter)
	assert.Equal(t, "20", rows[0].Input.Length)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "", rows[1].Input.Height)

	res := Calculate(rows)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 1, res.Failed)
	assert.InDelta(t, 3.141592653589793*0.1*20, res.Results[0].Result.AreaM2, 1e-9)
	require.NotNil(t, res.Results[1].Error)
	assert.Equal(t, "validation", res.Results[1].Error.Kind)
	assert.Equal(t, surfacearea.FieldMissing, res.Results[1].Error.Fields[surfacearea.Height])
}

func TestReadXLSXErrors(t *testing.T) {
	_, err := ReadXLSX(workbook(t, header()))
	assert.True(t, merry.Is(err, ErrEmptySheet))
	assert.Equal(t, http.StatusBadRequest, merry.HTTPCode(err))

	_, err = ReadXLSX(workbook(t, header(), []interface{}{"", " "}))
	assert.True(t, merry.Is(err, ErrEmptySheet))

	_, err = ReadXLSX(bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, merry.HTTPCode(err))
}

func upload(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if data != nil {
		part, err := mw.CreateFormFile("file", "items.xlsx")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/surface-area/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.SurfaceArea(rec, upload(t, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.SurfaceArea(rec, upload(t, workbook(t, header()).Bytes()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var tmpl bytes.Buffer
	require.NoError(t, WriteTemplate(&tmpl))
	rec = httptest.NewRecorder()
	h.SurfaceArea(rec, upload(t, tmpl.Bytes()))
	require.Equal(t, http.StatusOK, rec.Code)
	var res ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Count)
	assert.Len(t, res.Results, 3)

	rec = httptest.NewRecorder()
	h.Template(rec, httptest.NewRequest(http.MethodGet, "/api/user/tools/surface-area/import/template", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "surface-area-import.xlsx")
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestTemplateWriteFailure(t *testing.T) {
	h := &Handler{}
	w := brokenWriter{httptest.NewRecorder()}
	h.Template(w, httptest.NewRequest(http.MethodGet, "/api/user/tools/surface-area/import/template", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
