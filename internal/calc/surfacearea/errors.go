package surfacearea

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ansel1/merry"
)

// ErrUnsupportedStructure means a structure reached the formula dispatch
// without an entry in the table. It is a defect, never bad user input.
var ErrUnsupportedStructure = merry.New("unsupported structure type").
	WithHTTPCode(http.StatusInternalServerError)

// ErrResultOutOfRange means the inputs were valid numbers but the area does
// not fit in a float64.
var ErrResultOutOfRange = merry.New("result out of range: dimensions too large").
	WithHTTPCode(http.StatusUnprocessableEntity)

func unsupported(s Structure) error {
	return merry.Wrap(ErrUnsupportedStructure).Appendf("%q", s)
}

// ValidationError aggregates the field checks that failed on submit.
type ValidationError struct {
	Structure Structure            `json:"structure"`
	Fields    map[Field]FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range Fields {
		if k, ok := e.Fields[f]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", f, k))
		}
	}
	return "invalid input: " + strings.Join(parts, ", ")
}
