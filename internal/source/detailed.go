package source

import (
	stderrors "errors"
	"strings"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
)

// Query selects Fields from a management class. An empty Fields list
// selects every property.
type Query struct {
	Class  string
	Fields []string
	Where  string
}

// String renders the query as WQL.
func (q Query) String() string {
	fields := "*"
	if len(q.Fields) > 0 {
		fields = strings.Join(q.Fields, ", ")
	}

	s := "SELECT " + fields + " FROM " + q.Class
	if q.Where != "" {
		s += " WHERE " + q.Where
	}
	return s
}

// Detailed is the management-instrumentation source. An instance must
// stay with the goroutine that opened it.
type Detailed interface {
	// Initialize connects. Calling it again on a connected instance is
	// a no-op; an unreachable service yields ErrConnectionUnavailable.
	Initialize() error

	// Query loads matching records into dst, a pointer to a slice of
	// structs whose field names match class properties. Pointer fields
	// stay nil when a property is null or absent.
	Query(q Query, dst any) error

	Close() error
}

var errNotInitialized = stderrors.New("detailed source used before Initialize")

// classifyQueryError maps provider failures onto query error codes.
// WBEM_E_INVALID_CLASS (0x80041010) means the class does not exist on
// this build; WBEM_E_INVALID_QUERY (0x80041017) is what an unknown
// property in the select list produces.
func classifyQueryError(q Query, err error) error {
	errFactory := errors.New()
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "invalid class"), strings.Contains(msg, "80041010"):
		return errFactory.Wrap(errors.ErrClassNotFound, err).WithData(q.Class)
	case strings.Contains(msg, "invalid query"), strings.Contains(msg, "80041017"),
		strings.Contains(msg, "no such struct field"), strings.Contains(msg, "field mismatch"):
		return errFactory.Wrap(errors.ErrFieldMissing, err).WithData(q.Class)
	}

	return errFactory.Wrap(errors.ErrQueryFailed, err).WithData(q.Class)
}
