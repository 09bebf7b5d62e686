package source

import (
	stderrors "errors"
	"testing"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestQueryString(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"all fields", Query{Class: "Win32_BaseBoard"}, "SELECT * FROM Win32_BaseBoard"},
		{"field list", Query{Class: "Win32_Processor", Fields: []string{"Name", "NumberOfCores"}},
			"SELECT Name, NumberOfCores FROM Win32_Processor"},
		{"where", Query{Class: "Win32_PnPEntity", Fields: []string{"Name"}, Where: "PNPClass = 'Camera'"},
			"SELECT Name FROM Win32_PnPEntity WHERE PNPClass = 'Camera'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.String())
		})
	}
}

func TestClassifyQueryError(t *testing.T) {
	q := Query{Class: "Win32_Foo"}

	tests := []struct {
		msg  string
		want errors.ErrorCode
	}{
		{"Exception occurred. (SWbemServicesEx: Invalid class )", errors.ErrClassNotFound},
		{"OLE error 0x80041010", errors.ErrClassNotFound},
		{"Exception occurred. (SWbemServicesEx: Invalid query )", errors.ErrFieldMissing},
		{"wmi: cannot load field \"Bar\" into a \"string\": no such struct field", errors.ErrFieldMissing},
		{"RPC server unavailable", errors.ErrQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := classifyQueryError(q, stderrors.New(tt.msg))
			assert.True(t, errors.HasCode(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), "Win32_Foo")
		})
	}
}

func TestDecodeSize(t *testing.T) {
	v, ok := decodeSize([]byte{0x00, 0x00, 0x00, 0x80})
	assert.True(t, ok)
	assert.Equal(t, uint64(2<<30), v)

	v, ok = decodeSize([]byte{0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00})
	assert.True(t, ok)
	assert.Equal(t, uint64(12<<30), v)

	_, ok = decodeSize([]byte{0x01, 0x02})
	assert.False(t, ok)
}

func TestIsAdapterKey(t *testing.T) {
	assert.True(t, isAdapterKey("0000"))
	assert.True(t, isAdapterKey("0012"))
	assert.False(t, isAdapterKey("Properties"))
	assert.False(t, isAdapterKey("Configuration"))
	assert.False(t, isAdapterKey("000"))
}
