//go:build !windows

package source

import (
	stderrors "errors"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
)

var errNoRegistry = stderrors.New("registry is only available on Windows")

type noRegistry struct{}

// NewDriverRegistry returns a reader that finds nothing on this platform.
func NewDriverRegistry() DriverRegistry {
	return noRegistry{}
}

func (noRegistry) AdapterKeys() ([]string, error) {
	return nil, errors.New().Wrap(errors.ErrConnectionUnavailable, errNoRegistry)
}

func (noRegistry) StringValue(string, string) (string, error) {
	return "", errors.New().Wrap(errors.ErrConnectionUnavailable, errNoRegistry)
}

func (noRegistry) SizeValue(string, string) (uint64, error) {
	return 0, errors.New().Wrap(errors.ErrConnectionUnavailable, errNoRegistry)
}
