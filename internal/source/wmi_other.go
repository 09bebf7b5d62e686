//go:build !windows

package source

import (
	stderrors "errors"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
)

var errNoWMI = stderrors.New("WMI is only available on Windows")

type unavailableSource struct{}

// NewDetailed returns a source that never connects on this platform.
func NewDetailed() Detailed {
	return unavailableSource{}
}

func (unavailableSource) Initialize() error {
	return errors.New().Wrap(errors.ErrConnectionUnavailable, errNoWMI)
}

func (unavailableSource) Query(Query, any) error {
	return errors.New().Wrap(errors.ErrConnectionUnavailable, errNotInitialized)
}

func (unavailableSource) Close() error { return nil }
