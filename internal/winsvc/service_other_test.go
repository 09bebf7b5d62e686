//go:build !windows

package winsvc

import (
	"context"
	"testing"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestUnsupportedPlatform(t *testing.T) {
	assert.False(t, IsWindowsService())

	err := RunService("hwscore", func(context.Context) error { return nil })
	assert.True(t, errors.HasCode(err, errors.ErrService))

	assert.True(t, errors.HasCode(Install("hwscore", "", "", "", nil), errors.ErrService))
	assert.True(t, errors.HasCode(Uninstall("hwscore"), errors.ErrService))

	_, err = ExePath()
	assert.Error(t, err)
}
