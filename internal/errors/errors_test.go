package errors_test

import (
	"fmt"
	"testing"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCodeThroughLayers(t *testing.T) {
	f := errors.New()
	base := f.Wrap(errors.ErrClassNotFound, fmt.Errorf("Invalid class"))
	probe := f.Wrap(errors.ErrNoSourceAvailable, base).WithData("cpu")
	outer := fmt.Errorf("snapshot: %w", probe)

	assert.True(t, errors.HasCode(outer, errors.ErrNoSourceAvailable))
	assert.True(t, errors.HasCode(outer, errors.ErrClassNotFound))
	assert.False(t, errors.HasCode(outer, errors.ErrTimeout))
	assert.Equal(t, errors.ErrNoSourceAvailable, errors.CodeOf(outer))
	assert.True(t, errors.Is(outer, f.New(errors.ErrNoSourceAvailable)))
}

func TestErrorMessage(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Probe timed out", f.New(errors.ErrTimeout).Error())
	assert.Equal(t, "Probe timed out: gpu", f.WithData(errors.ErrTimeout, "gpu").Error())
	assert.Equal(t, "custom", f.WithMessage(errors.ErrTimeout, "custom").Error())
	assert.Equal(t, "No data source available (cpu): boom",
		f.Wrap(errors.ErrNoSourceAvailable, fmt.Errorf("boom")).WithData("cpu").Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, errors.KindInit, errors.KindOf(errors.ErrConnectionUnavailable))
	assert.Equal(t, errors.KindQuery, errors.KindOf(errors.ErrFieldMissing))
	assert.Equal(t, errors.KindProbe, errors.KindOf(errors.ErrTimeout))
	assert.Equal(t, errors.KindSnapshot, errors.KindOf(errors.ErrUnitFailed))
	assert.Equal(t, errors.KindOther, errors.KindOf(errors.ErrStorage))
}
