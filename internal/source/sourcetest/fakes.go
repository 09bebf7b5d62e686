package sourcetest

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

// Fast is a canned source.Fast.
type Fast struct {
	CPUs     []source.LogicalCPU
	Physical int
	Logical  int
	Mem      source.MemoryStat
	Percent  float64
	Err      error

	mu    sync.Mutex
	calls int
}

var _ source.Fast = (*Fast)(nil)

func (f *Fast) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

// Calls returns how many methods were invoked.
func (f *Fast) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fast) LogicalCPUs(context.Context) ([]source.LogicalCPU, error) {
	f.count()
	return f.CPUs, f.Err
}

func (f *Fast) PhysicalCores(context.Context) (int, error) {
	f.count()
	return f.Physical, f.Err
}

func (f *Fast) LogicalCores(context.Context) (int, error) {
	f.count()
	return f.Logical, f.Err
}

func (f *Fast) Memory(context.Context) (source.MemoryStat, error) {
	f.count()
	return f.Mem, f.Err
}

func (f *Fast) CPUPercent(context.Context, time.Duration) (float64, error) {
	f.count()
	return f.Percent, f.Err
}

// Registry is an in-memory source.DriverRegistry. Values hold string
// or uint64 entries per adapter subkey.
type Registry struct {
	Values map[string]map[string]any
	Err    error
}

var _ source.DriverRegistry = (*Registry)(nil)

func (r *Registry) AdapterKeys() ([]string, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	return keys, nil
}

func (r *Registry) StringValue(key, name string) (string, error) {
	if s, ok := r.Values[key][name].(string); ok {
		return s, nil
	}
	return "", errors.New().WithData(errors.ErrFieldMissing, name)
}

func (r *Registry) SizeValue(key, name string) (uint64, error) {
	if v, ok := r.Values[key][name].(uint64); ok {
		return v, nil
	}
	return 0, errors.New().WithData(errors.ErrFieldMissing, name)
}

// Firmware is a canned source.Firmware.
type Firmware struct {
	Board source.Baseboard
	Err   error
}

var _ source.Firmware = (*Firmware)(nil)

func (f *Firmware) Baseboard() (source.Baseboard, error) {
	return f.Board, f.Err
}

// ErrUnreachable is a ready-made connection failure.
var ErrUnreachable = stderrors.New("service unreachable")

// Env bundles fixtures into a source.Factory and records every
// Detailed instance the factory hands out.
type Env struct {
	WMI      *WMI
	Fast     *Fast
	Registry *Registry
	Firmware *Firmware

	mu     sync.Mutex
	opened []*Detailed
}

// Factory returns a factory backed by the env's fixtures. Nil fixtures
// behave as empty sources.
func (e *Env) Factory() source.Factory {
	if e.WMI == nil {
		e.WMI = &WMI{}
	}
	if e.Fast == nil {
		e.Fast = &Fast{}
	}
	if e.Registry == nil {
		e.Registry = &Registry{}
	}
	if e.Firmware == nil {
		e.Firmware = &Firmware{Err: ErrUnreachable}
	}

	return source.Factory{
		NewFast: func() source.Fast { return e.Fast },
		NewDetailed: func() source.Detailed {
			d := e.WMI.Open()
			e.mu.Lock()
			e.opened = append(e.opened, d)
			e.mu.Unlock()
			return d
		},
		NewRegistry: func() source.DriverRegistry { return e.Registry },
		NewFirmware: func() source.Firmware { return e.Firmware },
	}
}

// Opened returns every Detailed the factory constructed.
func (e *Env) Opened() []*Detailed {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Detailed(nil), e.opened...)
}
