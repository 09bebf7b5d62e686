// Package sourcetest provides in-memory source adapters for probe and
// orchestrator tests.
package sourcetest

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

// Record is one management object: property name to value. Values are
// converted to the destination field type; nil leaves the field unset.
type Record map[string]any

// WMI is the fixture every Detailed opened from it reads.
type WMI struct {
	// Records is keyed by class, or by "Class WHERE clause" for
	// filtered queries.
	Records map[string][]Record
	// Errors fail queries against a class.
	Errors map[string]error
	// Panics make queries against a class panic with the given value.
	Panics map[string]string
	// Block holds queries against a class until the channel is closed.
	Block map[string]chan struct{}
	// InitErr fails Initialize.
	InitErr error
}

// Detailed is a source.Detailed reading from a WMI fixture.
type Detailed struct {
	fixture *WMI

	mu          sync.Mutex
	initCalls   int
	initialized bool
	closed      bool
	queries     []string
}

var _ source.Detailed = (*Detailed)(nil)

// Open returns a fresh unconnected instance backed by w.
func (w *WMI) Open() *Detailed {
	return &Detailed{fixture: w}
}

func (d *Detailed) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.initCalls++
	if d.initialized {
		return nil
	}
	if d.fixture.InitErr != nil {
		return errors.New().Wrap(errors.ErrConnectionUnavailable, d.fixture.InitErr)
	}
	d.initialized = true
	return nil
}

func (d *Detailed) Query(q source.Query, dst any) error {
	d.mu.Lock()
	if !d.initialized {
		d.mu.Unlock()
		return errors.New().Wrap(errors.ErrConnectionUnavailable, stderrors.New("not initialized"))
	}
	d.queries = append(d.queries, q.String())
	d.mu.Unlock()

	if ch, ok := d.fixture.Block[q.Class]; ok {
		<-ch
	}
	if v, ok := d.fixture.Panics[q.Class]; ok {
		panic(v)
	}
	if err, ok := d.fixture.Errors[q.Class]; ok {
		return err
	}

	records, ok := d.fixture.Records[q.Class+" WHERE "+q.Where]
	if !ok {
		records = d.fixture.Records[q.Class]
	}
	return fill(records, dst)
}

func (d *Detailed) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.initialized = false
	return nil
}

// InitCalls returns how many times Initialize ran.
func (d *Detailed) InitCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initCalls
}

// Closed reports whether Close ran.
func (d *Detailed) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Queries returns the WQL text of every query issued.
func (d *Detailed) Queries() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.queries...)
}

func fill(records []Record, dst any) error {
	slice := reflect.ValueOf(dst)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("sourcetest: dst must be a pointer to a slice, got %T", dst)
	}
	slice = slice.Elem()
	elemType := slice.Type().Elem()

	out := reflect.MakeSlice(slice.Type(), 0, len(records))
	for _, rec := range records {
		elem := reflect.New(elemType).Elem()
		for name, val := range rec {
			f := elem.FieldByName(name)
			if !f.IsValid() || val == nil {
				continue
			}
			if err := setField(f, val); err != nil {
				return fmt.Errorf("sourcetest: %s: %w", name, err)
			}
		}
		out = reflect.Append(out, elem)
	}
	slice.Set(out)
	return nil
}

func setField(f reflect.Value, val any) error {
	v := reflect.ValueOf(val)
	target := f.Type()
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if !v.Type().ConvertibleTo(target) {
		return fmt.Errorf("cannot convert %T to %s", val, target)
	}
	v = v.Convert(target)

	if f.Kind() == reflect.Ptr {
		p := reflect.New(target)
		p.Elem().Set(v)
		f.Set(p)
		return nil
	}
	f.Set(v)
	return nil
}
