//go:build windows

package source

import (
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/yusufpapurcu/wmi"
)

type wmiSource struct {
	svc *wmi.SWbemServices
}

// NewDetailed returns an unconnected WMI source.
func NewDetailed() Detailed {
	return &wmiSource{}
}

func (w *wmiSource) Initialize() error {
	if w.svc != nil {
		return nil
	}

	client := &wmi.Client{NonePtrZero: true, PtrNil: true, AllowMissingFields: true}
	svc, err := wmi.InitializeSWbemServices(client)
	if err != nil {
		return errors.New().Wrap(errors.ErrConnectionUnavailable, err)
	}

	w.svc = svc
	return nil
}

func (w *wmiSource) Query(q Query, dst any) error {
	if w.svc == nil {
		return errors.New().Wrap(errors.ErrConnectionUnavailable, errNotInitialized)
	}

	if err := w.svc.Query(q.String(), dst); err != nil {
		return classifyQueryError(q, err)
	}
	return nil
}

func (w *wmiSource) Close() error {
	if w.svc == nil {
		return nil
	}

	err := w.svc.Close()
	w.svc = nil
	return err
}
