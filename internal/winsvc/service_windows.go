//go:build windows

package winsvc

import (
	"context"
	"os"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"
)

// eventLogWriter routes zerolog lines to the Windows Event Log. The
// level is read from the rendered line so warnings and errors keep
// their event type.
type eventLogWriter struct {
	elog *eventlog.Log
}

func (w *eventLogWriter) Write(p []byte) (int, error) {
	msg := string(p)

	var err error
	switch e := eventFor(msg); e.kind {
	case eventError:
		err = w.elog.Error(e.id, msg)
	case eventWarning:
		err = w.elog.Warning(e.id, msg)
	default:
		err = w.elog.Info(e.id, msg)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetupEventLog opens the named event log source and redirects the
// logger to it. Without a source, logging stays on stderr.
func SetupEventLog(name string) {
	elog, err := eventlog.Open(name)
	if err != nil {
		return
	}
	logger.SetOutput(&eventLogWriter{elog: elog})
}

// IsWindowsService reports whether the process is running as a
// Windows service.
func IsWindowsService() bool {
	ok, err := svc.IsWindowsService()
	if err != nil {
		return false
	}
	return ok
}

// stopTimeout bounds how long a stop request waits for the run function.
const stopTimeout = 30 * time.Second

// serviceHandler implements svc.Handler for a long-running function.
type serviceHandler struct {
	name string
	run  func(ctx context.Context) error
}

func (h *serviceHandler) Execute(args []string, req <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	const accepted = svc.AcceptStop | svc.AcceptShutdown
	status <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.run(ctx)
	}()

	status <- svc.Status{State: svc.Running, Accepts: accepted}

	for {
		select {
		case err := <-errCh:
			// run function returned on its own.
			status <- svc.Status{State: svc.StopPending}
			if err != nil {
				logger.Error().Err(err).Str("service", h.name).Msg("Service stopped with error")
				return false, 1
			}
			return false, 0

		case cr := <-req:
			switch cr.Cmd {
			case svc.Interrogate:
				status <- cr.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				cancel()
				// Wait for run to finish (with a generous timeout).
				select {
				case <-errCh:
				case <-time.After(stopTimeout):
					logger.Warn().Str("service", h.name).Dur("waited", stopTimeout).Msg("Timed out waiting for graceful shutdown")
				}
				return false, 0
			}
		}
	}
}

// RunService runs the named Windows service, blocking until the
// service stops.  The run function receives a context that is
// cancelled when the SCM requests a stop.
func RunService(name string, run func(ctx context.Context) error) error {
	return svc.Run(name, &serviceHandler{name: name, run: run})
}

// Install registers a Windows service with the Service Control
// Manager and creates an event log source.
func Install(name, displayName, description, exePath string, args []string) error {
	m, err := mgr.Connect()
	if err != nil {
		return errors.New().Wrap(errors.ErrService, err).WithData("connect to SCM")
	}
	defer m.Disconnect()

	// Check if service already exists.
	s, err := m.OpenService(name)
	if err == nil {
		s.Close()
		return errors.New().WithData(errors.ErrService, "service "+name+" already exists")
	}

	cfg := mgr.Config{
		DisplayName: displayName,
		Description: description,
		StartType:   mgr.StartAutomatic,
	}

	s, err = m.CreateService(name, exePath, cfg, args...)
	if err != nil {
		return errors.New().Wrap(errors.ErrService, err).WithData("create service")
	}
	defer s.Close()

	// Best-effort: set recovery to restart on first two failures.
	_ = s.SetRecoveryActions([]mgr.RecoveryAction{
		{Type: mgr.ServiceRestart, Delay: 10 * time.Second},
		{Type: mgr.ServiceRestart, Delay: 30 * time.Second},
		{Type: mgr.NoAction},
	}, 86400) // reset period: 1 day

	// Register event log source.
	if err := eventlog.InstallAsEventCreate(name, eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		// Non-fatal: the service itself is installed.
		logger.Warn().Err(err).Str("service", name).Msg("Could not install event log source")
	}

	return nil
}

// Uninstall removes the named Windows service and its event log
// source.
func Uninstall(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return errors.New().Wrap(errors.ErrService, err).WithData("connect to SCM")
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return errors.New().Wrap(errors.ErrService, err).WithData("open service " + name)
	}
	defer s.Close()

	// Stop the service if it is running.
	status, err := s.Query()
	if err == nil && status.State != svc.Stopped {
		_, _ = s.Control(svc.Stop)
		// Give it a moment to stop.
		for range 10 {
			time.Sleep(500 * time.Millisecond)
			status, err = s.Query()
			if err != nil || status.State == svc.Stopped {
				break
			}
		}
	}

	if err := s.Delete(); err != nil {
		return errors.New().Wrap(errors.ErrService, err).WithData("delete service")
	}

	// Best-effort: remove event log source.
	_ = eventlog.Remove(name)

	return nil
}

// ExePath returns the path to the currently running executable.
func ExePath() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", errors.New().Wrap(errors.ErrService, err).WithData("determine executable path")
	}
	return p, nil
}
