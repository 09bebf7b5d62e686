package remote

import (
	"context"
	"math"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/server"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	baseBackoff = 1 * time.Second
	maxBackoff  = 2 * time.Minute
)

// Watch streams usage samples from the daemon into fn until ctx is
// cancelled or fn fails. Dropped streams are reopened with exponential
// backoff; the attempt counter resets once a sample arrives.
func (c *Client) Watch(ctx context.Context, fn func(*structpb.Struct) error) error {
	attempt := 0
	for {
		received, err := c.watchOnce(ctx, fn)
		if ctx.Err() != nil {
			return nil
		}
		var stop *callbackError
		if errors.As(err, &stop) {
			return stop.err
		}
		if received {
			attempt = 0
		}

		attempt++
		backoff := calcBackoff(attempt)
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Str("addr", c.addr).
			Msg("Usage stream disconnected; reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
	}
}

// callbackError carries a failure from the caller's callback, which ends
// Watch instead of triggering a reconnect.
type callbackError struct {
	err error
}

func (e *callbackError) Error() string { return e.err.Error() }

func (e *callbackError) Unwrap() error { return e.err }

// watchOnce runs one stream.
func (c *Client) watchOnce(ctx context.Context, fn func(*structpb.Struct) error) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := c.conn.NewStream(c.outgoing(ctx), server.WatchUsageStreamDesc(), server.FullMethod("WatchUsage"))
	if err != nil {
		return false, errors.New().Wrap(errors.ErrRemote, err).WithData("open stream")
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return false, errors.New().Wrap(errors.ErrRemote, err).WithData("send request")
	}
	if err := stream.CloseSend(); err != nil {
		return false, errors.New().Wrap(errors.ErrRemote, err).WithData("close send")
	}

	logger.Debug().Str("addr", c.addr).Msg("Usage stream open")

	received := false
	for {
		msg := new(structpb.Struct)
		if err := stream.RecvMsg(msg); err != nil {
			return received, errors.New().Wrap(errors.ErrRemote, err).WithData("recv")
		}
		received = true
		if err := fn(msg); err != nil {
			return received, &callbackError{err: err}
		}
	}
}

func calcBackoff(attempt int) time.Duration {
	d := float64(baseBackoff) * math.Pow(2, float64(attempt-1))
	if d > float64(maxBackoff) {
		return maxBackoff
	}
	return time.Duration(d)
}
