package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/go-tangra/go-tangra-hwscore/internal/convert"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Handler serves the inventory engine over gRPC and HTTP. Every served
// full snapshot is written to the history store when one is attached.
type Handler struct {
	engine   *inventory.Engine
	usage    *source.UsageMonitor
	store    *store.Store
	watchers *WatchRegistry
}

var _ InventoryServiceServer = (*Handler)(nil)

// NewHandler creates a handler. db may be nil to disable history.
func NewHandler(engine *inventory.Engine, usage *source.UsageMonitor, db *store.Store, watchers *WatchRegistry) *Handler {
	return &Handler{engine: engine, usage: usage, store: db, watchers: watchers}
}

// toStatus maps an engine or store error onto a gRPC status. Kratos
// translates the status code to HTTP for REST callers.
func toStatus(err error, what string) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Internal
	switch {
	case stderrors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.HasCode(err, errors.ErrNotFound):
		code = codes.NotFound
	case errors.HasCode(err, errors.ErrInvalidConfig):
		code = codes.InvalidArgument
	case errors.HasCode(err, errors.ErrTimeout), stderrors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.HasCode(err, errors.ErrSnapshotFailed),
		errors.HasCode(err, errors.ErrNoSourceAvailable),
		errors.HasCode(err, errors.ErrConnectionUnavailable):
		code = codes.Unavailable
	}
	return status.Errorf(code, "%s: %v", what, err)
}

func (h *Handler) snapshot(ctx context.Context) (*inventory.FullHardwareInfo, error) {
	snap, err := h.engine.Snapshot(ctx)
	if err != nil {
		return nil, toStatus(err, "snapshot")
	}
	h.persist(ctx, snap)
	return snap, nil
}

// persist records snap in history. A storage failure never fails the
// request that produced the snapshot.
func (h *Handler) persist(ctx context.Context, snap *inventory.FullHardwareInfo) {
	if h.store == nil {
		return
	}

	rec, err := convert.SnapshotToRecord(snap)
	if err == nil {
		_, err = h.store.Insert(ctx, rec)
	}
	if err != nil {
		logger.Warn().Err(err).Str("snapshot", snap.ID).Msg("Failed to store snapshot")
	}
}

func (h *Handler) domain(ctx context.Context, name string) (any, error) {
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "domain is required")
	}
	v, err := h.engine.Domain(ctx, name)
	if err != nil {
		return nil, toStatus(err, name)
	}
	return v, nil
}

func (h *Handler) sample(ctx context.Context) (source.Usage, error) {
	u, err := h.usage.Sample(ctx)
	if err != nil {
		return source.Usage{}, toStatus(err, "usage")
	}
	return u, nil
}

func structOf(v any) (*structpb.Struct, error) {
	s, err := convert.ToStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return s, nil
}

func (h *Handler) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return structOf(snap)
}

func (h *Handler) GetDomain(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	v, err := h.domain(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return structOf(v)
}

func (h *Handler) GetUsage(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u, err := h.sample(ctx)
	if err != nil {
		return nil, err
	}
	return structOf(u)
}

func (h *Handler) WatchUsage(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()

	addr := "unknown"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		addr = p.Addr.String()
	}

	id, ch := h.watchers.Register(addr)
	defer h.watchers.Unregister(id)

	logger.Info().Str("watcher", id).Str("peer", addr).Msg("Usage watcher connected")

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		case <-ctx.Done():
			logger.Info().Str("watcher", id).Msg("Usage watcher disconnected")
			return ctx.Err()
		}
	}
}

// RegisterRoutes mounts the REST API on srv. Handlers run through the
// server's middleware chain.
func (h *Handler) RegisterRoutes(srv *kratoshttp.Server) {
	r := srv.Route("/v1")
	r.GET("/snapshot", h.httpSnapshot)
	r.GET("/domains/{domain}", h.httpDomain)
	r.GET("/usage", h.httpUsage)
	r.GET("/watchers", h.httpWatchers)
	r.GET("/snapshots", h.httpListSnapshots)
	r.GET("/snapshots/{id}", h.httpGetSnapshot)
	r.DELETE("/snapshots/{id}", h.httpDeleteSnapshot)
	r.GET("/hosts/{hostname}/latest", h.httpLatestSnapshot)
}

func reply(ctx kratoshttp.Context, fn func(context.Context) (any, error)) error {
	m := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		return fn(c)
	})
	out, err := m(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func (h *Handler) httpSnapshot(ctx kratoshttp.Context) error {
	return reply(ctx, func(c context.Context) (any, error) {
		return h.snapshot(c)
	})
}

func (h *Handler) httpDomain(ctx kratoshttp.Context) error {
	name := ctx.Vars().Get("domain")
	return reply(ctx, func(c context.Context) (any, error) {
		return h.domain(c, name)
	})
}

func (h *Handler) httpUsage(ctx kratoshttp.Context) error {
	return reply(ctx, func(c context.Context) (any, error) {
		return h.sample(c)
	})
}

type watcherList struct {
	Watchers []WatcherInfo `json:"watchers"`
}

func (h *Handler) httpWatchers(ctx kratoshttp.Context) error {
	return reply(ctx, func(context.Context) (any, error) {
		return watcherList{Watchers: h.watchers.List()}, nil
	})
}

type snapshotList struct {
	Snapshots  []store.SnapshotRecord `json:"snapshots"`
	TotalCount int                    `json:"total_count"`
}

// storedSnapshot is a history entry with its decoded body.
type storedSnapshot struct {
	StoredAt time.Time                   `json:"stored_at"`
	Snapshot *inventory.FullHardwareInfo `json:"snapshot"`
}

func (h *Handler) history() (*store.Store, error) {
	if h.store == nil {
		return nil, status.Error(codes.Unavailable, "history is disabled")
	}
	return h.store, nil
}

// parseListFilter reads hostname, collected_after, collected_before,
// page_size and page from the query string.
func parseListFilter(ctx kratoshttp.Context) (store.ListFilter, error) {
	q := ctx.Query()
	f := store.ListFilter{Hostname: q.Get("hostname")}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"collected_after", &f.CollectedAfter},
		{"collected_before", &f.CollectedBefore},
	} {
		if v := q.Get(p.key); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return f, status.Errorf(codes.InvalidArgument, "%s: %v", p.key, err)
			}
			*p.dst = &t
		}
	}

	for _, p := range []struct {
		key string
		dst *int
	}{
		{"page_size", &f.PageSize},
		{"page", &f.Page},
	} {
		if v := q.Get(p.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return f, status.Errorf(codes.InvalidArgument, "%s must be a non-negative integer", p.key)
			}
			*p.dst = n
		}
	}

	return f, nil
}

func (h *Handler) httpListSnapshots(ctx kratoshttp.Context) error {
	return reply(ctx, func(c context.Context) (any, error) {
		db, err := h.history()
		if err != nil {
			return nil, err
		}
		f, err := parseListFilter(ctx)
		if err != nil {
			return nil, err
		}
		records, total, err := db.List(c, f)
		if err != nil {
			return nil, toStatus(err, "list snapshots")
		}
		if records == nil {
			records = []store.SnapshotRecord{}
		}
		return snapshotList{Snapshots: records, TotalCount: total}, nil
	})
}

func decodeRecord(rec *store.SnapshotRecord) (any, error) {
	snap, err := convert.RecordToSnapshot(rec)
	if err != nil {
		return nil, toStatus(err, "decode snapshot")
	}
	return storedSnapshot{StoredAt: rec.StoredAt, Snapshot: snap}, nil
}

func (h *Handler) httpGetSnapshot(ctx kratoshttp.Context) error {
	id := ctx.Vars().Get("id")
	return reply(ctx, func(c context.Context) (any, error) {
		db, err := h.history()
		if err != nil {
			return nil, err
		}
		rec, err := db.Get(c, id)
		if err != nil {
			return nil, toStatus(err, "get snapshot")
		}
		return decodeRecord(rec)
	})
}

func (h *Handler) httpLatestSnapshot(ctx kratoshttp.Context) error {
	hostname := ctx.Vars().Get("hostname")
	return reply(ctx, func(c context.Context) (any, error) {
		db, err := h.history()
		if err != nil {
			return nil, err
		}
		rec, err := db.GetLatestByHostname(c, hostname)
		if err != nil {
			return nil, toStatus(err, "get latest snapshot")
		}
		return decodeRecord(rec)
	})
}

func (h *Handler) httpDeleteSnapshot(ctx kratoshttp.Context) error {
	id := ctx.Vars().Get("id")
	return reply(ctx, func(c context.Context) (any, error) {
		db, err := h.history()
		if err != nil {
			return nil, err
		}
		if err := db.Delete(c, id); err != nil {
			return nil, toStatus(err, "delete snapshot")
		}
		return struct{}{}, nil
	})
}
