package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scoring-api/internal/domain"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
	"github.com/phrazzld/scoring-api/internal/scoring"
	"github.com/phrazzld/scoring-api/internal/service/auth"
	"github.com/phrazzld/scoring-api/internal/store"
)

// Method names accepted in the request envelope.
const (
	MethodOnlineScore      = "online_score"
	MethodClientsInterests = "clients_interests"
)

// AdminScore is returned to the admin login without consulting the store.
const AdminScore = 42

// Diagnostics collects request-scoped facts that are logged once the
// request is answered. Handlers record "has" and "nclients".
type Diagnostics map[string]any

func (d Diagnostics) set(key string, value any) {
	if d != nil {
		d[key] = value
	}
}

type methodFunc func(ctx context.Context, req *domain.MethodRequest, diag Diagnostics) (any, error)

// Dispatcher validates the request envelope, checks the token and routes the
// call to the method handler.
type Dispatcher struct {
	checker auth.TokenChecker
	cache   store.Cache
	reader  store.Reader
	logger  *slog.Logger
	now     func() time.Time

	methods map[string]methodFunc
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithClock sets the clock used for birthday validation.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher creates a Dispatcher. cache serves score memoization and
// reader serves the interests lookups; both are usually the same
// *store.Client.
func NewDispatcher(
	checker auth.TokenChecker,
	cache store.Cache,
	reader store.Reader,
	logger *slog.Logger,
	opts ...DispatcherOption,
) *Dispatcher {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Dispatcher")
	}

	d := &Dispatcher{
		checker: checker,
		cache:   cache,
		reader:  reader,
		logger:  logger.With(slog.String("component", "dispatcher")),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.methods = map[string]methodFunc{
		MethodOnlineScore:      d.onlineScore,
		MethodClientsInterests: d.clientsInterests,
	}
	return d
}

// Handle processes a decoded request body.
//
// It returns the payload and status code to answer with. For 422 the payload
// is the validation message; 403 carries no payload. err is set only for
// failures the caller must treat as internal errors, in which case code is
// 500.
func (d *Dispatcher) Handle(ctx context.Context, body map[string]any, diag Diagnostics) (any, int, error) {
	if len(body) == 0 {
		return nil, http.StatusUnprocessableEntity, nil
	}

	req, err := domain.ParseMethodRequest(body)
	if err != nil {
		return d.fail(ctx, err)
	}

	if err := d.checker.Verify(req); err != nil {
		return d.fail(ctx, err)
	}

	method, ok := d.methods[req.Method]
	if !ok {
		return d.fail(ctx, fmt.Errorf("%w '%s'", ErrUnknownMethod, req.Method))
	}

	payload, err := method(ctx, req, diag)
	if err != nil {
		return d.fail(ctx, err)
	}
	return payload, http.StatusOK, nil
}

// fail converts a handler error into the Handle results.
func (d *Dispatcher) fail(ctx context.Context, err error) (any, int, error) {
	code := MapErrorToStatusCode(err)
	switch code {
	case http.StatusUnprocessableEntity:
		logger.FromContextOrDefault(ctx, d.logger).Debug("invalid request", "error", err)
		return err.Error(), code, nil
	case http.StatusInternalServerError:
		return nil, code, err
	default:
		logger.FromContextOrDefault(ctx, d.logger).Debug("request rejected", "code", code)
		return nil, code, nil
	}
}

func (d *Dispatcher) onlineScore(ctx context.Context, req *domain.MethodRequest, diag Diagnostics) (any, error) {
	if d.checker.IsAdmin(req) {
		args, err := domain.ParseScoreFields(req.Arguments, d.now())
		if err != nil {
			return nil, err
		}
		diag.set("has", args.Has())
		return map[string]any{"score": AdminScore}, nil
	}

	args, err := domain.ParseScoreRequest(req.Arguments, d.now())
	if err != nil {
		return nil, err
	}
	diag.set("has", args.Has())

	score := scoring.GetScore(ctx, d.cache, scoring.InputFromRequest(args))
	return map[string]any{"score": score}, nil
}

func (d *Dispatcher) clientsInterests(ctx context.Context, req *domain.MethodRequest, diag Diagnostics) (any, error) {
	args, err := domain.ParseInterestsRequest(req.Arguments)
	if err != nil {
		return nil, err
	}

	diag.set("nclients", len(args.ClientIDs))

	interests := make(map[int][]string, len(args.ClientIDs))
	for _, cid := range args.ClientIDs {
		list, err := scoring.GetInterests(ctx, d.reader, cid)
		if err != nil {
			return nil, fmt.Errorf("failed to get interests of client %d: %w", cid, err)
		}
		interests[cid] = list
	}
	return interests, nil
}
