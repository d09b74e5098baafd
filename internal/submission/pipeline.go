// Package submission runs one enrollment submission end to end:
// validate, write to the remote service, fall back to the local durable
// queue, and classify what went wrong when both paths fail.
//
// Submit never panics or returns an error for collaborator failures;
// every path resolves to an Outcome.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/enrollment-intake/internal/metrics"
	"github.com/aanand-mishra/enrollment-intake/internal/storage"
	"github.com/aanand-mishra/enrollment-intake/internal/types"
	"github.com/aanand-mishra/enrollment-intake/internal/validation"
)

// DefaultRemoteTimeout bounds the single remote write attempt.
const DefaultRemoteTimeout = 10 * time.Second

// RemoteWriter is the remote-write collaborator. Failures should be
// *remote.Error values so they can be classified; anything else is Unknown.
type RemoteWriter interface {
	WriteRecord(ctx context.Context, rec types.EnrollmentRecord, meta types.Metadata) (string, error)
}

// Pipeline orchestrates submissions. It holds no per-call state, so one
// Pipeline serves concurrent sessions.
type Pipeline struct {
	engine  *validation.Engine
	remote  RemoteWriter
	local   storage.Queue
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
	newID   func() (string, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRemoteTimeout sets the bound on the remote write. Non-positive
// values keep the default.
func WithRemoteTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLocalIDGenerator overrides how local fallback IDs are generated.
func WithLocalIDGenerator(gen func() (string, error)) Option {
	return func(p *Pipeline) {
		p.newID = gen
	}
}

// New builds a Pipeline over the given collaborators.
func New(engine *validation.Engine, remote RemoteWriter, local storage.Queue, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine:  engine,
		remote:  remote,
		local:   local,
		timeout: DefaultRemoteTimeout,
		log:     slog.Default(),
		newID:   NewLocalID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewLocalID returns "local_" followed by a UUIDv7. Version 7 UUIDs start
// with a millisecond timestamp and are monotonic within the process, so
// IDs sort by capture time and never repeat.
func NewLocalID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("submission.NewLocalID: %w", err)
	}
	return "local_" + u.String(), nil
}

// Submit validates rec and persists it, remotely if possible and locally
// otherwise. It makes exactly one remote attempt and, only when that
// fails, exactly one local attempt.
func (p *Pipeline) Submit(ctx context.Context, rec types.EnrollmentRecord) Outcome {
	// ── Step 1: validate every field ──────────────────────────────────────
	// The normalized record is the one that gets stored.
	rec = validation.Normalize(rec)
	if fields := p.engine.Check(rec); len(fields) > 0 {
		p.log.Info("enrollment rejected by validation", slog.Int("fields", len(fields)))
		p.metrics.IncrementOutcome("validation", "")
		return RejectedValidation{Fields: fields}
	}

	now := p.engine.Now()
	if rec.SubmissionDate == "" {
		rec.SubmissionDate = now.Format(types.DateLayout)
	}
	meta := types.Metadata{Status: types.StatusPendingReview, CapturedAt: now}

	// ── Step 2: one bounded remote attempt ────────────────────────────────
	res := p.writeRemote(ctx, rec, meta)
	if res.err == nil {
		p.log.Info("enrollment stored remotely", slog.String("id", res.id))
		p.metrics.IncrementOutcome("remote", "")
		return AcceptedRemote{ID: res.id}
	}

	p.log.Warn("remote write failed, falling back to local queue",
		slog.String("error", res.err.Error()))

	// ── Step 3: one local attempt ─────────────────────────────────────────
	// The caller may have gone away; the record must still be kept.
	localID, localErr := p.appendLocal(context.WithoutCancel(ctx), rec, now)
	p.metrics.IncrementLocalAppend(localErr)
	if localErr == nil {
		p.log.Warn("enrollment saved to local queue", slog.String("local_id", localID))
		p.metrics.IncrementOutcome("local_fallback", "")
		return AcceptedLocalFallback{LocalID: localID}
	}

	// ── Step 4: both failed, report the remote cause ──────────────────────
	kind, detail := Classify(res.err)
	p.log.Error("enrollment could not be stored",
		slog.String("kind", string(kind)),
		slog.String("remote_error", res.err.Error()),
		slog.String("local_error", localErr.Error()))
	p.metrics.IncrementOutcome("system", string(kind))
	return RejectedSystem{Kind: kind, Detail: detail}
}

type remoteResult struct {
	id  string
	err error
}

func (p *Pipeline) writeRemote(ctx context.Context, rec types.EnrollmentRecord, meta types.Metadata) remoteResult {
	rctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	id, err := p.remote.WriteRecord(rctx, rec, meta)
	p.metrics.ObserveRemoteWrite(time.Since(start), err)

	// A writer that swallowed the deadline still counts as a timeout.
	if err != nil && errors.Is(rctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	if err == nil && id == "" {
		err = errors.New("remote writer returned an empty id")
	}
	return remoteResult{id: id, err: err}
}

func (p *Pipeline) appendLocal(ctx context.Context, rec types.EnrollmentRecord, now time.Time) (string, error) {
	localID, err := p.newID()
	if err != nil {
		return "", err
	}
	return p.local.Append(ctx, types.PendingEnrollment{
		LocalID:    localID,
		Record:     rec,
		CapturedAt: now,
		Status:     types.StatusPendingReview,
		SyncStatus: types.SyncStatusPending,
	})
}
