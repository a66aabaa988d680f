package solver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wikitools/pagelistbot/internal/ast"
	"github.com/wikitools/pagelistbot/internal/logging"
	"github.com/wikitools/pagelistbot/internal/numinf"
	"github.com/wikitools/pagelistbot/internal/provider"
)

// Options configures a single Solve run.
type Options struct {
	// DefaultLimit seeds the root effective modifier's result_limit
	// (spec §4.2 "Effective modifier at root").
	DefaultLimit numinf.NumberOrInf
	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration
}

// Solve compiles root against p and returns the single top-level item
// stream a caller ranges over (spec §4.2's root Driver). Every run gets
// a correlation id so concurrent or sequential runs can be told apart
// in structured logs (see cmd/pagelistbot's script subcommand, which
// runs several queries in one process).
func Solve(ctx context.Context, root *ast.Node, p provider.Provider, opts Options) <-chan Item {
	runID := uuid.New().String()
	logger := logging.FromContext(ctx).With(zap.String("run_id", runID))
	ctx = logging.WithLogger(ctx, logger)

	eff := RootModifier(opts.DefaultLimit)
	logger.Debug("solve started", zap.String("root_kind", root.Kind()))

	if opts.Timeout <= 0 {
		return logged(ctx, logger, compileRoot(ctx, root, eff, p))
	}
	return withTimeout(ctx, logger, root, eff, p, opts.Timeout)
}

// compileRoot compiles the whole tree and, unless root is itself an
// ast.Modified node (which already applies the root effective-modifier
// pipeline to itself via compile's Modified case), wraps the result
// with that same pipeline so the caller's default limit L still governs
// a query with no explicit modifier clause anywhere (spec §4.2
// "Effective modifier at root").
func compileRoot(ctx context.Context, root *ast.Node, eff EffectiveModifier, p provider.Provider) <-chan Item {
	raw := compile(ctx, root, eff, p)
	if root.Expr.Modified != nil {
		return raw
	}
	return fuse(produceModifierFilter(ctx, root.Span, eff, raw, p))
}

// logged wraps in, logging every Err item the root stream forwards so
// operators can see a run's terminal failure without reading the
// returned stream themselves (spec §9 ambient logging requirement).
func logged(ctx context.Context, logger *zap.Logger, in <-chan Item) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		for item := range in {
			if e, isErr := item.Err(); isErr {
				logger.Error("query failed",
					zap.String("kind", e.Kind.String()),
					zap.String("span", e.Span.String()),
					zap.String("message", e.Message))
			}
			if !trySend(ctx, out, item) {
				return
			}
		}
		logger.Debug("solve finished")
	}()
	return out
}

// withTimeout runs the compiled tree under a deadline, emitting
// TimeoutApproaching at 90% of the budget and TimeoutElapsed (plus
// cancellation) at 100%, per spec §4.2's timeout warnings.
func withTimeout(ctx context.Context, logger *zap.Logger, root *ast.Node, eff EffectiveModifier, p provider.Provider, timeout time.Duration) <-chan Item {
	ctx, cancel := context.WithCancel(ctx)
	inner := compileRoot(ctx, root, eff, p)
	out := make(chan Item)

	go func() {
		defer close(out)
		defer cancel()

		approaching := time.NewTimer(timeout * 9 / 10)
		elapsed := time.NewTimer(timeout)
		defer approaching.Stop()
		defer elapsed.Stop()

		warnedApproaching := false
		for {
			select {
			case item, ok := <-inner:
				if !ok {
					logger.Debug("solve finished")
					return
				}
				if e, isErr := item.Err(); isErr {
					logger.Error("query failed",
						zap.String("kind", e.Kind.String()),
						zap.String("span", e.Span.String()),
						zap.String("message", e.Message))
				}
				if !trySend(ctx, out, item) {
					return
				}
			case <-approaching.C:
				if warnedApproaching {
					continue
				}
				warnedApproaching = true
				logger.Warn("query approaching timeout")
				if !trySend(ctx, out, warnItem(Warning{Kind: TimeoutApproaching, Span: root.Span})) {
					return
				}
			case <-elapsed.C:
				logger.Warn("query timed out")
				trySend(ctx, out, warnItem(Warning{Kind: TimeoutElapsed, Span: root.Span}))
				cancel()
				go func() {
					for range inner {
					}
				}()
				return
			}
		}
	}()
	return out
}
