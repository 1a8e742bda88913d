package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/sitecanvas/pkg/domain"
)

// LogHooks returns lifecycle hooks writing one structured record per event.
// Commits log at Debug, persistence failures at Warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			logger.DebugContext(ctx, "command applied",
				"key", e.Key,
				"command", e.Command,
				"changed", e.Changed,
				"history_depth", e.HistoryDepth,
				"selected", e.Selected,
			)
		},
		OnPersistError: func(ctx context.Context, e *domain.PersistErrorEvent) {
			logger.WarnContext(ctx, "persistence failed", "key", e.Key, "op", e.Op, "err", e.Err)
		},
	}
}
