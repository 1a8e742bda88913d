package cli

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/ports"
	"github.com/aretw0/sitecanvas/pkg/render"
)

// DefaultWatchInterval is how often RunWatch polls the store.
const DefaultWatchInterval = 500 * time.Millisecond

// WatchOptions configures RunWatch.
type WatchOptions struct {
	Key      string
	Out      io.Writer
	Interval time.Duration
	Logger   *slog.Logger
	// Format renders a state on every change. Defaults to the outline.
	Format func(*domain.State) string
}

// RunWatch prints the document each time its stored state changes, until
// ctx is cancelled. Other processes editing the same store show up live.
func RunWatch(ctx context.Context, store ports.StateStore, opts WatchOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultWatchInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Format == nil {
		opts.Format = func(st *domain.State) string {
			return render.Outline(st.Document, st.Selected())
		}
	}

	opts.Logger.Info("starting watcher", "key", opts.Key, "interval", opts.Interval)
	PrintSystemMessage(opts.Out, "Watching '%s'.", opts.Key)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var last [md5.Size]byte
	missing := false
	for {
		state, err := store.Load(ctx, opts.Key)
		switch {
		case IsNotFound(err):
			if !missing {
				PrintSystemMessage(opts.Out, "Waiting for '%s' to be created...", opts.Key)
				missing = true
				last = [md5.Size]byte{}
			}
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			opts.Logger.Warn("watch load failed", "key", opts.Key, "err", err)
		default:
			missing = false
			sum, err := fingerprint(state)
			if err != nil {
				return err
			}
			if sum != last {
				last = sum
				PrintSystemMessage(opts.Out, "Change detected (%d past, %d future).",
					len(state.History.Past), len(state.History.Future))
				fmt.Fprint(opts.Out, opts.Format(state))
			}
		}

		select {
		case <-ctx.Done():
			opts.Logger.Info("stopping watcher", "key", opts.Key)
			return nil
		case <-ticker.C:
		}
	}
}

func fingerprint(state *domain.State) ([md5.Size]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return [md5.Size]byte{}, fmt.Errorf("failed to encode state: %w", err)
	}
	return md5.Sum(data), nil
}
