package syncer

import (
	"context"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/logging"
)

// Pinger probes the remote for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OnlineTarget consumes connectivity transitions.
type OnlineTarget interface {
	SetOnline(online bool)
}

// StartOnlineWatcher probes the remote on the given interval and feeds
// transitions (only transitions, not every probe) into target. It blocks
// until ctx is done; run it in its own goroutine.
func StartOnlineWatcher(ctx context.Context, pinger Pinger, target OnlineTarget, interval time.Duration, log logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	online := true
	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := pinger.Ping(probeCtx)
			cancel()

			if err != nil {
				log.Debug(ctx, "connectivity probe failed", "error", err)
				if online {
					online = false
					log.Warn(ctx, "connectivity lost")
					target.SetOnline(false)
				}
			} else {
				if !online {
					online = true
					log.Info(ctx, "connectivity regained")
					target.SetOnline(true)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
