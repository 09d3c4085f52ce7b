package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const (
	sessionTTL    = time.Hour
	evictInterval = time.Minute
)

// Run serves app on addr until ctx is done, evicting idle sessions in the background.
func Run(ctx context.Context, app *fiber.App, addr string) error {
	log.Info("🦿 Running...")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(evictInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				EvictIdle(now.Add(-sessionTTL))
			}
		}
	}()

	go func() {
		if err := app.Listen(addr); err != nil {
			errChan <- err
		}
		close(errChan)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-errChan:
		if ok {
			runErr = fmt.Errorf("fail to serve %v: %w", addr, err)
		}
	}

	cancel()
	ShutdownFiberApp(app)
	wg.Wait()
	for id := range snapshotIds() {
		RemoveSession(id)
	}
	log.Info("😴 shutdown gracefully")
	return runErr
}

func snapshotIds() map[string]struct{} {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	ids := make(map[string]struct{}, len(Sessions))
	for id := range Sessions {
		ids[id] = struct{}{}
	}
	return ids
}
