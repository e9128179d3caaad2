// Command dicehouse wires every component together, starts the
// WebSocket listener, runs the periodic sweeper, and shuts down
// gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dicehouse/config"
	"dicehouse/engine"
	"dicehouse/session"
	"dicehouse/store"
	"dicehouse/ws"
)

func main() {
	cfg := config.Load()

	// Flags override the env-derived config, so operators can retarget
	// a single run without editing .env.
	host := flag.String("host", cfg.Host, "listen host")
	port := flag.String("port", cfg.Port, "listen port")
	maxConnections := flag.Int("max-connections", cfg.MaxConnections, "max concurrent connections")
	flag.Parse()
	cfg.Host, cfg.Port, cfg.MaxConnections = *host, *port, *maxConnections

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		log.Fatalf("❌ failed to seed dice RNG: %v", err)
	}

	s := store.New(cfg.SessionTimeout)
	if err := s.Bootstrap(cfg.DefaultRoomCount, cfg.MaxRoomCapacity, cfg.DefaultBalance); err != nil {
		log.Fatalf("❌ bootstrap failed: %v", err)
	}

	e := engine.New(s, engine.NewSeededRoller(seed), cfg.MinBet, cfg.MaxBet, cfg.MaxBetsPerRound, cfg.StaleRoundTimeout)
	limiter := session.New(cfg.RateLimitPerMinute)

	dispatcher := &ws.Dispatcher{
		Store:       s,
		Engine:      e,
		RateLimiter: limiter,
		NewToken:    session.NewToken,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", dispatcher.Handle)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Fatalf("❌ failed to listen on %s: %v", cfg.Addr(), err)
	}
	if cfg.MaxConnections > 0 {
		ln = newConnLimitListener(ln, cfg.MaxConnections)
	}

	httpServer := &http.Server{Handler: mux}

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	go runSweeper(sweepCtx, s, e, limiter, cfg.CleanupInterval)

	go func() {
		log.Printf("🚀 dicehouse listening on %s (max %d connections)", cfg.Addr(), cfg.MaxConnections)
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	log.Println("🛑 shutting down: no longer accepting new connections")
	cancelSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("⚠️  graceful shutdown timed out: %v", err)
	}
	log.Println("✅ cleanup complete")
}

// runSweeper runs the periodic cleanup: expired sessions, stale rounds,
// then the rate-limit idle purge, in that order, every interval until
// ctx is cancelled.
func runSweeper(ctx context.Context, s *store.Store, e *engine.Engine, limiter *session.RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired := s.SweepExpiredSessions()
			stale := e.SweepStaleRounds(time.Now())
			purged := limiter.Sweep(time.Now())
			log.Printf("🧹 sweep: %d sessions expired, %d rounds stale, %d rate-limit records purged", expired, stale, purged)
		}
	}
}
