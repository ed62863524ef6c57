package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	filetokenstore "github.com/Mergington-High/activity-signup-client/internal/adapters/file/tokenstore"
	"github.com/Mergington-High/activity-signup-client/internal/adapters/httpclient"
	"github.com/Mergington-High/activity-signup-client/internal/adapters/webui"
	"github.com/Mergington-High/activity-signup-client/internal/app/catalog"
	"github.com/Mergington-High/activity-signup-client/internal/app/dashboard"
	"github.com/Mergington-High/activity-signup-client/internal/app/notify"
	"github.com/Mergington-High/activity-signup-client/internal/app/registration"
	"github.com/Mergington-High/activity-signup-client/internal/app/session"
	"github.com/Mergington-High/activity-signup-client/internal/platform/config"
	"github.com/Mergington-High/activity-signup-client/internal/platform/metrics"
	platformtimer "github.com/Mergington-High/activity-signup-client/internal/platform/timer"
)

func main() {
	cfg, err := config.LoadClientConfigFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	api := httpclient.New(cfg.APIBaseURL, httpclient.Options{
		Timeout:           cfg.HTTPTimeout,
		LegacyQueryParams: cfg.LegacyQueryParams,
	})

	store := filetokenstore.NewStore(cfg.TokenFile)
	sess := session.NewService(store)

	state := webui.NewState()
	col := metrics.NewCollector()
	ch := notify.NewChannel(state, platformtimer.NewSystemScheduler(), cfg.NotificationTTL, col)

	cat := catalog.NewService(api, sess, state, ch, col)
	reg := registration.NewService(api, sess, cat, ch, col)
	dash := dashboard.NewService(api, sess, cat, reg, ch, state)

	// Restore any persisted session and pre-render the matching surface.
	// Failures here (stale token, unreachable service) start the client
	// logged out or with an error notification; they never abort startup.
	if err := dash.Bootstrap(context.Background()); err != nil {
		log.Printf("bootstrap: %v", err)
	}

	handler := webui.NewRouter(webui.NewServer(dash, sess, state), webui.ServerOptions{
		MetricsHandler: col.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("webclient listening on :%s (api=%s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
