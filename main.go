package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"food-marketplace-api/config"
	"food-marketplace-api/credentials"
	"food-marketplace-api/filestore"
	"food-marketplace-api/notify"
	"food-marketplace-api/obs"
	"food-marketplace-api/routes"
	"food-marketplace-api/statemachine"
)

const serviceName = "food-marketplace-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		shutdown, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.GinMode)
		if err != nil {
			log.Fatal("Failed to start tracing:", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Printf("tracer shutdown: %v", err)
			}
		}()
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	var notifier notify.Notifier = notify.NewLog()
	if cfg.RabbitURL != "" {
		mq, err := notify.NewAMQP(cfg.RabbitURL, cfg.EventExchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer mq.Close()
		notifier = mq
	}
	dispatcher := notify.NewDispatcher(notifier, 5*time.Second)

	files, err := filestore.NewDiskStore(cfg.ImageDir)
	if err != nil {
		log.Fatal("Failed to prepare image store:", err)
	}

	deps := routes.Deps{
		DB:          db,
		Issuer:      credentials.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:      credentials.Hasher{Cost: cfg.BcryptCost},
		Dispatcher:  dispatcher,
		Files:       files,
		Policy:      statemachine.Policy{Strict: cfg.OrderStrictTransitions},
		ReadyTime:   cfg.OrderReadyTime,
		OTPTTL:      cfg.OTPTTL,
		CORSOrigins: cfg.CORSOrigins,
	}
	h := routes.NewHandler(deps)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := h.Admins.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal("Failed to seed admin:", err)
		}
	}

	r, err := routes.New(deps, h)
	if err != nil {
		log.Fatal("Failed to build router:", err)
	}
	r.Static("/images", files.Dir())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(sctx)
		dispatcher.Wait()
		log.Printf("server stopped")
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("server error: %v", err)
	}
}
