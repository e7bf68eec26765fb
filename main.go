package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "tourbook/internal/config"
	"tourbook/internal/db"
	"tourbook/internal/events"
	router "tourbook/internal/http"
	"tourbook/internal/realtime"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := db.EnsureSchema(conn); err != nil {
		log.Fatalf("schema: %v", err)
	}

	r := router.NewRouter(env)

	// Realtime channel: finance mutations publish on the bus, the bridge
	// fans them out to socket.io clients.
	wss := realtime.NewServer(r)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := realtime.Bridge(ctx, events.Default(), wss); err != nil {
		log.Fatalf("realtime bridge: %v", err)
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	if err := events.Default().Close(); err != nil {
		log.Printf("event bus close: %v", err)
	}

	log.Println("server stopped cleanly.")
}
