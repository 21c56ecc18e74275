package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/guildline/engage-api/adapter"
	"github.com/guildline/engage-api/api/handlers"

	"go.uber.org/zap"

	"github.com/guildline/engage-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	err := a.Initialize() //initialize database, engine and router
	if err != nil {
		log.Fatal(err)
	}

	a.Scheduler.Start()

	ctx, cancel := context.WithCancel(context.Background())
	gateway := adapter.NewGateway(a.Config.GatewayURL, a.Normalizer)
	go gateway.Run(ctx)

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("engage-api is up and running",
		"port", port,
		"url", baseURL,
	)

	srv := &http.Server{Addr: fmt.Sprintf(":%v", port), Handler: a.Router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zap.S().Info("shutting down")
	gateway.Close()
	cancel()
	a.Scheduler.Stop()
	srv.Shutdown(context.Background())
}
