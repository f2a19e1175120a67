package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/config"
	"github.com/zucenko/fortknox/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	cfg.SetupLogging()

	// fail before listening when the maze is broken
	if _, err := cfg.Model(); err != nil {
		log.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := Server{
		GameServer: server.NewGameServer(server.SettingsFrom(cfg), cfg.Model),
	}
	go s.GameServer.Loop(ctx)
	s.routes()

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: s.router,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdown); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.WithFields(log.Fields{"port": cfg.Port, "maze": cfg.Maze}).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
}
