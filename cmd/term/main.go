package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/config"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/server"
	"github.com/zucenko/fortknox/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	remote := flag.String("server", cfg.Server, "websocket url of a game server, empty plays locally")
	mazePath := flag.String("maze", cfg.Maze, "maze file, or \"random\"")
	flag.Parse()
	cfg.Server = *remote
	cfg.Maze = *mazePath
	cfg.SetupLogging()

	// the terminal belongs to the game, logs go to a file
	logFile, err := os.OpenFile("fortknox.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalln(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error(err)
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	var client *server.Client
	var world *engine.World
	if cfg.Server != "" {
		c, err := server.Dial(ctx, cfg.Server)
		if err != nil {
			return err
		}
		client = c
	} else {
		m, err := cfg.Model()
		if err != nil {
			return err
		}
		if world, err = engine.NewWorld(m, cfg.Tuning()); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	game := term.NewGame(screen)
	if client != nil {
		return term.PlayRemote(ctx, game, client)
	}
	return term.PlayLocal(ctx, game, world)
}
