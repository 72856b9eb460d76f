// Command terminal plays gridsnake in the terminal, one or two players on a
// shared keyboard.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsf/termbox-go"

	"gridsnake/config"
	"gridsnake/engine"
)

const envPrefix = "SNAKE_"

func main() {
	config.LoadDotEnv()
	defaults, err := config.Session(envPrefix)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	cols := flag.Int("cols", defaults.Cols, "grid columns")
	rows := flag.Int("rows", defaults.Rows, "grid rows")
	players := flag.Int("players", defaults.Players, "number of players (1 or 2)")
	seed := flag.Uint64("seed", 0, "food RNG seed (0 = time based)")
	logPath := flag.String("log", "", "write session log to this file")
	flag.Parse()

	cfg := engine.Config{Cols: *cols, Rows: *rows, Players: *players}

	// termbox owns the screen, so logs go to a file or nowhere
	logOut := io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	opts := []engine.Option{engine.WithLogger(log.New(logOut, "", log.LstdFlags))}
	if *seed != 0 {
		opts = append(opts, engine.WithSeed(*seed))
	}

	session, err := engine.NewSession(cfg, opts...)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := termbox.Init(); err != nil {
		log.Fatalf("terminal init: %v", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := engine.NewLoop(session, render)

	// Input goroutine; PollEvent blocks until termbox.Close interrupts it
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt || ev.Type == termbox.EventError {
				return
			}
			for _, e := range keyEvents(ev, cfg.Players) {
				loop.Send(e)
			}
		}
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		termbox.Close()
		log.Fatalf("loop: %v", err)
	}
	termbox.Interrupt()
}
