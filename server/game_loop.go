package main

import (
	"context"
	"log"

	"gridsnake/engine"
)

// GameLoop drives one connection's session and streams a state frame to the
// client after every tick.
type GameLoop struct {
	conn    *Conn
	session *engine.Session
	loop    *engine.Loop
	cancel  context.CancelFunc
	done    chan struct{}
}

// StartGameLoop creates the session, greets the client and starts ticking.
func StartGameLoop(conn *Conn, cfg engine.Config) (*GameLoop, error) {
	session, err := engine.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	gl := &GameLoop{
		conn:    conn,
		session: session,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	gl.loop = engine.NewLoop(session, gl.broadcast)

	// Welcome goes out before the first state frame
	_ = conn.Send(WelcomeMsg{
		Type:    MsgWelcome,
		ID:      session.ID,
		Cols:    cfg.Cols,
		Rows:    cfg.Rows,
		Players: cfg.Players,
	})

	go gl.run(ctx)
	return gl, nil
}

func (gl *GameLoop) run(ctx context.Context) {
	defer close(gl.done)
	if err := gl.loop.Run(ctx); err != nil {
		return
	}
	// quit from the client: drop the connection, ReadLoop cleans up
	log.Printf("session %s quit by %s", gl.session.ID, gl.conn.ID)
	gl.conn.Close()
}

// broadcast runs on the loop goroutine after every tick.
func (gl *GameLoop) broadcast(snap engine.Snapshot) {
	if err := gl.conn.Send(NewStateMsg(snap)); err != nil {
		log.Printf("send error to %s: %v", gl.conn.ID, err)
	}
}

// Send forwards an input event to the session.
func (gl *GameLoop) Send(ev engine.Event) {
	gl.loop.Send(ev)
}

// Stop cancels the loop and waits for it to exit.
func (gl *GameLoop) Stop() {
	gl.cancel()
	<-gl.done
}
