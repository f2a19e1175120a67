package server

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/model"
)

var ErrNoSetup = errors.New("server did not send a setup message")

// Client is the player end of /play. Frames keeps only the newest few
// snapshots, a slow reader skips frames instead of stalling the socket.
type Client struct {
	Setup  model.Setup
	First  model.Snapshot
	Frames chan model.Snapshot
	Done   chan struct{}

	conn    *websocket.Conn
	writeMu sync.Mutex
	errMu   sync.Mutex
	err     error
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (http %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	mes, err := readMessage(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if len(mes.Setup) == 0 {
		conn.Close()
		return nil, ErrNoSetup
	}
	c := &Client{
		Setup:  mes.Setup[0],
		Frames: make(chan model.Snapshot, 4),
		Done:   make(chan struct{}),
		conn:   conn,
	}
	if len(mes.Frames) > 0 {
		c.First = mes.Frames[0]
	}
	log.WithField("session", c.Setup.SessionId).Info("joined game")
	go c.loopRead()
	return c, nil
}

func readMessage(conn *websocket.Conn) (model.ServerMessage, error) {
	mes := model.ServerMessage{}
	_, r, err := conn.NextReader()
	if err != nil {
		return mes, err
	}
	err = gob.NewDecoder(r).Decode(&mes)
	return mes, err
}

func (c *Client) loopRead() {
	defer close(c.Done)
	for {
		mes, err := readMessage(c.conn)
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.setErr(err)
			}
			return
		}
		for _, f := range mes.Frames {
			c.push(f)
		}
	}
}

// push replaces the oldest frame when the buffer is full.
func (c *Client) push(f model.Snapshot) {
	for {
		select {
		case c.Frames <- f:
			return
		default:
		}
		select {
		case <-c.Frames:
		default:
		}
	}
}

func (c *Client) Send(dir model.Direction) error {
	return c.write(model.ClientMessage{Move: dir})
}

func (c *Client) Quit() error {
	return c.write(model.ClientMessage{Quit: true})
}

func (c *Client) write(cm model.ClientMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	w, err := c.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(cm); err != nil {
		return err
	}
	return w.Close()
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Err is the read error that ended the session, nil after a clean close.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	c.err = err
	c.errMu.Unlock()
}
