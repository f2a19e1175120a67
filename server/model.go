package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/model"
	"golang.org/x/time/rate"
)

// GameServer hands out sessions. GameSessions is only touched by Loop.
type GameServer struct {
	GameSessions   []*GameSession
	GameRequests   chan GameRequest
	SessionQueries chan SessionQuery
	Upgrader       *websocket.Upgrader
	Settings       Settings
	// NewModel supplies the layout for every new session.
	NewModel func() (*model.Model, error)
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

type GameSession struct {
	Id                    string
	Created               time.Time
	World                 *engine.World
	Settings              Settings
	PlayerSession         *PlayerSession
	Errors                chan string
	Commands              chan engine.Command
	PlayerConnectRequests chan PlayerConnectRequest

	mu     sync.Mutex
	state  GameSessionState
	latest SessionInfo
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          string
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}
	Limiter     *rate.Limiter

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}

// SessionInfo is the JSON view of a session.
type SessionInfo struct {
	Id       string        `json:"id"`
	State    string        `json:"state"`
	Created  time.Time     `json:"created"`
	Tick     uint64        `json:"tick"`
	Elapsed  time.Duration `json:"elapsed"`
	Score    int           `json:"score"`
	Lives    int           `json:"lives"`
	GameOver bool          `json:"gameOver"`
}
