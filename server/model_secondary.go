package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_NOT_FOUND
	GAME_INVALID
	GAME_TIMEOUT
	GAME_UNAVAILABLE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case GAME_READY:
		return http.StatusOK
	case GAME_NOT_FOUND:
		return http.StatusNotFound
	case GAME_INVALID:
		return http.StatusBadRequest
	case GAME_TIMEOUT:
		return http.StatusRequestTimeout
	case GAME_UNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_ERR:
		return "GS_ERR"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

// Finished sessions no longer take players and are pruned from the list.
func (gss GameSessionState) Finished() bool {
	return gss == GS_ERR || gss == GS_OVER
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

// GameContextAwaiting answers a GameRequest. GameSession is nil unless
// ResponseCode is GAME_READY.
type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
}

type GameRequest struct {
	GameContextAwaiting chan GameContextAwaiting
}

// PlayerConnectRequest hands an upgraded connection to its session. The
// session closes GameOver once the connection is done.
type PlayerConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

// SessionQuery asks Loop for one session, or all when Id is empty.
type SessionQuery struct {
	Id    string
	Reply chan []SessionInfo
}
