package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_SESSIONS = "/sessions"
const URI_SESSION = "/sessions/:id"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandlePlay())
	s.router.HandleFunc("GET", URI_SESSIONS, s.GameServer.HandleSessions())
	s.router.HandleFunc("GET", URI_SESSION, s.GameServer.HandleSession())
}
