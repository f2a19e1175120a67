package server

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/model"
)

func NewGameServer(settings Settings, newModel func() (*model.Model, error)) *GameServer {
	return &GameServer{
		GameSessions:   make([]*GameSession, 0),
		GameRequests:   make(chan GameRequest),
		SessionQueries: make(chan SessionQuery),
		Upgrader:       &websocket.Upgrader{},
		Settings:       settings,
		NewModel:       newModel,
	}
}

// HandlePlay starts a session and plays it over a websocket until the game
// ends or the client goes away.
func (s *GameServer) HandlePlay() http.HandlerFunc {
	timeout := s.Settings.RequestTimeout
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("HandlePlay connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(GAME_TIMEOUT.ToHttp())
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			switch gca.ResponseCode {
			case GAME_READY:
			case GAME_NOT_FOUND, GAME_INVALID:
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			default:
				log.Errorf("gca.ResponseCode not expected:%v", gca.ResponseCode)
				w.WriteHeader(GAME_UNAVAILABLE.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warn("HandlePlay GameContextAwaiting TIMEOUTED")
			w.WriteHeader(GAME_TIMEOUT.ToHttp())
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client
			log.Warnf("HandlePlay websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{Con: con, GameOver: gameOver}:
		case <-time.After(timeout):
			log.WithField("session", gca.GameSession.Id).Warn("PlayerConnectRequests TIMEOUTED")
			return
		}

		<-gameOver
		log.WithField("session", gca.GameSession.Id).Info("HandlePlay done")
	}
}

// HandleSessions lists every session the server remembers.
func (s *GameServer) HandleSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, ok := s.query(SessionQuery{})
		if !ok {
			w.WriteHeader(GAME_TIMEOUT.ToHttp())
			return
		}
		writeJSON(w, infos)
	}
}

// HandleSession shows the session named by the :id route parameter.
func (s *GameServer) HandleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, ok := s.query(SessionQuery{Id: way.Param(r.Context(), "id")})
		if !ok {
			w.WriteHeader(GAME_TIMEOUT.ToHttp())
			return
		}
		if len(infos) == 0 {
			w.WriteHeader(GAME_NOT_FOUND.ToHttp())
			return
		}
		writeJSON(w, infos[0])
	}
}

func (s *GameServer) query(q SessionQuery) ([]SessionInfo, bool) {
	q.Reply = make(chan []SessionInfo, 1)
	select {
	case s.SessionQueries <- q:
	case <-time.After(s.Settings.RequestTimeout):
		return nil, false
	}
	select {
	case infos := <-q.Reply:
		return infos, true
	case <-time.After(s.Settings.RequestTimeout):
		return nil, false
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON %v", err)
	}
}

// Loop owns GameSessions. It returns when ctx is done.
func (s *GameServer) Loop(ctx context.Context) {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return
		case gameReq := <-s.GameRequests:
			gs, err := s.newSession()
			if err != nil {
				log.Errorf("GameServer.Loop cannot create session: %v", err)
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_INVALID}
				continue
			}
			s.prune()
			s.GameSessions = append(s.GameSessions, gs)
			go gs.Loop()
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case q := <-s.SessionQueries:
			infos := make([]SessionInfo, 0, len(s.GameSessions))
			for _, gs := range s.GameSessions {
				if q.Id == "" || q.Id == gs.Id {
					infos = append(infos, gs.Info())
				}
			}
			q.Reply <- infos
		}
	}
}

func (s *GameServer) newSession() (*GameSession, error) {
	m, err := s.NewModel()
	if err != nil {
		return nil, err
	}
	world, err := engine.NewWorld(m, s.Settings.Tuning)
	if err != nil {
		return nil, err
	}
	gs := &GameSession{
		Id:                    uuid.New().String(),
		Created:               time.Now(),
		World:                 world,
		Settings:              s.Settings,
		Errors:                make(chan string, 1),
		Commands:              make(chan engine.Command, 16),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
	}
	gs.publish(world.Snapshot())
	log.WithField("session", gs.Id).Info("GameSession created")
	return gs, nil
}

// prune forgets the oldest finished sessions beyond Settings.KeepFinished.
func (s *GameServer) prune() {
	finished := 0
	for _, gs := range s.GameSessions {
		if gs.State().Finished() {
			finished++
		}
	}
	kept := s.GameSessions[:0]
	for _, gs := range s.GameSessions {
		if finished > s.Settings.KeepFinished && gs.State().Finished() {
			finished--
			continue
		}
		kept = append(kept, gs)
	}
	s.GameSessions = kept
}

func (gs *GameSession) State() GameSessionState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.state
}

func (gs *GameSession) setState(state GameSessionState) {
	gs.mu.Lock()
	gs.state = state
	gs.latest.State = state.Name()
	gs.mu.Unlock()
}

func (gs *GameSession) Info() SessionInfo {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.latest
}

func (gs *GameSession) publish(snap model.Snapshot) {
	gs.mu.Lock()
	gs.latest = SessionInfo{
		Id:       gs.Id,
		State:    gs.state.Name(),
		Created:  gs.Created,
		Tick:     snap.Tick,
		Elapsed:  snap.Elapsed,
		Score:    snap.Score,
		Lives:    snap.Lives,
		GameOver: snap.GameOver,
	}
	gs.mu.Unlock()
}

// Loop waits for the player connection, then runs the world until it ends.
func (gs *GameSession) Loop() {
	logger := log.WithField("session", gs.Id)
	logger.Debug("GameSession.Loop start")

	var pcr PlayerConnectRequest
	select {
	case pcr = <-gs.PlayerConnectRequests:
	case <-time.After(gs.Settings.ConnectTimeout):
		logger.Warn("GameSession.Loop no player connected")
		gs.setState(GS_ERR)
		return
	}
	ps := gs.addPlayer(pcr.Con, pcr.GameOver)
	gs.setState(GS_PLAY)
	ps.MessagesToSend <- ps.MakeGameSetupMessage()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case reason := <-gs.Errors:
			logger.Warnf("killing GS: %s", reason)
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := engine.NewRunner(gs.World)
	err := runner.Run(ctx, gs.Commands, func(snap model.Snapshot, events []engine.Event) {
		gs.publish(snap)
		mes := model.ServerMessage{Frames: []model.Snapshot{snap}}
		if snap.GameOver {
			ps.sendFinal(mes, gs.Settings.ConnectTimeout)
			return
		}
		ps.send(mes)
	})
	if err != nil {
		gs.setState(GS_ERR)
	} else {
		gs.setState(GS_OVER)
	}
	gs.publish(gs.World.Snapshot())
	logger.WithFields(log.Fields{
		"state":   gs.State().Name(),
		"score":   gs.World.Inventory.Score,
		"ticks":   gs.World.Tick,
		"dropped": ps.DebugDropped,
	}).Info("GameSession.Loop ended")
	close(ps.MessagesToSend)
}

func (gs *GameSession) fail(reason string) {
	select {
	case gs.Errors <- reason:
	default:
	}
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) *PlayerSession {
	ps := &PlayerSession{
		State:          PS_PLAY,
		Id:             uuid.New().String(),
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		Limiter:        gs.Settings.newLimiter(),
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSession = ps
	return ps
}

func (ps *PlayerSession) MakeGameSetupMessage() model.ServerMessage {
	w := ps.GameSession.World
	return model.ServerMessage{
		Setup: []model.Setup{{
			SessionId: ps.GameSession.Id,
			Cols:      w.Grid.Cols(),
			Rows:      w.Grid.Rows(),
			CellSize:  w.Tuning.CellSize,
		}},
		Frames: []model.Snapshot{w.Snapshot()},
	}
}

// send drops the frame when the writer is behind, the next one supersedes it.
func (ps *PlayerSession) send(mes model.ServerMessage) {
	select {
	case ps.MessagesToSend <- mes:
	default:
		ps.DebugDropped++
	}
}

// sendFinal waits for room in the queue so the client sees the last frame.
// It gives up after timeout.
func (ps *PlayerSession) sendFinal(mes model.ServerMessage, timeout time.Duration) bool {
	select {
	case ps.MessagesToSend <- mes:
		return true
	case <-time.After(timeout):
		ps.DebugDropped++
		return false
	}
}

// accept turns a client message into a command, or drops moves arriving
// faster than the limiter allows.
func (ps *PlayerSession) accept(cm model.ClientMessage) (engine.Command, bool) {
	if cm.Quit {
		return engine.Command{Quit: true}, true
	}
	if cm.Move == model.None {
		return engine.Command{}, false
	}
	if !ps.Limiter.Allow() {
		return engine.Command{}, false
	}
	return engine.Command{Move: cm.Move}, true
}

func (ps *PlayerSession) LoopChannelRead() {
	logger := log.WithField("session", ps.GameSession.Id)
	logger.Debug("LoopChannelRead STARTED")
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			logger.Debugf("LoopChannelRead err reading message from Conn %v", err)
			ps.GameSession.fail("player connection lost")
			break
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			logger.Warnf("LoopChannelRead cant decode %v", err)
			ps.GameSession.fail("bad client message")
			break
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		cmd, ok := ps.accept(cm)
		if !ok {
			logger.Debugf("LoopChannelRead dropped %s", cm.Move.Name())
			continue
		}
		select {
		case ps.GameSession.Commands <- cmd:
		default:
			logger.Warn("LoopChannelRead Commands FULL, dropping")
		}
	}
	logger.Debug("LoopChannelRead ENDED")
}

// LoopChannelWrite sends until MessagesToSend is closed, then closes the
// websocket politely and signals GameOver.
func (ps *PlayerSession) LoopChannelWrite() {
	logger := log.WithField("session", ps.GameSession.Id)
	defer close(ps.GameOver)
	for mes := range ps.MessagesToSend {
		if ps.State == PS_ERR {
			continue
		}
		if err := ps.write(mes); err != nil {
			logger.Warnf("PlayerSession.LoopChannelWrite %v", err)
			ps.State = PS_ERR
			ps.GameSession.fail("cannot write to player")
			continue
		}
		ps.DebugOutMessages++
	}
	if ps.State != PS_ERR {
		ps.State = PS_OVER
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
		_ = ps.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}
	logger.WithField("out", ps.DebugOutMessages).Debug("LoopChannelWrite ENDED")
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		return err
	}
	return w.Close()
}
