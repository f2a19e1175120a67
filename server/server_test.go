package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/way"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fortknox/model"
	"golang.org/x/time/rate"
)

func corridorModel(panthers ...model.PantherSpawn) func() (*model.Model, error) {
	return func() (*model.Model, error) {
		g, err := model.NewGrid([][]model.CellCode{
			{model.Wall, model.Wall, model.Wall, model.Wall, model.Wall, model.Wall},
			{model.Wall, model.Path, model.Gold, model.Path, model.Path, model.Wall},
			{model.Wall, model.Wall, model.Wall, model.Wall, model.Wall, model.Wall},
		})
		if err != nil {
			return nil, err
		}
		m := model.NewModel(g, 1, 1)
		m.Panthers = panthers
		return m, nil
	}
}

type fixture struct {
	gs   *GameServer
	http *httptest.Server
	url  string
}

func start(t *testing.T, settings Settings, newModel func() (*model.Model, error)) *fixture {
	t.Helper()
	gs := NewGameServer(settings, newModel)
	ctx, cancel := context.WithCancel(context.Background())
	go gs.Loop(ctx)

	router := way.NewRouter()
	router.HandleFunc("GET", "/play", gs.HandlePlay())
	router.HandleFunc("GET", "/sessions", gs.HandleSessions())
	router.HandleFunc("GET", "/sessions/:id", gs.HandleSession())
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &fixture{gs: gs, http: srv, url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/play"}
}

func testSettings() Settings {
	s := DefaultSettings()
	s.RequestTimeout = time.Second
	return s
}

// waitFrame reads frames until ok accepts one.
func waitFrame(t *testing.T, c *Client, ok func(model.Snapshot) bool) model.Snapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case f := <-c.Frames:
			if ok(f) {
				return f
			}
		case <-c.Done:
			t.Fatalf("connection ended early: %v", c.Err())
		case <-deadline:
			t.Fatal("no matching frame")
		}
	}
}

func TestPlay(t *testing.T) {
	f := start(t, testSettings(), corridorModel())
	c, err := Dial(context.Background(), f.url)
	require.NoError(t, err)
	defer c.Close()

	assert.NotEmpty(t, c.Setup.SessionId)
	assert.Equal(t, 6, c.Setup.Cols)
	assert.Equal(t, 3, c.Setup.Rows)
	assert.Equal(t, 25.0, c.Setup.CellSize)
	assert.Equal(t, 27.5, c.First.Player.X)

	require.NoError(t, c.Send(model.Right))
	snap := waitFrame(t, c, func(s model.Snapshot) bool { return s.Carrying })
	assert.Equal(t, model.Path, snap.Cells[1][2])

	require.NoError(t, c.Quit())
	select {
	case <-c.Done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not close after quit")
	}
	assert.NoError(t, c.Err())
}

func TestPlayUntilGameOver(t *testing.T) {
	settings := testSettings()
	settings.Tuning.Lives = 1
	f := start(t, settings, corridorModel(model.PantherSpawn{Col: 1, Row: 1, DX: 1}))

	c, err := Dial(context.Background(), f.url)
	require.NoError(t, err)
	defer c.Close()

	snap := waitFrame(t, c, func(s model.Snapshot) bool { return s.GameOver })
	assert.Zero(t, snap.Lives)
	select {
	case <-c.Done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not close after game over")
	}

	infos := getSessions(t, f.http.URL+"/sessions/"+c.Setup.SessionId)
	require.Len(t, infos, 1)
	assert.Equal(t, "GS_OVER", infos[0].State)
	assert.True(t, infos[0].GameOver)
}

func getSessions(t *testing.T, url string) []SessionInfo {
	t.Helper()
	var infos []SessionInfo
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		defer resp.Body.Close()
		if strings.HasSuffix(url, "/sessions") {
			infos = nil
			return json.NewDecoder(resp.Body).Decode(&infos) == nil
		}
		var info SessionInfo
		if json.NewDecoder(resp.Body).Decode(&info) != nil {
			return false
		}
		infos = []SessionInfo{info}
		return info.State == "GS_OVER"
	}, 5*time.Second, 20*time.Millisecond)
	return infos
}

func TestSessions(t *testing.T) {
	f := start(t, testSettings(), corridorModel())
	c, err := Dial(context.Background(), f.url)
	require.NoError(t, err)
	defer c.Close()

	infos := getSessions(t, f.http.URL+"/sessions")
	require.Len(t, infos, 1)
	assert.Equal(t, c.Setup.SessionId, infos[0].Id)
	assert.Equal(t, 3, infos[0].Lives)

	resp, err := http.Get(f.http.URL + "/sessions/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayBadModel(t *testing.T) {
	f := start(t, testSettings(), func() (*model.Model, error) {
		return nil, errors.New("no maze")
	})
	_, err := Dial(context.Background(), f.url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 400")
}

func TestAcceptThrottlesMoves(t *testing.T) {
	ps := &PlayerSession{Limiter: rate.NewLimiter(rate.Every(time.Hour), 2)}

	accepted := 0
	for i := 0; i < 5; i++ {
		if cmd, ok := ps.accept(model.ClientMessage{Move: model.Left}); ok {
			assert.Equal(t, model.Left, cmd.Move)
			accepted++
		}
	}
	assert.Equal(t, 2, accepted)

	cmd, ok := ps.accept(model.ClientMessage{Quit: true})
	assert.True(t, ok, "quit is never throttled")
	assert.True(t, cmd.Quit)

	_, ok = ps.accept(model.ClientMessage{})
	assert.False(t, ok)
}

func TestSendFinalWaitsForRoom(t *testing.T) {
	ps := &PlayerSession{MessagesToSend: make(chan model.ServerMessage, 1)}
	ps.send(model.ServerMessage{Frames: []model.Snapshot{{Tick: 1}}})
	ps.send(model.ServerMessage{Frames: []model.Snapshot{{Tick: 2}}})
	assert.Equal(t, 1, ps.DebugDropped, "ordinary frames drop when full")

	go func() {
		time.Sleep(50 * time.Millisecond)
		<-ps.MessagesToSend
	}()
	ok := ps.sendFinal(model.ServerMessage{Frames: []model.Snapshot{{Tick: 3, GameOver: true}}}, 5*time.Second)
	require.True(t, ok)
	last := <-ps.MessagesToSend
	assert.True(t, last.Frames[0].GameOver)
	assert.Equal(t, 1, ps.DebugDropped)
}

func TestSendFinalTimesOut(t *testing.T) {
	ps := &PlayerSession{MessagesToSend: make(chan model.ServerMessage)}
	ok := ps.sendFinal(model.ServerMessage{}, 20*time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, 1, ps.DebugDropped)
}

func TestResponseCodes(t *testing.T) {
	assert.Equal(t, 200, GAME_READY.ToHttp())
	assert.Equal(t, 404, GAME_NOT_FOUND.ToHttp())
	assert.Equal(t, 400, GAME_INVALID.ToHttp())
	assert.Equal(t, 408, GAME_TIMEOUT.ToHttp())
	assert.Equal(t, 503, GAME_UNAVAILABLE.ToHttp())
	assert.Equal(t, 500, ResponseCode(42).ToHttp())
	assert.Equal(t, "GS_PLAY", GS_PLAY.Name())
	assert.True(t, GS_OVER.Finished())
	assert.False(t, GS_NEW.Finished())
}

func TestPrune(t *testing.T) {
	s := NewGameServer(Settings{KeepFinished: 1}, corridorModel())
	for i, state := range []GameSessionState{GS_OVER, GS_PLAY, GS_ERR, GS_OVER} {
		gs := &GameSession{Id: string(rune('a' + i))}
		gs.setState(state)
		s.GameSessions = append(s.GameSessions, gs)
	}
	s.prune()
	ids := make([]string, 0)
	for _, gs := range s.GameSessions {
		ids = append(ids, gs.Id)
	}
	assert.Equal(t, []string{"b", "d"}, ids)
}
