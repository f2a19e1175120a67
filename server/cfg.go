package server

import (
	"time"

	"github.com/zucenko/fortknox/config"
	"github.com/zucenko/fortknox/engine"
	"golang.org/x/time/rate"
)

type Settings struct {
	// RequestTimeout bounds each handshake with the server and session loops.
	RequestTimeout time.Duration
	// ConnectTimeout is how long a new session waits for its websocket.
	ConnectTimeout time.Duration
	CommandRate    float64
	CommandBurst   int
	// KeepFinished is how many ended sessions stay listed.
	KeepFinished int
	Tuning       engine.Tuning
}

func DefaultSettings() Settings {
	return Settings{
		RequestTimeout: 200 * time.Millisecond,
		ConnectTimeout: 5 * time.Second,
		CommandRate:    20,
		CommandBurst:   4,
		KeepFinished:   50,
		Tuning:         engine.DefaultTuning(),
	}
}

// SettingsFrom takes tuning and throttling from c and keeps the rest default.
func SettingsFrom(c config.Config) Settings {
	s := DefaultSettings()
	s.CommandRate = c.CommandRate
	s.Tuning = c.Tuning()
	return s
}

func (s Settings) newLimiter() *rate.Limiter {
	burst := s.CommandBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(s.CommandRate), burst)
}
