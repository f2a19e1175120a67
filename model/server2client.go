package model

import "time"

type ServerMessage struct {
	Setup  []Setup
	Frames []Snapshot
}

type Setup struct {
	SessionId  string
	Cols, Rows int
	CellSize   float64
}

type EntityView struct {
	X, Y, W, H float64
	Facing     Direction
	Moving     bool
	Disabled   bool
}

// Snapshot is what a renderer needs to draw one frame.
type Snapshot struct {
	Tick     uint64
	Elapsed  time.Duration
	CellSize float64
	Cells    [][]CellCode
	Player   EntityView
	Panthers []EntityView
	Score    int
	Lives    int
	Carrying bool
	GameOver bool
}
