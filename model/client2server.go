package model

type ClientMessage struct {
	Move Direction
	Quit bool
}
