package game

import "golang.org/x/image/math/f64"

// Input is the abstract control surface for one tick. Pressed holds tokens
// that went down this tick (edge-triggered). Without HasPointer the player
// keeps walking to the last known pointer position.
type Input struct {
	Pointer    f64.Vec2
	HasPointer bool
	Pressed    []Token
}

// PointerInput builds an Input aimed at p.
func PointerInput(p f64.Vec2, pressed ...Token) Input {
	return Input{Pointer: p, HasPointer: true, Pressed: pressed}
}

// JustPressed reports whether t went down this tick.
func (in Input) JustPressed(t Token) bool {
	for _, p := range in.Pressed {
		if p == t {
			return true
		}
	}
	return false
}
