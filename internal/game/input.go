package game

import "github.com/annel0/nodeworld/internal/vec"

// MoveKey клавиша движения
type MoveKey uint8

const (
	KeyForward MoveKey = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

var keyNames = [...]string{"вперед", "назад", "влево", "вправо", "вверх", "вниз"}

func (k MoveKey) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "?"
}

// Направления клавиш в системе камеры
var keyDirections = map[MoveKey]vec.Vec3Float{
	KeyForward:  {X: 0, Y: 0, Z: -1},
	KeyBackward: {X: 0, Y: 0, Z: 1},
	KeyLeft:     {X: -1, Y: 0, Z: 0},
	KeyRight:    {X: 1, Y: 0, Z: 0},
	KeyUp:       {X: 0, Y: 1, Z: 0},
	KeyDown:     {X: 0, Y: -1, Z: 0},
}

// InputKind тип входного события
type InputKind uint8

const (
	InputKeyPress InputKind = iota
	InputKeyRelease
	InputLook
	InputResize
	InputQuit
)

// Input событие ввода для игрового цикла
type Input struct {
	Kind   InputKind
	Key    MoveKey
	DX, DY float64 // Для InputLook
	Width  float64 // Для InputResize
	Height float64
}
