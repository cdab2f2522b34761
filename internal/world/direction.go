package world

import (
	"fmt"

	"github.com/annel0/nodeworld/internal/vec"
)

// Direction одно из шести направлений ребер графа.
// Нулевое значение DirectionNone означает "не задано".
type Direction uint8

const (
	DirectionNone Direction = iota
	Forward                 // -Z
	Backward                // +Z
	Up                      // +Y
	Down                    // -Y
	Left                    // -X
	Right                   // +X
)

// Directions перечисляет все шесть направлений в стабильном порядке
var Directions = [6]Direction{Forward, Backward, Up, Down, Left, Right}

var directionNames = map[Direction]string{
	DirectionNone: "none",
	Forward:       "forward",
	Backward:      "backward",
	Up:            "up",
	Down:          "down",
	Left:          "left",
	Right:         "right",
}

// String возвращает имя направления
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Valid проверяет, что это одно из шести направлений
func (d Direction) Valid() bool {
	return d >= Forward && d <= Right
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	switch d {
	case Forward:
		return Backward
	case Backward:
		return Forward
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return DirectionNone
}

// Axis возвращает индекс оси: 0 = X (лево/право), 1 = Y (верх/низ), 2 = Z (вперед/назад)
func (d Direction) Axis() int {
	switch d {
	case Left, Right:
		return 0
	case Up, Down:
		return 1
	case Forward, Backward:
		return 2
	}
	panic(fmt.Sprintf("world: у направления %v нет оси", d))
}

// Positive сообщает, смотрит ли направление в положительную сторону своей оси
func (d Direction) Positive() bool {
	return d == Right || d == Up || d == Backward
}

// Unit возвращает единичный вектор направления
func (d Direction) Unit() vec.Vec3Float {
	sign := -1.0
	if d.Positive() {
		sign = 1
	}
	return vec.Vec3Float{}.WithAxis(d.Axis(), sign)
}

// DirectionFromAxis возвращает направление по оси и знаку
func DirectionFromAxis(axis int, positive bool) Direction {
	switch axis {
	case 0:
		if positive {
			return Right
		}
		return Left
	case 1:
		if positive {
			return Up
		}
		return Down
	case 2:
		if positive {
			return Backward
		}
		return Forward
	}
	panic(fmt.Sprintf("world: нет направления для оси %d", axis))
}

// DirectionFromUnit возвращает направление для единичного вектора вдоль оси
func DirectionFromUnit(v vec.Vec3Float) (Direction, error) {
	switch {
	case v.X == 1 && v.Y == 0 && v.Z == 0:
		return Right, nil
	case v.X == -1 && v.Y == 0 && v.Z == 0:
		return Left, nil
	case v.Y == 1 && v.X == 0 && v.Z == 0:
		return Up, nil
	case v.Y == -1 && v.X == 0 && v.Z == 0:
		return Down, nil
	case v.Z == 1 && v.X == 0 && v.Y == 0:
		return Backward, nil
	case v.Z == -1 && v.X == 0 && v.Y == 0:
		return Forward, nil
	}
	return DirectionNone, fmt.Errorf("world: вектор %v не является единичным вдоль оси", v)
}
