package physics

import (
	"math"

	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
)

// Epsilon порог, ниже которого компонента вектора считается нулевой
var Epsilon = math.Pow(2, -50)

// Position узел графа плюс дробное смещение внутри него.
// Каждая компонента Offset лежит в [-1, 1]; узел имеет ширину 2.
type Position struct {
	Node    *world.Node
	Offset  vec.Vec3Float
	Chooser world.Chooser // Выбор среди нескольких ребер; nil - случайно
}

// NewPosition создаёт позицию в узле
func NewPosition(node *world.Node, offset vec.Vec3Float) *Position {
	return &Position{Node: node, Offset: offset}
}

// Clone возвращает независимую копию
func (p *Position) Clone() *Position {
	clone := *p
	return &clone
}

// MoveResult итог AddVector.
// Если Collision == nil, движение завершено и LastApplied - последний
// отрезок, пройденный внутри конечного узла (в его системе координат).
// Иначе Remaining - непройденная часть вектора.
type MoveResult struct {
	LastApplied vec.Vec3Float
	Remaining   vec.Vec3Float
	Collision   *Collision
	Transitions int // Сколько переходов между узлами совершено
}

// Collided сообщает, было ли столкновение
func (r MoveResult) Collided() bool {
	return r.Collision != nil
}

// AddVector сдвигает позицию на вектор, переходя между узлами,
// пока вектор не исчерпан или переход не запрещен halt.
// При переходе по скрученному ребру смещение и остаток вектора
// поворачиваются в систему координат нового узла.
func (p *Position) AddVector(displacement vec.Vec3Float, halt HaltFunc) MoveResult {
	if halt == nil {
		halt = NeverHalt
	}

	current := displacement
	transitions := 0
	for {
		exit, remaining, crossed := p.advanceWithinNode(current)
		if !crossed {
			return MoveResult{LastApplied: current, Transitions: transitions}
		}

		edge, ok := p.Node.RandomOutEdge(exit, p.Chooser)
		if !ok {
			return MoveResult{
				Remaining:   remaining,
				Collision:   &Collision{From: p.Node, ExitFace: exit},
				Transitions: transitions,
			}
		}
		if halt(edge.Destination) {
			return MoveResult{
				Remaining: remaining,
				Collision: &Collision{
					From:      p.Node,
					To:        edge.Destination,
					ExitFace:  exit,
					EntryFace: edge.InEdge,
				},
				Transitions: transitions,
			}
		}

		// Вход через грань, зеркальную выходу, затем поворот
		axis := exit.Axis()
		entry := 1.0
		if exit.Positive() {
			entry = -1.0
		}
		p.Offset = p.Offset.WithAxis(axis, entry)
		if edge.InEdge != world.DirectionNone && edge.InEdge != exit.Opposite() {
			p.Offset = Rotate(exit, edge.InEdge, p.Offset)
			remaining = Rotate(exit, edge.InEdge, remaining)
		}
		p.Node = edge.Destination
		transitions++
		current = remaining
	}
}

// advanceWithinNode проходит максимально возможную часть v внутри
// текущего узла. Если достигнута грань, возвращает направление выхода
// и непройденный остаток.
func (p *Position) advanceWithinNode(v vec.Vec3Float) (world.Direction, vec.Vec3Float, bool) {
	minScalar := 1.0
	minAxis := -1
	for axis := 0; axis < 3; axis++ {
		component := v.Axis(axis)
		if math.Abs(component) < Epsilon {
			continue
		}
		targetFace := 1.0
		if component < 0 {
			targetFace = -1.0
		}
		scalar := (targetFace - p.Offset.Axis(axis)) / component
		if scalar < 0 {
			scalar = 0
		}
		if scalar < minScalar {
			minScalar = scalar
			minAxis = axis
		}
	}

	applied := v.Scale(minScalar)
	p.Offset = clampOffset(p.Offset.Add(applied))
	if minAxis == -1 {
		return world.DirectionNone, vec.Vec3Float{}, false
	}

	// Ось выхода ровно на грани, без накопленной погрешности
	if v.Axis(minAxis) > 0 {
		p.Offset = p.Offset.WithAxis(minAxis, 1)
	} else {
		p.Offset = p.Offset.WithAxis(minAxis, -1)
	}
	exit := world.DirectionFromAxis(minAxis, v.Axis(minAxis) >= 0)
	return exit, v.Sub(applied), true
}

func clampOffset(v vec.Vec3Float) vec.Vec3Float {
	for axis := 0; axis < 3; axis++ {
		value := v.Axis(axis)
		if value > 1 {
			v = v.WithAxis(axis, 1)
		} else if value < -1 {
			v = v.WithAxis(axis, -1)
		}
	}
	return v
}

// Rotate переводит вектор из системы координат узла, из которого вышли
// через exit, в систему узла, в который вошли через entry.
//
// Вход через противоположную грань не меняет вектор. Вход через ту же
// грань отражает компоненту по ее оси. Иначе компоненты двух осей
// меняются местами, и одна из них меняет знак.
func Rotate(exit, entry world.Direction, v vec.Vec3Float) vec.Vec3Float {
	if entry == exit.Opposite() {
		return v
	}
	index := exit.Axis()
	if exit == entry {
		return v.WithAxis(index, -v.Axis(index))
	}
	index2 := entry.Axis()

	result := v.WithAxis(index, v.Axis(index2)).WithAxis(index2, v.Axis(index))
	negate := index
	if exit.Positive() == entry.Positive() {
		negate = index2
	}
	return result.WithAxis(negate, -result.Axis(negate))
}
