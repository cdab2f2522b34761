package physics

import (
	"fmt"

	"github.com/annel0/nodeworld/internal/world"
)

// Collision описывает остановку движения на границе узла.
// To == nil означает, что в направлении выхода у узла нет ребер.
type Collision struct {
	From      *world.Node
	To        *world.Node
	ExitFace  world.Direction // Грань, через которую пытались выйти из From
	EntryFace world.Direction // Грань входа в To; DirectionNone если не записана
}

// OutOfGraph сообщает, что движение уперлось в край графа
func (c *Collision) OutOfGraph() bool {
	return c.To == nil
}

func (c *Collision) String() string {
	if c.To == nil {
		return fmt.Sprintf("столкновение %v -> край графа (%v)", c.From, c.ExitFace)
	}
	return fmt.Sprintf("столкновение %v -> %v (%v/%v)", c.From, c.To, c.ExitFace, c.EntryFace)
}

// HaltFunc решает, останавливает ли узел-кандидат движение.
// Вызывается один раз на каждую попытку перехода.
type HaltFunc func(candidate *world.Node) bool

// NeverHalt пропускает движение через любые узлы
func NeverHalt(*world.Node) bool { return false }

// HaltAtOpaque останавливает движение перед непрозрачным узлом
func HaltAtOpaque(candidate *world.Node) bool {
	return candidate.IsOpaque()
}
