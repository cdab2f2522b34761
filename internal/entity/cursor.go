package entity

import (
	"sync"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world"
)

// Cursor прозрачная метка узла под центром экрана
type Cursor struct {
	mu   sync.Mutex
	node *world.Node
}

// NewCursor создаёт курсор вне графа
func NewCursor() *Cursor {
	return &Cursor{}
}

// IsOpaque курсор никогда не загораживает обзор
func (c *Cursor) IsOpaque() bool { return false }

// Draw обводит прямоугольник черным
func (c *Cursor) Draw(canvas draw.Canvas, r draw.Rect) {
	canvas.StrokeRect(r, draw.Black)
}

// MoveTo переносит курсор в узел. nil убирает курсор из графа.
func (c *Cursor) MoveTo(node *world.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.node == node {
		return
	}
	if c.node != nil {
		c.node.RemoveContents(c)
	}
	c.node = node
	if node != nil {
		node.AddContents(c)
	}
}

// Node возвращает узел курсора или nil
func (c *Cursor) Node() *world.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.node
}
