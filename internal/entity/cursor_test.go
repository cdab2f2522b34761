package entity

import (
	"testing"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
	"github.com/stretchr/testify/assert"
)

type strokeRecorder struct {
	strokes []draw.Color
}

func (s *strokeRecorder) FillRect(r draw.Rect, c draw.Color, alpha float64) {}
func (s *strokeRecorder) StrokeRect(r draw.Rect, c draw.Color)              { s.strokes = append(s.strokes, c) }
func (s *strokeRecorder) Label(r draw.Rect, text string)                    {}

func TestCursor_MoveTo(t *testing.T) {
	a := world.NewNode(vec.Vec3{X: 0})
	b := world.NewNode(vec.Vec3{X: 1})
	c := NewCursor()

	c.MoveTo(a)
	assert.Same(t, a, c.Node())
	assert.Equal(t, 1, a.ContentCount())
	assert.False(t, a.IsOpaque(), "Курсор прозрачен")

	c.MoveTo(a)
	assert.Equal(t, 1, a.ContentCount(), "Повторный перенос в тот же узел")

	c.MoveTo(b)
	assert.Zero(t, a.ContentCount(), "Курсор ушел из старого узла")
	assert.Equal(t, 1, b.ContentCount())

	c.MoveTo(nil)
	assert.Nil(t, c.Node())
	assert.Zero(t, b.ContentCount())
}

func TestCursor_Draw(t *testing.T) {
	rec := &strokeRecorder{}
	NewCursor().Draw(rec, draw.Rect{W: 1, H: 1})
	assert.Equal(t, []draw.Color{draw.Black}, rec.strokes)
}
