package render

import (
	"testing"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wall struct{}

func (wall) IsOpaque() bool { return true }

func (wall) Draw(c draw.Canvas, r draw.Rect) { c.FillRect(r, draw.Blue, 1) }

func label(x, y, z int) vec.Vec3 {
	return vec.Vec3{X: x, Y: y, Z: z}
}

func TestLineViewport_Corners(t *testing.T) {
	grid := world.NewGrid(5)
	lv := NewLineViewport(5)
	require.Equal(t, 11, lv.Size())

	view := lv.FindNodes(0, 0, grid.At(5, 5, 7))
	assert.Equal(t, label(5, 5, 2), view[5][5].Label, "Центр смотрит вперед")
	assert.Equal(t, label(0, 10, 2), view[0][0].Label, "Строка 0 - верх экрана")
	assert.Equal(t, label(10, 0, 2), view[10][10].Label)
	assert.Equal(t, label(0, 0, 2), view[10][0].Label)
}

func TestLineViewport_TurnRight(t *testing.T) {
	grid := world.NewGrid(5)
	lv := NewLineViewport(5)

	view := lv.FindNodes(0, 90, grid.Center())
	assert.Equal(t, label(10, 5, 5), view[5][5].Label)
	assert.Equal(t, label(10, 10, 0), view[0][0].Label, "Левая сторона экрана смотрит вперед")
}

func TestLineViewport_TiltUp(t *testing.T) {
	grid := world.NewGrid(5)
	lv := NewLineViewport(5)

	view := lv.FindNodes(-90, 0, grid.Center())
	assert.Equal(t, label(5, 10, 5), view[5][5].Label)
}

func TestLineViewport_StopsInsideOpaque(t *testing.T) {
	grid := world.NewGrid(5)
	grid.At(5, 5, 3).AddContents(wall{})
	lv := NewLineViewport(5)

	view := lv.FindNodes(0, 0, grid.At(5, 5, 7))
	assert.Same(t, grid.At(5, 5, 3), view[5][5], "Луч остался в непрозрачном узле")
}

func TestLineViewport_LeavesGraph(t *testing.T) {
	grid := world.NewGrid(5)
	lv := NewLineViewport(5)

	view := lv.FindNodes(0, 0, grid.At(5, 5, 1))
	assert.Nil(t, view[5][5], "Луч ушел за край графа")
}

func TestFollowLine_Branches(t *testing.T) {
	a := world.NewNode(label(0, 0, 0))
	b := world.NewNode(label(1, 0, 0))
	c := world.NewNode(label(1, 1, 0))
	d := world.NewNode(label(2, 0, 0))
	a.AddAdjacency(world.Right, b)
	a.AddAdjacency(world.Right, c)
	b.AddAdjacency(world.Right, d)
	c.AddContents(wall{})

	nodes := FollowLine(a, []world.Direction{world.Right, world.Right})
	assert.ElementsMatch(t, []*world.Node{d, c}, nodes, "Обе ветви прослежены")
}

func TestLineViewport_Render(t *testing.T) {
	grid := world.NewGrid(5)
	grid.At(5, 5, 3).AddContents(wall{})
	lv := NewLineViewport(5)
	rec := NewRecorder(11, 11, 1, 1, 0)

	lv.Render(rec, 11, 11, 0, 0, grid.At(5, 5, 7))
	assert.Equal(t, draw.Blue, rec.Pixel(5, 5))
	assert.Equal(t, "(5,5,3)", rec.LabelAt(5, 5))
	assert.Equal(t, draw.Empty, rec.Pixel(0, 0))

	rec = NewRecorder(11, 11, 1, 1, 0)
	lv.Render(rec, 11, 11, 0, 0, grid.At(5, 5, 1))
	assert.Equal(t, draw.Black, rec.Pixel(5, 5), "Край графа - черный")
}

func TestLineViewport_ExactMode(t *testing.T) {
	grid := world.NewGrid(5)
	lv := NewLineViewport(5)
	lv.Mode = LineExact

	lines := lv.Lines(0, 0)
	assert.Equal(t, []world.Direction{world.Forward, world.Forward, world.Forward, world.Forward, world.Forward}, lines[5][5])
	assert.Len(t, lines[0][0], 15, "Угловой луч проходит через ребра: шаг по каждой оси")

	nodes := lv.FindNodes(0, 0, grid.At(5, 5, 7))
	assert.Equal(t, label(5, 5, 2), nodes[5][5].Label)
	assert.Equal(t, label(0, 10, 2), nodes[0][0].Label)
}

func TestParseLineMode(t *testing.T) {
	mode, err := ParseLineMode("")
	require.NoError(t, err)
	assert.Equal(t, LineRescale, mode)

	mode, err = ParseLineMode("exact")
	require.NoError(t, err)
	assert.Equal(t, LineExact, mode)

	_, err = ParseLineMode("spiral")
	assert.Error(t, err)
}
