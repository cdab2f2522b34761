package physics

import (
	"math"
	"testing"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func v3(x, y, z float64) vec.Vec3Float {
	return vec.NewVec3Float(x, y, z)
}

func assertVec(t *testing.T, expected, actual vec.Vec3Float, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, expected.ApproxEqual(actual, tolerance),
		append([]interface{}{"ожидалось %v, получено %v", expected, actual}, msgAndArgs...)...)
}

type opaqueEntity struct{}

func (opaqueEntity) IsOpaque() bool { return true }

func (opaqueEntity) Draw(c draw.Canvas, r draw.Rect) {}

func TestRotate_RightToUp(t *testing.T) {
	assert.Equal(t, v3(0, -1, 0), Rotate(world.Right, world.Up, v3(1, 0, 0)))
	assert.Equal(t, v3(1, 0, 0), Rotate(world.Right, world.Up, v3(0, 1, 0)))
	assert.Equal(t, v3(0, 0, 1), Rotate(world.Right, world.Up, v3(0, 0, 1)))
}

func TestRotate_Properties(t *testing.T) {
	v := v3(0.3, -1.7, 2.5)
	for _, exit := range world.Directions {
		assert.Equal(t, v, Rotate(exit, exit.Opposite(), v), "Вход с противоположной грани не поворачивает (%v)", exit)

		reflected := Rotate(exit, exit, v)
		axis := exit.Axis()
		assert.Equal(t, -v.Axis(axis), reflected.Axis(axis), "Отражение по оси %v", exit)

		for _, entry := range world.Directions {
			rotated := Rotate(exit, entry, v)
			assert.InDelta(t, v.Length(), rotated.Length(), tolerance, "Длина сохраняется (%v -> %v)", exit, entry)
			assertVec(t, v, Rotate(entry, exit, rotated), "Обратный переход возвращает вектор (%v -> %v)", exit, entry)
		}
	}
}

func TestAddVector_NoRotationHappyPath(t *testing.T) {
	grid := world.NewGrid(1)
	p := NewPosition(grid.Center(), v3(0.1, 0.1, 0.1))
	displacement := v3(1.4, 1.5, 1.6)

	result := p.AddVector(displacement, NeverHalt)
	require.False(t, result.Collided())

	// Последний отрезок коллинеарен исходному вектору
	ratio := result.LastApplied.X / displacement.X
	assert.InDelta(t, ratio, result.LastApplied.Y/displacement.Y, 0.01)
	assert.InDelta(t, ratio, result.LastApplied.Z/displacement.Z, 0.01)

	expected := world.Walk(world.Walk(world.Walk(grid.Center(), world.Backward, 1), world.Up, 1), world.Right, 1)
	assert.Same(t, expected, p.Node)
	assert.Equal(t, 3, result.Transitions)
	assertVec(t, v3(-0.5, -0.4, -0.3), p.Offset)
}

func TestAddVector_NearEdges(t *testing.T) {
	grid := world.NewGrid(1)
	p := NewPosition(grid.Center(), v3(0.1, 0.1, 0.1))

	result := p.AddVector(v3(1, 1, 1), NeverHalt)
	require.False(t, result.Collided())
	assert.Same(t, grid.At(2, 2, 2), p.Node)
	assertVec(t, v3(-0.9, -0.9, -0.9), p.Offset)
}

func TestAddVector_Rounds(t *testing.T) {
	grid := world.NewGrid(1)
	p := NewPosition(grid.Center(), vec.Vec3Float{})

	result := p.AddVector(v3(1.1, 0, 0), NeverHalt)
	require.False(t, result.Collided())
	assertVec(t, v3(0.1, 0, 0), result.LastApplied)
	assert.Same(t, grid.At(2, 1, 1), p.Node)
}

func TestAddVector_WithinNode(t *testing.T) {
	grid := world.NewGrid(1)
	p := NewPosition(grid.Center(), vec.Vec3Float{})
	displacement := v3(0.5, -0.25, 0.9)

	result := p.AddVector(displacement, NeverHalt)
	assert.False(t, result.Collided())
	assert.Equal(t, displacement, result.LastApplied, "Без переходов применен весь вектор")
	assert.Zero(t, result.Transitions)
	assert.Same(t, grid.Center(), p.Node)
	assertVec(t, displacement, p.Offset)

	zero := p.AddVector(vec.Vec3Float{}, NeverHalt)
	assert.False(t, zero.Collided())
	assert.Same(t, grid.Center(), p.Node)
}

// Узел имеет ширину 2: смещение от -1 до 1
func TestAddVector_Magnitude(t *testing.T) {
	grid := world.NewGrid(4)

	p := NewPosition(grid.Center(), vec.Vec3Float{})
	p.AddVector(v3(0.5, 0.5, 0.5), NeverHalt)
	p.AddVector(v3(4, 0, 0), NeverHalt)
	assert.Equal(t, vec.Vec3{X: 6, Y: 4, Z: 4}, p.Node.Label)

	p2 := NewPosition(grid.Center(), vec.Vec3Float{})
	p2.AddVector(v3(0.5, 0.5, 0.5), NeverHalt)
	p2.AddVector(v3(-4, -2, -2), NeverHalt)
	assert.Equal(t, vec.Vec3{X: 2, Y: 3, Z: 3}, p2.Node.Label)
	p2.AddVector(v3(1, 0, 0), NeverHalt)
	assert.Equal(t, vec.Vec3{X: 3, Y: 3, Z: 3}, p2.Node.Label)
}

func TestAddVector_GraphBoundary(t *testing.T) {
	grid := world.NewGrid(0)
	p := NewPosition(grid.Center(), vec.Vec3Float{})

	result := p.AddVector(v3(5, 0, 0), NeverHalt)
	require.True(t, result.Collided())
	assert.True(t, result.Collision.OutOfGraph())
	assert.Same(t, grid.Center(), result.Collision.From)
	assert.Equal(t, world.Right, result.Collision.ExitFace)
	assertVec(t, v3(4, 0, 0), result.Remaining)
	assert.Equal(t, 1.0, p.Offset.X, "Позиция остановилась на грани")
}

func TestAddVector_HaltAtOpaque(t *testing.T) {
	grid := world.NewGrid(1)
	wall := grid.At(2, 1, 1)
	wall.AddContents(opaqueEntity{})

	p := NewPosition(grid.Center(), vec.Vec3Float{})
	result := p.AddVector(v3(3, 0, 0), HaltAtOpaque)
	require.True(t, result.Collided())
	assert.Same(t, grid.Center(), result.Collision.From)
	assert.Same(t, wall, result.Collision.To)
	assert.Equal(t, world.Right, result.Collision.ExitFace)
	assert.Equal(t, world.Left, result.Collision.EntryFace)
	assertVec(t, v3(2, 0, 0), result.Remaining)
	assert.Same(t, grid.Center(), p.Node)

	// Налево ребро без записанной грани входа
	p = NewPosition(grid.Center(), vec.Vec3Float{})
	grid.At(0, 1, 1).AddContents(opaqueEntity{})
	result = p.AddVector(v3(-3, 0, 0), HaltAtOpaque)
	require.True(t, result.Collided())
	assert.Equal(t, world.DirectionNone, result.Collision.EntryFace)
}

func TestAddVector_HaltCalledOncePerTransition(t *testing.T) {
	grid := world.NewGrid(4)
	p := NewPosition(grid.Center(), vec.Vec3Float{})

	var visited []*world.Node
	result := p.AddVector(v3(4, 0, 0), func(n *world.Node) bool {
		visited = append(visited, n)
		return false
	})
	require.False(t, result.Collided())
	assert.Equal(t, []*world.Node{grid.At(5, 4, 4), grid.At(6, 4, 4)}, visited)
	assert.Equal(t, 2, result.Transitions)
}

func TestAddVector_StartOnFace(t *testing.T) {
	grid := world.NewGrid(1)
	p := NewPosition(grid.Center(), v3(1, 0, 0))

	result := p.AddVector(v3(0.5, 0, 0), NeverHalt)
	require.False(t, result.Collided())
	assert.Same(t, grid.At(2, 1, 1), p.Node, "С грани переход происходит сразу")
	assertVec(t, v3(-0.5, 0, 0), p.Offset)
}

func TestAddVector_TwistedEdge(t *testing.T) {
	a := world.NewNode(vec.Vec3{X: 0})
	b := world.NewNode(vec.Vec3{X: 1})
	a.AddTwistedAdjacency(world.Right, b, world.Up)

	p := NewPosition(a, vec.Vec3Float{})
	result := p.AddVector(v3(2, 0, 0), NeverHalt)
	require.False(t, result.Collided())
	assert.Same(t, b, p.Node)
	assertVec(t, v3(0, -1, 0), result.LastApplied, "Остаток повернут в систему b")
	assertVec(t, vec.Vec3Float{}, p.Offset)

	// Обратно через верхнюю грань b
	result = p.AddVector(v3(0, 2, 0), NeverHalt)
	require.False(t, result.Collided())
	assert.Same(t, a, p.Node)
	assertVec(t, v3(-1, 0, 0), result.LastApplied)
	assertVec(t, vec.Vec3Float{}, p.Offset)
}

func TestAddVector_TwistedOffsetLandsOnEntryFace(t *testing.T) {
	a := world.NewNode(vec.Vec3{X: 0})
	b := world.NewNode(vec.Vec3{X: 1})
	a.AddTwistedAdjacency(world.Right, b, world.Up)

	p := NewPosition(a, v3(0.5, 0.2, -0.3))
	p.AddVector(v3(0.6, 0, 0), NeverHalt)
	require.Same(t, b, p.Node)
	assertVec(t, v3(0.2, 0.9, -0.3), p.Offset, "Вход через верхнюю грань и спуск вниз")
}

func TestAddVector_Reflection(t *testing.T) {
	a := world.NewNode(vec.Vec3{X: 0})
	b := world.NewNode(vec.Vec3{X: 1})
	a.AddTwistedAdjacency(world.Right, b, world.Right)

	p := NewPosition(a, vec.Vec3Float{})
	result := p.AddVector(v3(2, 0, 0), NeverHalt)
	require.False(t, result.Collided())
	assert.Same(t, b, p.Node)
	assertVec(t, v3(-1, 0, 0), result.LastApplied)
	assertVec(t, vec.Vec3Float{}, p.Offset)
}

func TestAddVector_BranchUsesChooser(t *testing.T) {
	a := world.NewNode(vec.Vec3{X: 0})
	b := world.NewNode(vec.Vec3{X: 1})
	c := world.NewNode(vec.Vec3{X: 2})
	a.AddAdjacency(world.Right, b)
	a.AddAdjacency(world.Right, c)

	p := NewPosition(a, vec.Vec3Float{})
	p.Chooser = func(n int) int { return n - 1 }
	result := p.AddVector(v3(1.5, 0, 0), NeverHalt)
	require.False(t, result.Collided())
	assert.Same(t, c, p.Node)

	// Любой из вариантов допустим при случайном выборе
	p = NewPosition(a, vec.Vec3Float{})
	p.AddVector(v3(1.5, 0, 0), NeverHalt)
	assert.Contains(t, []*world.Node{b, c}, p.Node)
}

func TestAddVector_OffsetStaysInBounds(t *testing.T) {
	grid := world.NewGrid(3)
	p := NewPosition(grid.Center(), vec.Vec3Float{})
	steps := []vec.Vec3Float{v3(0.7, -0.3, 0.11), v3(-1.9, 0.4, 2.3), v3(0.01, 1.99, -0.5)}

	for i := 0; i < 20; i++ {
		step := steps[i%len(steps)]
		p.AddVector(step, NeverHalt)
		for axis := 0; axis < 3; axis++ {
			value := p.Offset.Axis(axis)
			assert.False(t, math.IsNaN(value))
			assert.LessOrEqual(t, math.Abs(value), 1.0, "Смещение в пределах узла")
		}
	}
}

func TestPosition_Clone(t *testing.T) {
	grid := world.NewGrid(1)
	p := NewPosition(grid.Center(), v3(0.1, 0, 0))
	clone := p.Clone()
	clone.AddVector(v3(2, 0, 0), NeverHalt)

	assert.Same(t, grid.Center(), p.Node)
	assert.Equal(t, v3(0.1, 0, 0), p.Offset)
	assert.NotSame(t, p.Node, clone.Node)
}
