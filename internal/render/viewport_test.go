package render

import (
	"math/rand"
	"testing"
	"time"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/entity"
	"github.com/annel0/nodeworld/internal/observability"
	"github.com/annel0/nodeworld/internal/physics"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
	"github.com/annel0/nodeworld/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallViewport(t *testing.T) (*Viewport, *Recorder) {
	t.Helper()
	cfg := DefaultViewportConfig()
	cfg.PhotonsWide = 3
	cfg.PhotonsHigh = 3
	rec := NewRecorder(3, 3, 1, 1, 0)
	metrics, err := observability.NewMetrics("test", prometheus.NewRegistry())
	require.NoError(t, err)
	v, err := NewViewport(cfg, rec, 3, 3, rand.New(rand.NewSource(1)), metrics)
	require.NoError(t, err)
	return v, rec
}

func tickUntilIdle(v *Viewport) int {
	ticks := 0
	for v.Active() > 0 && ticks < 100 {
		v.Tick()
		ticks++
	}
	return ticks
}

func TestViewportConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultViewportConfig().Validate())

	cfg := DefaultViewportConfig()
	cfg.PhotonsWide = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultViewportConfig()
	cfg.Photon.TickInterval = time.Second
	assert.ErrorIs(t, cfg.Validate(), entity.ErrTraversalBudget)

	_, err := NewViewport(DefaultViewportConfig(), nil, 1, 1, nil, nil)
	assert.Error(t, err)
}

func TestViewport_DefaultLinesSymmetric(t *testing.T) {
	v, _ := smallViewport(t)
	assert.Equal(t, vec.NewVec3Float(-1, 1, -7), v.DefaultLine(0, 0))
	assert.Equal(t, vec.NewVec3Float(0, 0, -7), v.DefaultLine(1, 1))
	assert.Equal(t, vec.NewVec3Float(1, -1, -7), v.DefaultLine(2, 2))
	x, y := v.Center()
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}

func TestViewport_CollisionDrawsNode(t *testing.T) {
	v, rec := smallViewport(t)
	grid := world.NewGrid(3)
	target := grid.At(3, 3, 1)
	blue, err := world.NewBlock(block.BlueBlockID)
	require.NoError(t, err)
	target.AddContents(blue)

	_, err = v.Emit(1, 1, 0, 0, physics.NewPosition(grid.Center(), vec.Vec3Float{}))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Active())

	tickUntilIdle(v)
	assert.Zero(t, v.Active(), "Завершенные фотоны убраны")

	// Блок, затем туман по пройденной дистанции 3 из 9
	assert.Equal(t, draw.Empty.Blend(draw.Blue, 3.0/9.0), rec.Pixel(1, 1))
	assert.Equal(t, "(3,3,1)", rec.LabelAt(1, 1))
	assert.Same(t, target, v.Cursor().Node(), "Центральный пиксель переносит курсор")
}

func TestViewport_ExpireDrawsCurrentNode(t *testing.T) {
	v, rec := smallViewport(t)
	grid := world.NewGrid(9)
	v.Cursor().MoveTo(grid.Center())

	// Разворот назад: луч летит в +Z
	_, err := v.Emit(1, 1, 0, 180, physics.NewPosition(grid.Center(), vec.Vec3Float{}))
	require.NoError(t, err)
	ticks := tickUntilIdle(v)

	assert.Equal(t, 3, ticks, "9 единиц со скоростью 3")
	assert.Equal(t, draw.Empty, rec.Pixel(1, 1))
	assert.Nil(t, v.Cursor().Node(), "Без столкновения курсор убирается")
}

func TestViewport_LeftGraphIsBlack(t *testing.T) {
	v, rec := smallViewport(t)
	grid := world.NewGrid(1)
	rec.FillRect(draw.Rect{X: 0, Y: 0, W: 3, H: 3}, draw.Red, 1)

	_, err := v.Emit(1, 1, 0, 0, physics.NewPosition(grid.Center(), vec.Vec3Float{}))
	require.NoError(t, err)
	tickUntilIdle(v)

	assert.Equal(t, draw.Black, rec.Pixel(1, 1))
	assert.Equal(t, draw.Red, rec.Pixel(0, 0), "Остальные пиксели не тронуты")
}

func TestViewport_EmitNextCoversEveryPixel(t *testing.T) {
	v, _ := smallViewport(t)
	grid := world.NewGrid(9)
	pos := physics.NewPosition(grid.Center(), vec.Vec3Float{})

	seen := make(map[vec.Vec3Float]int)
	for i := 0; i < 9; i++ {
		p, err := v.EmitNext(0, 0, pos)
		require.NoError(t, err)
		seen[p.TickVector()]++
	}
	assert.Len(t, seen, 9, "За цикл каждый пиксель выпущен ровно один раз")
	assert.Empty(t, v.ordering)

	_, err := v.EmitNext(0, 0, pos)
	require.NoError(t, err)
	assert.Len(t, v.ordering, 8, "Новый цикл перемешан заново")
	assert.Equal(t, uint64(10), v.Emitted())
	assert.Same(t, grid.Center(), pos.Node, "Позиция камеры не сдвигается фотонами")

	_, err = v.Emit(3, 0, 0, 0, pos)
	assert.Error(t, err)
	_, err = v.EmitRandom(0, 0, pos)
	assert.NoError(t, err)
}

func TestViewport_Decay(t *testing.T) {
	v, rec := smallViewport(t)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	v.Clock = func() time.Time { return now }
	v.SetLastMoveTime(start)

	grid := world.NewGrid(1)
	_, err := v.Emit(1, 1, 0, 0, physics.NewPosition(grid.Center(), vec.Vec3Float{}))
	require.NoError(t, err)
	tickUntilIdle(v)
	require.Equal(t, draw.Black, rec.Pixel(1, 1))

	assert.Zero(t, v.Decay(start.Add(500*time.Millisecond)), "Рано затухать")
	assert.Equal(t, 1, v.Decay(start.Add(1100*time.Millisecond)))
	assert.Zero(t, v.Decay(start.Add(1200*time.Millisecond)), "Пиксель затухает один раз")

	// Игрок стоит на месте дольше 2*DecayTimeout
	_, err = v.Emit(0, 0, 0, 0, physics.NewPosition(grid.Center(), vec.Vec3Float{}))
	require.NoError(t, err)
	tickUntilIdle(v)
	assert.Zero(t, v.Decay(start.Add(5*time.Second)))
}

func TestViewport_EmptyCollisionNodePanics(t *testing.T) {
	v, _ := smallViewport(t)
	grid := world.NewGrid(1)
	p, err := entity.NewPhoton(entity.DefaultPhotonConfig(), physics.NewPosition(grid.Center(), vec.Vec3Float{}), vec.NewVec3Float(1, 0, 0))
	require.NoError(t, err)

	listener := &pixelListener{viewport: v, x: 0, y: 0}
	assert.Panics(t, func() {
		listener.OnCollision(p, physics.Collision{From: grid.Center(), To: grid.At(2, 1, 1), ExitFace: world.Right})
	})
}
