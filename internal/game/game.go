package game

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/annel0/nodeworld/internal/logging"
	"github.com/annel0/nodeworld/internal/observability"
	"github.com/annel0/nodeworld/internal/physics"
	"github.com/annel0/nodeworld/internal/render"
	"github.com/annel0/nodeworld/internal/vec"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	maxPitch = 89
	yawWrap  = 181
)

// Presenter выводит накопленный на холсте кадр
type Presenter interface {
	Present() error
}

// Snapshot копия состояния игры для отладочного API
type Snapshot struct {
	Node          vec.Vec3      `json:"node"`
	Offset        vec.Vec3Float `json:"offset"`
	Pitch         float64       `json:"pitch"`
	Yaw           float64       `json:"yaw"`
	ActivePhotons int           `json:"active_photons"`
	Emitted       uint64        `json:"emitted"`
	Moves         uint64        `json:"moves"`
	Transitions   uint64        `json:"transitions"`
	CursorNode    *vec.Vec3     `json:"cursor_node,omitempty"`
	Frame         [][]string    `json:"frame,omitempty"`
}

// Game игровой цикл: позиция игрока, камера и фотонный обзор.
// Граф меняется только из горутины Run.
type Game struct {
	cfg       Config
	viewport  *render.Viewport
	metrics   *observability.Metrics
	logger    *logging.Logger
	tracer    oteltrace.Tracer
	presenter Presenter

	// Clock источник времени; подменяется в тестах
	Clock func() time.Time

	mu          sync.RWMutex
	position    *physics.Position
	pitch       float64
	yaw         float64
	held        map[MoveKey]time.Time
	moves       uint64
	transitions uint64
}

// New создаёт игру с игроком в позиции start
func New(cfg Config, viewport *render.Viewport, start *physics.Position, metrics *observability.Metrics, logger *logging.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if viewport == nil {
		return nil, fmt.Errorf("%w: обзор не задан", ErrInvalidGameConfig)
	}
	if start == nil || start.Node == nil {
		return nil, fmt.Errorf("%w: стартовая позиция не задана", ErrInvalidGameConfig)
	}
	return &Game{
		cfg:      cfg,
		viewport: viewport,
		metrics:  metrics,
		logger:   logger,
		tracer:   observability.Tracer(),
		Clock:    time.Now,
		position: start,
		held:     make(map[MoveKey]time.Time),
	}, nil
}

// SetPresenter задает вывод кадра после каждого тика фотонов
func (g *Game) SetPresenter(p Presenter) {
	g.presenter = p
}

// Viewport возвращает фотонный обзор
func (g *Game) Viewport() *render.Viewport {
	return g.viewport
}

// Look поворачивает камеру на смещение мыши.
// Тангаж ограничен ±89°, рыскание заворачивается около ±181°.
func (g *Game) Look(dx, dy float64) {
	g.mu.Lock()
	g.yaw += dx * g.cfg.YawSpeed
	g.pitch += dy * g.cfg.PitchSpeed
	if g.pitch > maxPitch {
		g.pitch = maxPitch
	}
	if g.pitch < -maxPitch {
		g.pitch = -maxPitch
	}
	if g.yaw > yawWrap {
		g.yaw -= 360
	}
	if g.yaw < -yawWrap {
		g.yaw += 360
	}
	g.mu.Unlock()
	g.viewport.SetLastMoveTime(g.Clock())
}

// Camera возвращает тангаж и рыскание в градусах
func (g *Game) Camera() (pitch, yaw float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pitch, g.yaw
}

// Move сдвигает игрока по одной или двум удерживаемым клавишам.
// Направления складываются, нормируются, поворачиваются камерой и
// масштабируются скоростью; игрок не входит в непрозрачные узлы.
// Возвращает false, если движения не было.
func (g *Game) Move(keys []MoveKey) (physics.MoveResult, bool) {
	if len(keys) < 1 || len(keys) > 2 {
		return physics.MoveResult{}, false
	}
	var direction vec.Vec3Float
	for _, k := range keys {
		direction = direction.Add(keyDirections[k])
	}
	if direction.IsZero(physics.Epsilon) {
		return physics.MoveResult{}, false
	}

	g.mu.Lock()
	step := vec.CameraRotation(g.pitch, g.yaw).MulVec(direction.Normalized()).Scale(g.cfg.MoveSpeed)
	from := g.position.Node
	result := g.position.AddVector(step, physics.HaltAtOpaque)
	g.moves++
	g.transitions += uint64(result.Transitions)
	to := g.position.Node
	g.mu.Unlock()

	g.metrics.PlayerMoved(result.Transitions)
	g.viewport.SetLastMoveTime(g.Clock())
	if from != to {
		g.logger.Debug("Игрок перешел %v → %v", from.Label, to.Label)
	}
	if result.Collided() {
		g.logger.Trace("Движение остановлено: %s", result.Collision)
	}
	return result, true
}

// Position возвращает копию позиции игрока
func (g *Game) Position() *physics.Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position.Clone()
}

// PressKey отмечает клавишу удерживаемой
func (g *Game) PressKey(k MoveKey) {
	g.mu.Lock()
	g.held[k] = g.Clock()
	g.mu.Unlock()
}

// ReleaseKey снимает удержание клавиши
func (g *Game) ReleaseKey(k MoveKey) {
	g.mu.Lock()
	delete(g.held, k)
	g.mu.Unlock()
}

// HeldKeys возвращает клавиши, нажатые не раньше now-KeyHold.
// Терминал не сообщает об отпускании, поэтому удержание истекает.
func (g *Game) HeldKeys(now time.Time) []MoveKey {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]MoveKey, 0, len(g.held))
	for k, at := range g.held {
		if now.Sub(at) > g.cfg.KeyHold {
			delete(g.held, k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// EmitBurst выпускает PhotonsPerEmit фотонов из позиции камеры
func (g *Game) EmitBurst(ctx context.Context) int {
	_, span := g.tracer.Start(ctx, "game.emit_burst")
	defer span.End()

	g.mu.RLock()
	pitch, yaw := g.pitch, g.yaw
	pos := g.position.Clone()
	g.mu.RUnlock()

	emitted := 0
	for i := 0; i < g.cfg.PhotonsPerEmit; i++ {
		if _, err := g.viewport.EmitNext(pitch, yaw, pos); err != nil {
			g.logger.Error("Не удалось выпустить фотон: %v", err)
			span.RecordError(err)
			break
		}
		emitted++
	}
	span.SetAttributes(
		attribute.Int("photons.emitted", emitted),
		attribute.Int("photons.active", g.viewport.Active()),
		attribute.String("player.node", pos.Node.Label.String()),
	)
	return emitted
}

// Frame тикает все фотоны и выводит кадр
func (g *Game) Frame() error {
	start := time.Now()
	g.viewport.Tick()
	var err error
	if g.presenter != nil {
		err = g.presenter.Present()
	}
	g.metrics.ObserveFrame(time.Since(start).Seconds())
	return err
}

// HandleInput применяет событие ввода. Возвращает true на выход.
func (g *Game) HandleInput(in Input) bool {
	switch in.Kind {
	case InputKeyPress:
		g.PressKey(in.Key)
	case InputKeyRelease:
		g.ReleaseKey(in.Key)
	case InputLook:
		g.Look(in.DX, in.DY)
	case InputResize:
		g.viewport.Resize(in.Width, in.Height)
	case InputQuit:
		return true
	}
	return false
}

// Run крутит игровой цикл до отмены ctx или события выхода.
// Тикеры движения, выпуска, фотонов и затухания обслуживаются
// одной горутиной.
func (g *Game) Run(ctx context.Context, input <-chan Input) error {
	vcfg := g.viewport.Config()
	moveTicker := time.NewTicker(g.cfg.MoveInterval)
	defer moveTicker.Stop()
	emitTicker := time.NewTicker(g.cfg.EmitInterval())
	defer emitTicker.Stop()
	photonTicker := time.NewTicker(vcfg.Photon.TickInterval)
	defer photonTicker.Stop()
	decayTicker := time.NewTicker(vcfg.DecayTimeout / 4)
	defer decayTicker.Stop()

	g.logger.Info("🎮 Игровой цикл запущен: выпуск каждые %v по %d фотонов", g.cfg.EmitInterval(), g.cfg.PhotonsPerEmit)
	defer g.logger.Info("Игровой цикл остановлен")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			if g.HandleInput(in) {
				return nil
			}
		case <-moveTicker.C:
			g.Move(g.HeldKeys(g.Clock()))
		case <-emitTicker.C:
			g.EmitBurst(ctx)
		case <-photonTicker.C:
			if err := g.Frame(); err != nil {
				g.logger.Warn("Не удалось вывести кадр: %v", err)
			}
		case <-decayTicker.C:
			if n := g.viewport.Decay(g.Clock()); n > 0 {
				g.logger.Trace("Затухло пикселей: %d", n)
			}
		}
	}
}

// Snapshot возвращает копию состояния
func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	s := Snapshot{
		Node:        g.position.Node.Label,
		Offset:      g.position.Offset,
		Pitch:       g.pitch,
		Yaw:         g.yaw,
		Moves:       g.moves,
		Transitions: g.transitions,
	}
	g.mu.RUnlock()

	s.ActivePhotons = g.viewport.Active()
	s.Emitted = g.viewport.Emitted()
	if node := g.viewport.Cursor().Node(); node != nil {
		label := node.Label
		s.CursorNode = &label
	}
	return s
}
