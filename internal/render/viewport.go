package render

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/entity"
	"github.com/annel0/nodeworld/internal/observability"
	"github.com/annel0/nodeworld/internal/physics"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
)

// ViewportConfig параметры фотонного обзора
type ViewportConfig struct {
	PhotonsHigh    int
	PhotonsWide    int
	RenderDistance float64
	DecayTimeout   time.Duration
	Photon         entity.PhotonConfig
}

// DefaultViewportConfig возвращает конфигурацию по умолчанию
func DefaultViewportConfig() ViewportConfig {
	return ViewportConfig{
		PhotonsHigh:    5,
		PhotonsWide:    5,
		RenderDistance: 7,
		DecayTimeout:   time.Second,
		Photon:         entity.DefaultPhotonConfig(),
	}
}

// Validate проверяет конфигурацию обзора и фотонов
func (c ViewportConfig) Validate() error {
	if c.PhotonsHigh <= 0 || c.PhotonsWide <= 0 {
		return fmt.Errorf("размер экрана %dx%d должен быть положительным", c.PhotonsWide, c.PhotonsHigh)
	}
	if c.RenderDistance <= 0 {
		return fmt.Errorf("дальность обзора %.2f должна быть положительной", c.RenderDistance)
	}
	if c.DecayTimeout <= 0 {
		return fmt.Errorf("время затухания %v должно быть положительным", c.DecayTimeout)
	}
	return c.Photon.Validate()
}

type pixel struct {
	x, y int
}

// Viewport фотонный обзор: каждый пиксель экрана получает цвет
// от фотона, выпущенного из позиции камеры.
//
// Экран photonsWide x photonsHigh; пиксель [y][x] смотрит в
// [x-(w-1)/2, (h-1)/2-y, -renderDistance] в системе камеры.
type Viewport struct {
	cfg     ViewportConfig
	canvas  draw.Canvas
	metrics *observability.Metrics

	// Clock источник времени; подменяется в тестах
	Clock func() time.Time

	mu           sync.Mutex
	rng          *rand.Rand
	cellW        float64
	cellH        float64
	defaultLines [][]vec.Vec3Float
	ordering     []pixel
	photons      []*entity.Photon
	cursor       *entity.Cursor
	refreshed    [][]time.Time
	faded        [][]bool
	lastMoveTime time.Time
	emitted      uint64
}

// NewViewport создаёт обзор, рисующий на canvas размером width x height.
// rng задает порядок обхода пикселей; nil - случайный сид.
func NewViewport(cfg ViewportConfig, canvas draw.Canvas, width, height float64, rng *rand.Rand, metrics *observability.Metrics) (*Viewport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if canvas == nil {
		return nil, fmt.Errorf("холст не задан")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	v := &Viewport{
		cfg:     cfg,
		canvas:  canvas,
		metrics: metrics,
		Clock:   time.Now,
		rng:     rng,
		cursor:  entity.NewCursor(),
	}
	v.Resize(width, height)
	v.constructDefaultLines()

	v.refreshed = make([][]time.Time, cfg.PhotonsHigh)
	v.faded = make([][]bool, cfg.PhotonsHigh)
	for y := range v.refreshed {
		v.refreshed[y] = make([]time.Time, cfg.PhotonsWide)
		v.faded[y] = make([]bool, cfg.PhotonsWide)
	}
	v.lastMoveTime = v.Clock()
	return v, nil
}

func (v *Viewport) constructDefaultLines() {
	halfW := float64(v.cfg.PhotonsWide-1) / 2
	halfH := float64(v.cfg.PhotonsHigh-1) / 2
	v.defaultLines = make([][]vec.Vec3Float, v.cfg.PhotonsHigh)
	for y := 0; y < v.cfg.PhotonsHigh; y++ {
		v.defaultLines[y] = make([]vec.Vec3Float, v.cfg.PhotonsWide)
		for x := 0; x < v.cfg.PhotonsWide; x++ {
			v.defaultLines[y][x] = vec.NewVec3Float(float64(x)-halfW, halfH-float64(y), -v.cfg.RenderDistance)
		}
	}
}

// Resize задает размер холста
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cellW = width / float64(v.cfg.PhotonsWide)
	v.cellH = height / float64(v.cfg.PhotonsHigh)
}

// Config возвращает конфигурацию
func (v *Viewport) Config() ViewportConfig {
	return v.cfg
}

// DefaultLine исходный луч пикселя в системе камеры
func (v *Viewport) DefaultLine(x, y int) vec.Vec3Float {
	return v.defaultLines[y][x]
}

// Center возвращает координаты центрального пикселя
func (v *Viewport) Center() (int, int) {
	return v.cfg.PhotonsWide / 2, v.cfg.PhotonsHigh / 2
}

// Cursor курсор центрального пикселя
func (v *Viewport) Cursor() *entity.Cursor {
	return v.cursor
}

// SetLastMoveTime отмечает движение игрока
func (v *Viewport) SetLastMoveTime(t time.Time) {
	v.mu.Lock()
	v.lastMoveTime = t
	v.mu.Unlock()
}

// Active число летящих фотонов
func (v *Viewport) Active() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.photons)
}

// Emitted сколько фотонов выпущено всего
func (v *Viewport) Emitted() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.emitted
}

// EmitNext выпускает фотон для следующего пикселя перемешанного обхода.
// Когда обход исчерпан, пиксели перемешиваются заново.
func (v *Viewport) EmitNext(pitchDegrees, yawDegrees float64, pos *physics.Position) (*entity.Photon, error) {
	v.mu.Lock()
	if len(v.ordering) == 0 {
		for x := 0; x < v.cfg.PhotonsWide; x++ {
			for y := 0; y < v.cfg.PhotonsHigh; y++ {
				v.ordering = append(v.ordering, pixel{x: x, y: y})
			}
		}
		v.rng.Shuffle(len(v.ordering), func(i, j int) {
			v.ordering[i], v.ordering[j] = v.ordering[j], v.ordering[i]
		})
		v.metrics.EmissionCycle()
	}
	next := v.ordering[len(v.ordering)-1]
	v.ordering = v.ordering[:len(v.ordering)-1]
	v.mu.Unlock()

	return v.Emit(next.x, next.y, pitchDegrees, yawDegrees, pos)
}

// EmitRandom выпускает фотон для случайного пикселя
func (v *Viewport) EmitRandom(pitchDegrees, yawDegrees float64, pos *physics.Position) (*entity.Photon, error) {
	v.mu.Lock()
	x := v.rng.Intn(v.cfg.PhotonsWide)
	y := v.rng.Intn(v.cfg.PhotonsHigh)
	v.mu.Unlock()
	return v.Emit(x, y, pitchDegrees, yawDegrees, pos)
}

// Emit выпускает фотон для пикселя (x, y) из копии позиции камеры.
// Фотон тикает вместе с остальными в Tick.
func (v *Viewport) Emit(x, y int, pitchDegrees, yawDegrees float64, pos *physics.Position) (*entity.Photon, error) {
	if x < 0 || y < 0 || x >= v.cfg.PhotonsWide || y >= v.cfg.PhotonsHigh {
		return nil, fmt.Errorf("пиксель (%d,%d) вне экрана", x, y)
	}
	ray := vec.CameraRotation(pitchDegrees, yawDegrees).MulVec(v.defaultLines[y][x])
	photon, err := entity.NewPhoton(v.cfg.Photon, pos.Clone(), ray)
	if err != nil {
		return nil, err
	}

	centerX, centerY := v.Center()
	photon.AddListener(&pixelListener{
		viewport: v,
		x:        x,
		y:        y,
		center:   x == centerX && y == centerY,
	})

	v.mu.Lock()
	v.photons = append(v.photons, photon)
	v.emitted++
	v.mu.Unlock()
	v.metrics.PhotonEmitted()
	return photon, nil
}

// Tick продвигает все летящие фотоны на один шаг и убирает завершенные
func (v *Viewport) Tick() {
	v.mu.Lock()
	batch := append([]*entity.Photon(nil), v.photons...)
	v.mu.Unlock()

	for _, p := range batch {
		p.Tick()
	}

	v.mu.Lock()
	live := v.photons[:0]
	for _, p := range v.photons {
		if p.Live() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(v.photons); i++ {
		v.photons[i] = nil
	}
	v.photons = live
	v.mu.Unlock()
}

// Decay затемняет пиксели, не обновлявшиеся дольше DecayTimeout,
// если игрок двигался за последние 2*DecayTimeout. Каждый пиксель
// затемняется один раз после обновления. Возвращает число затемненных.
func (v *Viewport) Decay(now time.Time) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastMoveTime) >= 2*v.cfg.DecayTimeout {
		return 0
	}
	count := 0
	for y := range v.refreshed {
		for x, refreshed := range v.refreshed[y] {
			if refreshed.IsZero() || v.faded[y][x] || now.Sub(refreshed) < v.cfg.DecayTimeout {
				continue
			}
			v.canvas.FillRect(v.rectLocked(x, y), draw.Black, 0.3)
			v.faded[y][x] = true
			count++
		}
	}
	return count
}

// Rect прямоугольник пикселя на холсте
func (v *Viewport) Rect(x, y int) draw.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rectLocked(x, y)
}

func (v *Viewport) rectLocked(x, y int) draw.Rect {
	return draw.Rect{X: float64(x) * v.cellW, Y: float64(y) * v.cellH, W: v.cellW, H: v.cellH}
}

func (v *Viewport) markRefreshed(x, y int) draw.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refreshed[y][x] = v.Clock()
	v.faded[y][x] = false
	return v.rectLocked(x, y)
}

// pixelListener рисует результат фотона в свой пиксель
type pixelListener struct {
	viewport *Viewport
	x, y     int
	center   bool
}

func (pl *pixelListener) OnCollision(p *entity.Photon, c physics.Collision) {
	v := pl.viewport
	rect := v.markRefreshed(pl.x, pl.y)
	v.metrics.PhotonCollided(c.OutOfGraph())

	if c.To == nil {
		v.canvas.FillRect(rect, draw.Black, 1)
		return
	}

	contents := c.To.Contents()
	if len(contents) == 0 {
		panic(fmt.Sprintf("фотон %s остановлен узлом %v без содержимого", p.ID, c.To))
	}
	for _, e := range contents {
		e.Draw(v.canvas, rect)
	}
	v.canvas.FillRect(rect, draw.Empty, p.Distance()/p.MaxDistance())
	v.canvas.Label(rect, c.To.Label.String())

	if pl.center {
		v.cursor.MoveTo(c.To)
	}
}

func (pl *pixelListener) OnExpire(p *entity.Photon) {
	v := pl.viewport
	rect := v.markRefreshed(pl.x, pl.y)
	v.metrics.PhotonExpired()

	node := p.Position().Node
	DrawNode(v.canvas, rect, node)
	if pl.center {
		v.cursor.MoveTo(nil)
	}
}

// PhotonNodes возвращает узлы, в которых находятся летящие фотоны
func (v *Viewport) PhotonNodes() []*world.Node {
	v.mu.Lock()
	batch := append([]*entity.Photon(nil), v.photons...)
	v.mu.Unlock()

	nodes := make([]*world.Node, 0, len(batch))
	for _, p := range batch {
		nodes = append(nodes, p.Position().Node)
	}
	return nodes
}
