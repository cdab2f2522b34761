package entity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/nodeworld/internal/physics"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/google/uuid"
)

// PhotonState состояние фотона
type PhotonState int32

const (
	PhotonCreated PhotonState = iota
	PhotonTicking
	PhotonTerminated
)

func (s PhotonState) String() string {
	switch s {
	case PhotonCreated:
		return "created"
	case PhotonTicking:
		return "ticking"
	case PhotonTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Outcome причина завершения фотона
type Outcome int32

const (
	OutcomeNone Outcome = iota
	OutcomeCollision
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCollision:
		return "collision"
	case OutcomeExpired:
		return "expired"
	default:
		return "none"
	}
}

// Photon зонд, летящий по прямой от источника на фиксированную дистанцию.
// При столкновении или исчерпании дистанции уведомляет слушателей ровно один раз.
//
// Tick можно вызывать как из собственного таймера (StartTicks), так и
// из внешнего пакетного драйвера; поведение одинаково.
type Photon struct {
	ID  uuid.UUID
	cfg PhotonConfig

	mu         sync.Mutex // Сериализует тики
	position   *physics.Position
	tickVector vec.Vec3Float
	distance   float64
	listeners  []Listener
	collision  *physics.Collision

	state   atomic.Int32
	outcome atomic.Int32
	live    atomic.Bool
	started atomic.Bool

	stopOnce sync.Once
	stop     chan struct{}
}

// NewPhoton создаёт фотон в позиции pos, летящий в направлении direction.
// Позиция переходит во владение фотона. Некорректная конфигурация
// возвращает ошибку сразу.
func NewPhoton(cfg PhotonConfig, pos *physics.Position, direction vec.Vec3Float) (*Photon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Photon{
		ID:         uuid.New(),
		cfg:        cfg,
		position:   pos,
		tickVector: direction.Normalized().Scale(cfg.Speed),
		stop:       make(chan struct{}),
	}
	p.live.Store(true)
	return p, nil
}

// AddListener подписывает слушателя; повторная подписка игнорируется
func (p *Photon) AddListener(l Listener) {
	if l == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.listeners {
		if existing == l {
			return
		}
	}
	p.listeners = append(p.listeners, l)
}

// Tick продвигает фотон на один шаг длины Speed.
// После завершения или остановки - no-op.
func (p *Photon) Tick() {
	if !p.live.Load() {
		return
	}

	p.mu.Lock()
	if !p.live.Load() || p.State() == PhotonTerminated {
		p.mu.Unlock()
		return
	}
	p.state.CompareAndSwap(int32(PhotonCreated), int32(PhotonTicking))

	result := p.position.AddVector(p.tickVector, physics.HaltAtOpaque)

	var (
		listeners []Listener
		outcome   Outcome
		collision physics.Collision
	)
	if result.Collided() {
		partial := p.tickVector.Length() - result.Remaining.Length()
		if partial > 0 {
			p.distance += partial
		}
		collision = *result.Collision
		p.collision = result.Collision
		outcome = OutcomeCollision
	} else {
		p.distance += p.cfg.Speed
		if !result.LastApplied.IsZero(physics.Epsilon) {
			p.tickVector = result.LastApplied.Normalized().Scale(p.cfg.Speed)
		}
		if p.distance >= p.cfg.MaxDistance {
			outcome = OutcomeExpired
		}
	}

	if outcome != OutcomeNone {
		p.outcome.Store(int32(outcome))
		p.state.Store(int32(PhotonTerminated))
		p.live.Store(false)
		p.stopOnce.Do(func() { close(p.stop) })
		listeners = p.listeners
		p.listeners = nil
	}
	p.mu.Unlock()

	// Слушатели вызываются без блокировки: они могут читать фотон
	for _, l := range listeners {
		switch outcome {
		case OutcomeCollision:
			l.OnCollision(p, collision)
		case OutcomeExpired:
			l.OnExpire(p)
		}
	}
}

// StartTicks запускает собственный таймер фотона.
// Тики прекращаются при завершении фотона, StopTicks или отмене ctx.
// Повторный вызов ничего не делает.
func (p *Photon) StartTicks(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) || !p.live.Load() {
		return
	}
	p.state.CompareAndSwap(int32(PhotonCreated), int32(PhotonTicking))

	go func() {
		ticker := time.NewTicker(p.cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.StopTicks()
				return
			case <-p.stop:
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()
}

// StopTicks останавливает фотон. Идемпотентен; безопасен из слушателя.
func (p *Photon) StopTicks() {
	p.live.Store(false)
	p.stopOnce.Do(func() { close(p.stop) })
}

// Done закрывается, когда фотон больше не будет тикать
func (p *Photon) Done() <-chan struct{} {
	return p.stop
}

// Live сообщает, что фотон еще может двигаться
func (p *Photon) Live() bool {
	return p.live.Load()
}

// State возвращает текущее состояние
func (p *Photon) State() PhotonState {
	return PhotonState(p.state.Load())
}

// Terminated сообщает, что фотон завершился столкновением или по дистанции
func (p *Photon) Terminated() bool {
	return p.State() == PhotonTerminated
}

// Outcome возвращает причину завершения
func (p *Photon) Outcome() Outcome {
	return Outcome(p.outcome.Load())
}

// Distance пройденная дистанция
func (p *Photon) Distance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.distance
}

// MaxDistance дистанция, после которой фотон гаснет
func (p *Photon) MaxDistance() float64 {
	return p.cfg.MaxDistance
}

// Position возвращает копию текущей позиции
func (p *Photon) Position() *physics.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position.Clone()
}

// TickVector текущий вектор шага
func (p *Photon) TickVector() vec.Vec3Float {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tickVector
}

// Collision возвращает столкновение или nil
func (p *Photon) Collision() *physics.Collision {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collision
}
