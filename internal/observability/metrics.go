package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus-метрики симуляции.
// Все методы безопасны для nil: без метрик игра работает так же.
//
// Метрики:
// * photons_emitted_total — counter
// * photon_collisions_total{kind} — counter (node / graph_edge)
// * photons_expired_total — counter
// * photons_active — gauge
// * emission_cycles_total — counter (полные проходы по пикселям)
// * player_transitions_total — counter (переходы игрока между узлами)
// * frame_render_duration_seconds — histogram
type Metrics struct {
	photonsEmitted    prometheus.Counter
	photonCollisions  *prometheus.CounterVec
	photonsExpired    prometheus.Counter
	photonsActive     prometheus.Gauge
	emissionCycles    prometheus.Counter
	playerTransitions prometheus.Counter
	frameDuration     prometheus.Histogram
}

// Виды столкновений фотонов
const (
	CollisionNode      = "node"
	CollisionGraphEdge = "graph_edge"
)

// NewMetrics создаёт метрики и регистрирует их в reg.
// Если reg == nil, используется prometheus.DefaultRegisterer.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		photonsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photons_emitted_total",
			Help:      "Сколько фотонов выпущено.",
		}),
		photonCollisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photon_collisions_total",
			Help:      "Столкновения фотонов по видам.",
		}, []string{"kind"}),
		photonsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photons_expired_total",
			Help:      "Фотоны, прошедшие максимальную дистанцию.",
		}),
		photonsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "photons_active",
			Help:      "Текущее количество летящих фотонов.",
		}),
		emissionCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emission_cycles_total",
			Help:      "Полные проходы по всем пикселям экрана.",
		}),
		playerTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_transitions_total",
			Help:      "Переходы игрока между узлами.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_render_duration_seconds",
			Help:      "Длительность отрисовки кадра.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}

	collectors := []prometheus.Collector{
		m.photonsEmitted, m.photonCollisions, m.photonsExpired, m.photonsActive,
		m.emissionCycles, m.playerTransitions, m.frameDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// PhotonEmitted учитывает выпущенный фотон
func (m *Metrics) PhotonEmitted() {
	if m == nil {
		return
	}
	m.photonsEmitted.Inc()
	m.photonsActive.Inc()
}

// PhotonCollided учитывает столкновение; outOfGraph - фотон ушел за край графа
func (m *Metrics) PhotonCollided(outOfGraph bool) {
	if m == nil {
		return
	}
	kind := CollisionNode
	if outOfGraph {
		kind = CollisionGraphEdge
	}
	m.photonCollisions.WithLabelValues(kind).Inc()
	m.photonsActive.Dec()
}

// PhotonExpired учитывает фотон, исчерпавший дистанцию
func (m *Metrics) PhotonExpired() {
	if m == nil {
		return
	}
	m.photonsExpired.Inc()
	m.photonsActive.Dec()
}

// EmissionCycle учитывает полный проход по пикселям
func (m *Metrics) EmissionCycle() {
	if m == nil {
		return
	}
	m.emissionCycles.Inc()
}

// PlayerMoved учитывает переходы игрока
func (m *Metrics) PlayerMoved(transitions int) {
	if m == nil || transitions <= 0 {
		return
	}
	m.playerTransitions.Add(float64(transitions))
}

// ObserveFrame записывает длительность отрисовки кадра в секундах
func (m *Metrics) ObserveFrame(seconds float64) {
	if m == nil {
		return
	}
	m.frameDuration.Observe(seconds)
}
