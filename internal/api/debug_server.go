package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/nodeworld/internal/game"
	"github.com/annel0/nodeworld/internal/logging"
	"github.com/annel0/nodeworld/internal/middleware"
	"github.com/annel0/nodeworld/internal/physics"
	"github.com/annel0/nodeworld/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const defaultViewDistance = 5

// StateSource состояние игры, которое отдает сервер
type StateSource interface {
	Snapshot() game.Snapshot
	Position() *physics.Position
	Camera() (pitch, yaw float64)
}

// FrameSource последний нарисованный кадр в hex-цветах
type FrameSource interface {
	Frame() [][]string
}

// Config содержит конфигурацию отладочного сервера
type Config struct {
	Addr     string
	Game     StateSource
	Frames   FrameSource          // может быть nil
	Registry *prometheus.Registry // метрики для /metrics; nil - дефолтный регистр
	Logger   *logging.Logger
}

// GenericResponse общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// DebugServer HTTP сервер для наблюдения за игрой
type DebugServer struct {
	router     *gin.Engine
	httpServer *http.Server
	game       StateSource
	frames     FrameSource
	logger     *logging.Logger
	metrics    *ServerMetrics
}

// NewDebugServer создает сервер и настраивает маршруты
func NewDebugServer(cfg Config) (*DebugServer, error) {
	if cfg.Game == nil {
		return nil, errors.New("источник состояния игры не задан")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8088"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(otelgin.Middleware("nodeworld_debug"))
	router.Use(middleware.NewRequestLogger(cfg.Logger).Handler())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if cfg.Registry != nil {
		registerer, gatherer = cfg.Registry, cfg.Registry
	}
	promMw, err := middleware.NewPrometheusMiddleware("debug_api", registerer)
	if err != nil {
		return nil, fmt.Errorf("регистрация HTTP метрик: %w", err)
	}
	router.Use(promMw.Handler())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	ds := &DebugServer{
		router:  router,
		game:    cfg.Game,
		frames:  cfg.Frames,
		logger:  cfg.Logger,
		metrics: NewServerMetrics(),
	}
	ds.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ds.setupRoutes()
	return ds, nil
}

func (ds *DebugServer) setupRoutes() {
	ds.router.GET("/health", ds.handleHealth)

	api := ds.router.Group("/api")
	{
		api.GET("/state", ds.handleState)
		api.GET("/stats", ds.handleStats)
		api.GET("/view", ds.handleView)
	}
}

// Handler возвращает HTTP обработчик (для тестов и встраивания)
func (ds *DebugServer) Handler() http.Handler {
	return ds.router
}

// Start слушает адрес до Shutdown
func (ds *DebugServer) Start() error {
	ds.logger.Info("🌐 Отладочный сервер слушает %s", ds.httpServer.Addr)
	if err := ds.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown плавно останавливает сервер
func (ds *DebugServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return ds.httpServer.Shutdown(ctx)
}

func (ds *DebugServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (ds *DebugServer) handleState(c *gin.Context) {
	snapshot := ds.game.Snapshot()
	if ds.frames != nil {
		snapshot.Frame = ds.frames.Frame()
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Состояние получено",
		Data:    snapshot,
	})
}

func (ds *DebugServer) handleStats(c *gin.Context) {
	stats := make(map[string]interface{})

	snapshot := ds.game.Snapshot()
	stats["game"] = map[string]interface{}{
		"active_photons": snapshot.ActivePhotons,
		"emitted":        snapshot.Emitted,
		"moves":          snapshot.Moves,
		"transitions":    snapshot.Transitions,
	}

	cpuPercent, err := ds.metrics.GetCPUUsage()
	if err != nil {
		ds.logger.Warn("Не удалось получить CPU процесса: %v", err)
	}
	hostMemory, err := ds.metrics.GetHostMemory()
	if err != nil {
		ds.logger.Warn("Не удалось получить память хоста: %v", err)
	}
	stats["server"] = map[string]interface{}{
		"uptime":       ds.metrics.GetUptime(),
		"memory_mb":    fmt.Sprintf("%.2f", ds.metrics.GetMemoryUsage()),
		"cpu_percent":  fmt.Sprintf("%.2f", cpuPercent),
		"host_mem_pct": fmt.Sprintf("%.2f", hostMemory),
		"server_time":  time.Now().Unix(),
	}
	stats["memory_details"] = ds.metrics.GetDetailedMemoryStats()

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleView строит дискретный обзор из позиции игрока:
// метки видимых узлов, "" - край графа.
func (ds *DebugServer) handleView(c *gin.Context) {
	pitch, yaw := ds.game.Camera()
	var err error
	if v := c.Query("pitch"); v != "" {
		if pitch, err = strconv.ParseFloat(v, 64); err != nil {
			ds.badRequest(c, "pitch", v)
			return
		}
	}
	if v := c.Query("yaw"); v != "" {
		if yaw, err = strconv.ParseFloat(v, 64); err != nil {
			ds.badRequest(c, "yaw", v)
			return
		}
	}
	distance := defaultViewDistance
	if v := c.Query("distance"); v != "" {
		if distance, err = strconv.Atoi(v); err != nil || distance <= 0 || distance > 20 {
			ds.badRequest(c, "distance", v)
			return
		}
	}

	mode, err := render.ParseLineMode(c.Query("line"))
	if err != nil {
		ds.badRequest(c, "line", c.Query("line"))
		return
	}

	lv := render.NewLineViewport(distance)
	lv.Mode = mode
	nodes := lv.FindNodes(pitch, yaw, ds.game.Position().Node)
	labels := make([][]string, len(nodes))
	for y, row := range nodes {
		labels[y] = make([]string, len(row))
		for x, node := range row {
			if node != nil {
				labels[y][x] = node.Label.String()
			}
		}
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Обзор построен",
		Data: gin.H{
			"pitch":    pitch,
			"yaw":      yaw,
			"distance": distance,
			"labels":   labels,
		},
	})
}

func (ds *DebugServer) badRequest(c *gin.Context, param, value string) {
	c.JSON(http.StatusBadRequest, GenericResponse{
		Success: false,
		Message: fmt.Sprintf("Некорректный параметр %s=%q", param, value),
	})
}
