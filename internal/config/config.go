package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/annel0/nodeworld/internal/entity"
	"github.com/annel0/nodeworld/internal/game"
	"github.com/annel0/nodeworld/internal/logging"
	"github.com/annel0/nodeworld/internal/observability"
	"github.com/annel0/nodeworld/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath путь к файлу конфигурации, если -config не задан
	EnvConfigPath = "NODEWORLD_CONFIG"
	// EnvDebugAddr адрес отладочного HTTP сервера
	EnvDebugAddr = "NODEWORLD_DEBUG_ADDR"
	// EnvTelemetryEndpoint адрес OTLP коллектора
	EnvTelemetryEndpoint = "NODEWORLD_OTLP_ENDPOINT"

	defaultDebugAddr = "127.0.0.1:8088"
)

// ErrInvalidConfig ошибка проверки конфигурации
var ErrInvalidConfig = errors.New("некорректная конфигурация")

// Config корневая структура конфигурации приложения
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Photon    PhotonConfig    `yaml:"photon"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Game      GameConfig      `yaml:"game"`
	Debug     DebugConfig     `yaml:"debug"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorldConfig источник графа: файл карты или сетка с рельефом
type WorldConfig struct {
	MapPath string `yaml:"map_path"`
	Radius  int    `yaml:"radius"`
	Seed    int64  `yaml:"seed"`
	Terrain bool   `yaml:"terrain"`
}

type PhotonConfig struct {
	Speed        float64       `yaml:"speed"`
	MaxDistance  float64       `yaml:"max_distance"`
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxTraversal time.Duration `yaml:"max_traversal"`
}

type ViewportConfig struct {
	PhotonsHigh    int           `yaml:"photons_high"`
	PhotonsWide    int           `yaml:"photons_wide"`
	RenderDistance float64       `yaml:"render_distance"`
	DecayTimeout   time.Duration `yaml:"decay_timeout"`
	Labels         bool          `yaml:"labels"`
}

type GameConfig struct {
	MoveSpeed       float64       `yaml:"move_speed"`
	MoveInterval    time.Duration `yaml:"move_interval"`
	YawSpeed        float64       `yaml:"yaw_speed"`
	PitchSpeed      float64       `yaml:"pitch_speed"`
	PhotonsPerEmit  int           `yaml:"photons_per_emit"`
	EmitsPerClear   int           `yaml:"emits_per_clear"`
	ClearsPerSecond float64       `yaml:"clears_per_second"`
	KeyHold         time.Duration `yaml:"key_hold"`
	LookStep        float64       `yaml:"look_step"`
}

type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TelemetryConfig struct {
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	Level        string `yaml:"level"`
	ConsoleLevel string `yaml:"console_level"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	photon := entity.DefaultPhotonConfig()
	viewport := render.DefaultViewportConfig()
	g := game.DefaultConfig()
	return &Config{
		World: WorldConfig{Radius: 10, Seed: 1, Terrain: true},
		Photon: PhotonConfig{
			Speed:        photon.Speed,
			MaxDistance:  photon.MaxDistance,
			TickInterval: photon.TickInterval,
			MaxTraversal: photon.MaxTraversal,
		},
		Viewport: ViewportConfig{
			PhotonsHigh:    viewport.PhotonsHigh,
			PhotonsWide:    viewport.PhotonsWide,
			RenderDistance: viewport.RenderDistance,
			DecayTimeout:   viewport.DecayTimeout,
		},
		Game: GameConfig{
			MoveSpeed:       g.MoveSpeed,
			MoveInterval:    g.MoveInterval,
			YawSpeed:        g.YawSpeed,
			PitchSpeed:      g.PitchSpeed,
			PhotonsPerEmit:  g.PhotonsPerEmit,
			EmitsPerClear:   g.EmitsPerClear,
			ClearsPerSecond: g.ClearsPerSecond,
			KeyHold:         g.KeyHold,
			LookStep:        100,
		},
		Debug:     DebugConfig{Enabled: true},
		Telemetry: TelemetryConfig{ServiceName: "nodeworld", Insecure: true, SampleRatio: 1},
		Logging:   LoggingConfig{Dir: "logs", Level: "INFO", ConsoleLevel: "INFO"},
	}
}

// Load читает YAML файл поверх значений по умолчанию.
// Если path == "", берет путь из ENV NODEWORLD_CONFIG; если и его нет,
// возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	return cfg, nil
}

// GetAddr возвращает адрес отладочного сервера: config -> env -> default
func (d *DebugConfig) GetAddr() string {
	return getStringWithEnvFallback(d.Addr, EnvDebugAddr, defaultDebugAddr)
}

// GetEndpoint возвращает адрес OTLP коллектора: config -> env -> пусто
func (t *TelemetryConfig) GetEndpoint() string {
	return getStringWithEnvFallback(t.Endpoint, EnvTelemetryEndpoint, "")
}

// getStringWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// getFloatWithEnvFallback то же для чисел; значения <= 0 считаются незаданными
func getFloatWithEnvFallback(configValue float64, envVar string, defaultValue float64) float64 {
	if configValue > 0 {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.ParseFloat(envVal, 64); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// GetLookStep шаг поворота стрелками: config -> NODEWORLD_LOOK_STEP -> 100
func (g *GameConfig) GetLookStep() float64 {
	return getFloatWithEnvFallback(g.LookStep, "NODEWORLD_LOOK_STEP", 100)
}

// PhotonConfig параметры фотонов
func (c *Config) PhotonConfig() entity.PhotonConfig {
	return entity.PhotonConfig{
		Speed:        c.Photon.Speed,
		MaxDistance:  c.Photon.MaxDistance,
		TickInterval: c.Photon.TickInterval,
		MaxTraversal: c.Photon.MaxTraversal,
	}
}

// ViewportConfig параметры фотонного обзора
func (c *Config) ViewportConfig() render.ViewportConfig {
	return render.ViewportConfig{
		PhotonsHigh:    c.Viewport.PhotonsHigh,
		PhotonsWide:    c.Viewport.PhotonsWide,
		RenderDistance: c.Viewport.RenderDistance,
		DecayTimeout:   c.Viewport.DecayTimeout,
		Photon:         c.PhotonConfig(),
	}
}

// GameConfig параметры игрового цикла
func (c *Config) GameConfig() game.Config {
	return game.Config{
		MoveSpeed:       c.Game.MoveSpeed,
		MoveInterval:    c.Game.MoveInterval,
		YawSpeed:        c.Game.YawSpeed,
		PitchSpeed:      c.Game.PitchSpeed,
		PhotonsPerEmit:  c.Game.PhotonsPerEmit,
		EmitsPerClear:   c.Game.EmitsPerClear,
		ClearsPerSecond: c.Game.ClearsPerSecond,
		KeyHold:         c.Game.KeyHold,
	}
}

// TelemetryConfig параметры трассировки
func (c *Config) TelemetryConfig() observability.TelemetryConfig {
	return observability.TelemetryConfig{
		ServiceName: c.Telemetry.ServiceName,
		Endpoint:    c.Telemetry.GetEndpoint(),
		Insecure:    c.Telemetry.Insecure,
		SampleRatio: c.Telemetry.SampleRatio,
	}
}

// LogLevels уровни логирования для файла и консоли
func (c *Config) LogLevels() (file, console logging.LogLevel, err error) {
	if file, err = logging.ParseLevel(c.Logging.Level); err != nil {
		return
	}
	console, err = logging.ParseLevel(c.Logging.ConsoleLevel)
	return
}

// Validate проверяет конфигурацию целиком
func (c *Config) Validate() error {
	if c.World.MapPath == "" && c.World.Radius <= 0 {
		return fmt.Errorf("%w: радиус мира %d", ErrInvalidConfig, c.World.Radius)
	}
	if err := c.ViewportConfig().Validate(); err != nil {
		return fmt.Errorf("%w: viewport: %w", ErrInvalidConfig, err)
	}
	if err := c.GameConfig().Validate(); err != nil {
		return fmt.Errorf("%w: game: %w", ErrInvalidConfig, err)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: доля трасс %.2f вне 0..1", ErrInvalidConfig, c.Telemetry.SampleRatio)
	}
	if _, _, err := c.LogLevels(); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}
	return nil
}
