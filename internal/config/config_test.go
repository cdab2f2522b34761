package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/annel0/nodeworld/internal/entity"
	"github.com/annel0/nodeworld/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodeworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, entity.DefaultPhotonConfig(), cfg.PhotonConfig())
	assert.Equal(t, 5, cfg.ViewportConfig().PhotonsWide)
	assert.Equal(t, 100*time.Millisecond, cfg.GameConfig().EmitInterval())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  map_path: maps/cave.gfg
photon:
  speed: 2
  tick_interval: 50ms
viewport:
  photons_wide: 9
  labels: true
game:
  photons_per_emit: 3
debug:
  addr: ":9000"
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "maps/cave.gfg", cfg.World.MapPath)
	assert.Equal(t, 2.0, cfg.Photon.Speed)
	assert.Equal(t, 50*time.Millisecond, cfg.Photon.TickInterval)
	assert.Equal(t, 9.0, cfg.Photon.MaxDistance, "Незаданные поля берутся по умолчанию")
	assert.Equal(t, 9, cfg.Viewport.PhotonsWide)
	assert.True(t, cfg.Viewport.Labels)
	assert.Equal(t, 3, cfg.GameConfig().PhotonsPerEmit)
	assert.Equal(t, ":9000", cfg.Debug.GetAddr())

	file, console, err := cfg.LogLevels()
	require.NoError(t, err)
	assert.Equal(t, logging.DEBUG, file)
	assert.Equal(t, logging.INFO, console)
}

func TestLoad_EnvFallback(t *testing.T) {
	path := writeConfig(t, "world:\n  radius: 4\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.World.Radius)

	t.Setenv(EnvConfigPath, "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "Без пути используется конфигурация по умолчанию")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "нет.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "photon: [1, 2"))
	assert.Error(t, err)
}

func TestValidate_Failures(t *testing.T) {
	cfg := Default()
	cfg.Photon.TickInterval = time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, cfg.Validate(), entity.ErrTraversalBudget, "Бюджет фотона проверяется")

	cfg = Default()
	cfg.World.Radius = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg.World.MapPath = "map.gfg"
	assert.NoError(t, cfg.Validate(), "С файлом карты радиус не нужен")

	cfg = Default()
	cfg.Telemetry.SampleRatio = 2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.Logging.Level = "громко"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.Game.EmitsPerClear = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestEnvFallbacks(t *testing.T) {
	cfg := Default()
	t.Setenv(EnvDebugAddr, ":7070")
	t.Setenv(EnvTelemetryEndpoint, "collector:4318")
	t.Setenv("NODEWORLD_LOOK_STEP", "25")
	cfg.Game.LookStep = 0

	assert.Equal(t, ":7070", cfg.Debug.GetAddr())
	assert.Equal(t, "collector:4318", cfg.TelemetryConfig().Endpoint)
	assert.Equal(t, 25.0, cfg.Game.GetLookStep())

	cfg.Debug.Addr = "localhost:1"
	assert.Equal(t, "localhost:1", cfg.Debug.GetAddr(), "Значение из файла важнее окружения")

	t.Setenv(EnvDebugAddr, "")
	cfg.Debug.Addr = ""
	assert.Equal(t, defaultDebugAddr, cfg.Debug.GetAddr())
}
