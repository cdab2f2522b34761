package main

import (
	"fmt"
	"os"

	"github.com/annel0/nodeworld/internal/config"
	"github.com/annel0/nodeworld/internal/logging"
	"github.com/annel0/nodeworld/internal/physics"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
)

// buildWorld строит граф из файла карты, иначе сетку с рельефом
func buildWorld(cfg config.WorldConfig) (*physics.Position, error) {
	if cfg.MapPath != "" {
		f, err := os.Open(cfg.MapPath)
		if err != nil {
			return nil, fmt.Errorf("открытие карты: %w", err)
		}
		defer f.Close()

		m, err := world.ReadMap(f, nil)
		if err != nil {
			return nil, fmt.Errorf("карта %s: %w", cfg.MapPath, err)
		}
		logging.Info("🗺️ Карта %s: %d узлов", cfg.MapPath, m.NodeCount)
		return physics.NewPosition(m.Spawn(), vec.NewVec3Float(0.5, 0.5, 0.5)), nil
	}

	grid := world.NewGrid(cfg.Radius)
	if !cfg.Terrain {
		logging.Info("🗺️ Пустая сетка радиуса %d: %d узлов", cfg.Radius, grid.NodeCount())
		return physics.NewPosition(grid.Center(), vec.Vec3Float{}), nil
	}

	result, err := world.NewTerrainGenerator(cfg.Seed).Generate(grid)
	if err != nil {
		return nil, err
	}
	logging.Info("🗺️ Рельеф (seed=%d): %d блоков, %d столбов", cfg.Seed, result.Blocks, result.Pillars)
	return physics.NewPosition(result.Spawn, vec.Vec3Float{}), nil
}
