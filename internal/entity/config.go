package entity

import (
	"errors"
	"fmt"
	"time"
)

// Значения по умолчанию для фотонов
const (
	DefaultPhotonSpeed       = 3.0
	DefaultPhotonMaxDistance = 9.0
	DefaultTickInterval      = 100 * time.Millisecond
	DefaultMaxTraversal      = 500 * time.Millisecond
)

var (
	// ErrInvalidPhotonConfig некорректные параметры фотона
	ErrInvalidPhotonConfig = errors.New("некорректная конфигурация фотона")
	// ErrTraversalBudget фотон летел бы дольше допустимого времени
	ErrTraversalBudget = errors.New("фотон не успевает пройти путь за отведенное время")
)

// PhotonConfig параметры движения фотона
type PhotonConfig struct {
	Speed        float64       // Единиц смещения за тик
	MaxDistance  float64       // Дистанция, после которой фотон гаснет
	TickInterval time.Duration // Период тиков в самостоятельном режиме
	MaxTraversal time.Duration // Предел времени полного пути
}

// DefaultPhotonConfig возвращает конфигурацию по умолчанию
func DefaultPhotonConfig() PhotonConfig {
	return PhotonConfig{
		Speed:        DefaultPhotonSpeed,
		MaxDistance:  DefaultPhotonMaxDistance,
		TickInterval: DefaultTickInterval,
		MaxTraversal: DefaultMaxTraversal,
	}
}

// TraversalTime время, за которое фотон проходит MaxDistance
func (c PhotonConfig) TraversalTime() time.Duration {
	if c.Speed <= 0 {
		return 0
	}
	return time.Duration(c.MaxDistance / c.Speed * float64(c.TickInterval))
}

// Validate проверяет параметры и бюджет времени пути
func (c PhotonConfig) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w: скорость %.3f должна быть положительной", ErrInvalidPhotonConfig, c.Speed)
	}
	if c.MaxDistance <= 0 {
		return fmt.Errorf("%w: дистанция %.3f должна быть положительной", ErrInvalidPhotonConfig, c.MaxDistance)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: период тиков %v должен быть положительным", ErrInvalidPhotonConfig, c.TickInterval)
	}
	budget := c.MaxTraversal
	if budget <= 0 {
		budget = DefaultMaxTraversal
	}
	if traversal := c.TraversalTime(); traversal > budget {
		return fmt.Errorf("%w: %v при допустимых %v", ErrTraversalBudget, traversal, budget)
	}
	return nil
}
