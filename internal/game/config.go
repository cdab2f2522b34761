package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidGameConfig ошибка параметров игрового цикла
var ErrInvalidGameConfig = errors.New("некорректная конфигурация игры")

// Config параметры управления и частоты выпуска фотонов
type Config struct {
	MoveSpeed       float64       // Длина шага игрока за один тик движения
	MoveInterval    time.Duration // Период тика движения
	YawSpeed        float64       // Градусов рыскания на единицу смещения мыши
	PitchSpeed      float64       // Градусов тангажа на единицу смещения мыши
	PhotonsPerEmit  int           // Фотонов за один выпуск
	EmitsPerClear   int           // Выпусков за одно обновление экрана
	ClearsPerSecond float64       // Обновлений экрана в секунду
	KeyHold         time.Duration // Сколько нажатая клавиша считается удерживаемой
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		MoveSpeed:       0.02,
		MoveInterval:    10 * time.Millisecond,
		YawSpeed:        0.05,
		PitchSpeed:      0.05,
		PhotonsPerEmit:  10,
		EmitsPerClear:   10,
		ClearsPerSecond: 1,
		KeyHold:         150 * time.Millisecond,
	}
}

// EmitInterval период между выпусками фотонов
func (c Config) EmitInterval() time.Duration {
	return time.Duration(float64(time.Second) / (float64(c.EmitsPerClear) * c.ClearsPerSecond))
}

// Validate проверяет параметры
func (c Config) Validate() error {
	switch {
	case c.MoveSpeed <= 0:
		return fmt.Errorf("%w: скорость движения %.3f", ErrInvalidGameConfig, c.MoveSpeed)
	case c.MoveInterval <= 0:
		return fmt.Errorf("%w: период движения %v", ErrInvalidGameConfig, c.MoveInterval)
	case c.PhotonsPerEmit <= 0 || c.EmitsPerClear <= 0 || c.ClearsPerSecond <= 0:
		return fmt.Errorf("%w: частота выпуска %d x %d x %.2f", ErrInvalidGameConfig,
			c.PhotonsPerEmit, c.EmitsPerClear, c.ClearsPerSecond)
	case c.KeyHold <= 0:
		return fmt.Errorf("%w: удержание клавиши %v", ErrInvalidGameConfig, c.KeyHold)
	}
	if c.EmitInterval() <= 0 {
		return fmt.Errorf("%w: период выпуска слишком мал", ErrInvalidGameConfig)
	}
	return nil
}
