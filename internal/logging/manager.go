package logging

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// LoggerManager управляет множественными логгерами для разных компонентов
type LoggerManager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once

	defaultMu     sync.RWMutex
	defaultLogger = NewWriterLogger("main", consoleOutput, INFO)
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			loggers: make(map[string]*Logger),
		}
	})
	return globalManager
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger, nil
	}
	lm.mu.RUnlock()

	// Создаем новый логгер под write lock
	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай race condition
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать логгер %s: %w", component, err)
	}

	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или консольный fallback при ошибке
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		settingsMu.RLock()
		console := consoleOutput
		settingsMu.RUnlock()
		return NewWriterLogger(component, console, INFO)
	}
	return logger
}

// CloseAll закрывает все логгеры
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("не удалось закрыть логгер %s: %w", component, err)
		}
	}

	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// ListComponents возвращает отсортированный список компонентов
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel устанавливает уровень логирования для компонента
func (lm *LoggerManager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	lm.mu.RLock()
	logger, exists := lm.loggers[component]
	lm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("логгер компонента %s не найден", component)
	}

	logger.SetLevels(consoleLevel, fileLevel)
	return nil
}

// SetConsoleOutput перенаправляет консоль всех логгеров, включая будущие.
// Терминальный интерфейс передает сюда io.Discard.
func SetConsoleOutput(w io.Writer) {
	settingsMu.Lock()
	consoleOutput = w
	settingsMu.Unlock()

	lm := GetLoggerManager()
	lm.mu.RLock()
	for _, logger := range lm.loggers {
		logger.SetConsoleOutput(w)
	}
	lm.mu.RUnlock()

	currentDefault().SetConsoleOutput(w)
}

// Удобные функции для получения логгеров
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetGameLogger() *Logger {
	return GetComponentLogger("game")
}

func GetRenderLogger() *Logger {
	return GetComponentLogger("render")
}

func GetAPILogger() *Logger {
	return GetComponentLogger("api")
}

// InitDefaultLogger создает логгер по умолчанию для пакетных функций
func InitDefaultLogger(component string) error {
	logger, err := GetLoggerManager().GetLogger(component)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
	return nil
}

// CloseDefaultLogger закрывает все файлы логов
func CloseDefaultLogger() {
	_ = GetLoggerManager().CloseAll()
}

// SetDefaultLevel задает уровень консоли логгера по умолчанию
func SetDefaultLevel(level LogLevel) {
	currentDefault().SetLevels(level, TRACE)
}

func currentDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func Trace(format string, args ...interface{}) { currentDefault().Trace(format, args...) }
func Debug(format string, args ...interface{}) { currentDefault().Debug(format, args...) }
func Info(format string, args ...interface{})  { currentDefault().Info(format, args...) }
func Warn(format string, args ...interface{})  { currentDefault().Warn(format, args...) }
func Error(format string, args ...interface{}) { currentDefault().Error(format, args...) }
