package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/nodeworld/internal/api"
	"github.com/annel0/nodeworld/internal/config"
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/game"
	"github.com/annel0/nodeworld/internal/logging"
	"github.com/annel0/nodeworld/internal/observability"
	"github.com/annel0/nodeworld/internal/render"
	"github.com/annel0/nodeworld/internal/render/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// Version версия сборки
var Version = "0.1.0"

type options struct {
	configPath string
	mapPath    string
	headless   bool
	frames     int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:     "nodeworld",
		Short:   "Мир из узлов графа, видимый фотонами",
		Long:    `nodeworld строит граф узлов из файла карты или сетки с рельефом и рисует его фотонами в терминале.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "путь к YAML конфигурации (или ENV NODEWORLD_CONFIG)")
	cmd.Flags().StringVarP(&opts.mapPath, "map", "m", "", "файл карты; перекрывает world.map_path")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "без терминала: рисовать в память")
	cmd.Flags().IntVar(&opts.frames, "frames", 3, "сколько обновлений экрана отрисовать в режиме --headless")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func execute(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mapPath != "" {
		cfg.World.MapPath = opts.mapPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.frames <= 0 {
		return fmt.Errorf("--frames должно быть положительным: %d", opts.frames)
	}

	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("nodeworld"); err != nil {
		return fmt.Errorf("инициализация логирования: %w", err)
	}
	defer logging.CloseDefaultLogger()
	fileLevel, consoleLevel, _ := cfg.LogLevels()
	for _, component := range []string{"nodeworld", "game", "api"} {
		logging.GetComponentLogger(component).SetLevels(consoleLevel, fileLevel)
	}

	if err := run(ctx, cfg, opts.headless, opts.frames); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("❌ %v", err)
		return err
	}
	logging.Info("👋 Работа завершена")
	return nil
}

func run(ctx context.Context, cfg *config.Config, headless bool, frames int) error {
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.TelemetryConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка остановки трассировки: %v", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics("nodeworld", registry)
	if err != nil {
		return err
	}

	start, err := buildWorld(cfg.World)
	if err != nil {
		return err
	}
	logging.Info("🌍 Игрок появился в узле %v", start.Node.Label)

	var (
		canvas  draw.Canvas
		screen  tcell.Screen
		sink    *terminal.Screen
		frameRe *render.Recorder
		width   float64
		height  float64
	)
	vcfg := cfg.ViewportConfig()
	if headless {
		frameRe = render.NewRecorder(vcfg.PhotonsWide, vcfg.PhotonsHigh, 1, 1, 0)
		canvas, width, height = frameRe, float64(vcfg.PhotonsWide), float64(vcfg.PhotonsHigh)
	} else {
		if screen, err = tcell.NewScreen(); err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		screen.EnableMouse()
		screen.HideCursor()
		// Вывод в консоль испортил бы экран терминала
		logging.SetConsoleOutput(io.Discard)

		sink = terminal.NewScreen(screen)
		sink.ShowLabels = cfg.Viewport.Labels
		w, h := sink.Size()
		canvas, width, height = sink, float64(w), float64(h)
	}

	viewport, err := render.NewViewport(vcfg, canvas, width, height, rand.New(rand.NewSource(time.Now().UnixNano())), metrics)
	if err != nil {
		return err
	}
	g, err := game.New(cfg.GameConfig(), viewport, start, metrics, logging.GetGameLogger())
	if err != nil {
		return err
	}

	if cfg.Debug.Enabled {
		var frameSource api.FrameSource
		if frameRe != nil {
			frameSource = frameRe
		}
		server, err := api.NewDebugServer(api.Config{
			Addr:     cfg.Debug.GetAddr(),
			Game:     g,
			Frames:   frameSource,
			Registry: registry,
			Logger:   logging.GetAPILogger(),
		})
		if err != nil {
			return err
		}
		go func() {
			if err := server.Start(); err != nil {
				logging.Error("❌ Отладочный сервер остановлен: %v", err)
			}
		}()
		defer func() {
			if err := server.Shutdown(context.Background()); err != nil {
				logging.Warn("Ошибка остановки отладочного сервера: %v", err)
			}
		}()
	}

	if headless {
		return runHeadless(ctx, g, frameRe, frames, os.Stdout)
	}

	sink.Resize(screen.Size())
	g.SetPresenter(sink)
	input := make(chan game.Input, 64)
	done := make(chan struct{})
	defer close(done)
	translator := terminal.NewInputTranslator(cfg.Game.GetLookStep())
	go terminal.Pump(screen, translator, input, done)

	return g.Run(ctx, resizeSink(sink, input))
}

// resizeSink перестраивает буфер терминала перед передачей InputResize в игру
func resizeSink(sink *terminal.Screen, in <-chan game.Input) <-chan game.Input {
	out := make(chan game.Input, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			if ev.Kind == game.InputResize {
				sink.Resize(int(ev.Width), int(ev.Height))
			}
			out <- ev
		}
	}()
	return out
}
