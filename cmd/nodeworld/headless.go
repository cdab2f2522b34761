package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/annel0/nodeworld/internal/game"
	"github.com/annel0/nodeworld/internal/logging"
	"github.com/annel0/nodeworld/internal/render"
)

// runHeadless рисует frames обновлений экрана в память без ожидания
// таймеров и печатает итоговый кадр.
func runHeadless(ctx context.Context, g *game.Game, rec *render.Recorder, frames int, out io.Writer) error {
	vcfg := g.Viewport().Config()
	pixels := vcfg.PhotonsWide * vcfg.PhotonsHigh
	for frame := 0; frame < frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for emitted := 0; emitted < pixels; {
			n := g.EmitBurst(ctx)
			if n == 0 {
				return fmt.Errorf("кадр %d: фотоны не выпускаются", frame+1)
			}
			emitted += n
			if err := g.Frame(); err != nil {
				return err
			}
		}
		for g.Viewport().Active() > 0 {
			if err := g.Frame(); err != nil {
				return err
			}
		}
		logging.Debug("Кадр %d готов: выпущено %d фотонов", frame+1, g.Snapshot().Emitted)
	}
	return printFrame(out, rec)
}

// printFrame печатает кадр цветными пробелами (24-битный ANSI) и метки
func printFrame(out io.Writer, rec *render.Recorder) error {
	var b strings.Builder
	for y, row := range rec.Frame() {
		for x := range row {
			c := rec.Pixel(x, y)
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm  ", c.R, c.G, c.B)
		}
		b.WriteString("\x1b[0m ")
		for x := range row {
			label := rec.LabelAt(x, y)
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(&b, " %-10s", label)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}
