// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audtempo"
	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats"
	"github.com/ik5/audtempo/formats/wav"
	"github.com/ik5/audtempo/internal/config"
)

// renderFiles renders every input to outDir/<name>.wav, at most
// cfg.Render.Workers at a time. The first failure cancels the rest.
func renderFiles(ctx context.Context, cfg *config.Config, logger *slog.Logger, outDir string, files []string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	reg := formats.NewRegistry()
	settings := audtempo.Settings{
		Tempo:          cfg.Pipeline.Tempo,
		Rate:           cfg.Pipeline.Rate,
		PitchSemitones: cfg.Pipeline.PitchSemitones,
		Stretch:        cfg.Pipeline.StretchOptions(0),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Render.Workers)
	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderFile(reg, path, outDir, settings, cfg.Render.BitDepth, logger)
		})
	}
	return g.Wait()
}

func renderFile(reg *audio.Registry, path, outDir string, s audtempo.Settings, bitDepth int, logger *slog.Logger) error {
	start := time.Now()

	in, err := formats.DecodeFile(reg, path)
	if err != nil {
		return err
	}
	out, err := audtempo.RenderBuffer(in, s)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".wav"
	dst := filepath.Join(outDir, name)
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := wav.Write(f, out, bitDepth); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("rendered",
		slog.String("input", path),
		slog.String("output", dst),
		slog.Duration("in_duration", in.Duration()),
		slog.Duration("out_duration", out.Duration()),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}
