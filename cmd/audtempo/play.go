// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats"
	"github.com/ik5/audtempo/internal/config"
	"github.com/ik5/audtempo/internal/observe"
	"github.com/ik5/audtempo/soundtouch"
	"github.com/ik5/audtempo/utils"
	"github.com/ik5/audtempo/worklet"
)

const bytesPerSample = 2

// play decodes path and plays it through the default output device until
// the file ends or ctx is cancelled.
func play(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string, seekSeconds float64) error {
	buf, err := formats.DecodeFile(formats.NewRegistry(), path)
	if err != nil {
		return err
	}

	rate := cfg.Playback.SampleRate
	if rate == 0 {
		rate = buf.SampleRate
	}
	if rate != buf.SampleRate {
		logger.Info("resampling", slog.Int("from", buf.SampleRate), slog.Int("to", rate))
		if buf, err = audio.Resample(buf, rate); err != nil {
			return fmt.Errorf("resampling: %w", err)
		}
	}

	p := worklet.New(
		worklet.WithControls(soundtouch.NewControls(cfg.Pipeline.Params())),
		worklet.WithStretchOptions(cfg.Pipeline.StretchOptions(rate)),
		worklet.WithInboxSize(cfg.Playback.InboxSize),
		worklet.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Metrics.ListenAddr != "" {
		prov, err := observe.InitProvider(ctx, observe.ProviderConfig{})
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		defer prov.Shutdown(context.Background())

		reg, err := observe.RegisterProcessor(prov.MeterProvider, "play", p)
		if err != nil {
			return err
		}
		defer reg.Unregister()

		go serveMetrics(ctx, cfg.Metrics.ListenAddr, prov.Handler(), logger)
	}

	sess, err := p.Load(buf)
	if err != nil {
		return err
	}
	if seekSeconds > 0 {
		if err := p.Seek(int(seekSeconds * float64(rate))); err != nil {
			return err
		}
	}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("initializing audio context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	devCfg := malgo.DefaultDeviceConfig(malgo.Playback)
	devCfg.Playback.Format = malgo.FormatS16
	devCfg.Playback.Channels = soundtouch.Channels
	devCfg.SampleRate = uint32(rate)
	devCfg.PeriodSizeInMilliseconds = uint32(cfg.Playback.PeriodMs)

	// One second of headroom; periods are far shorter.
	scratch := make([]float32, rate*soundtouch.Channels)
	dev, err := malgo.InitDevice(mctx.Context, devCfg, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			n := min(int(frameCount)*soundtouch.Channels, len(scratch), len(out)/bytesPerSample)
			p.Process(scratch[:n])
			for i, v := range scratch[:n] {
				binary.LittleEndian.PutUint16(out[i*bytesPerSample:], uint16(utils.Float32ToInt16(v)))
			}
			clear(out[n*bytesPerSample:])
		},
	})
	if err != nil {
		return fmt.Errorf("initializing playback device: %w", err)
	}
	defer dev.Uninit()

	if err := dev.Start(); err != nil {
		return fmt.Errorf("starting playback device: %w", err)
	}
	logger.Info("playing",
		slog.String("file", path),
		slog.String("session", sess.ID),
		slog.Int("sample_rate", rate),
		slog.Duration("duration", buf.Duration()),
	)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-sess.Done:
			break loop
		case <-ctx.Done():
			logger.Info("interrupted")
			break loop
		case <-ticker.C:
			logger.Debug("position",
				slog.Duration("at", time.Duration(p.PositionFrame())*time.Second/time.Duration(rate)),
			)
		}
	}

	if err := dev.Stop(); err != nil {
		return fmt.Errorf("stopping playback device: %w", err)
	}

	st := p.Stats()
	logger.Info("playback finished",
		slog.Uint64("callbacks", st.Callbacks),
		slog.Uint64("frames", st.FramesRendered),
		slog.Uint64("silence_frames", st.SilenceFrames),
	)
	return nil
}
