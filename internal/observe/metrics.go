// SPDX-License-Identifier: EPL-2.0

// Package observe exports playback counters as OpenTelemetry metrics.
//
// The audio callback only bumps atomics inside worklet.Processor; the
// instruments here are observable and read those atomics when a reader
// collects, so nothing on the audio path touches the metrics SDK.
package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/audtempo/worklet"
)

// meterName is the instrumentation scope for every audtempo metric.
const meterName = "github.com/ik5/audtempo"

// StatsSource is what RegisterProcessor observes. *worklet.Processor
// satisfies it.
type StatsSource interface {
	Stats() worklet.Stats
	PositionFrame() int
	Active() bool
}

// RegisterProcessor publishes the counters of src under the player
// attribute. Unregister the returned registration when the player goes
// away.
func RegisterProcessor(mp metric.MeterProvider, player string, src StatsSource) (metric.Registration, error) {
	m := mp.Meter(meterName)

	counter := func(name, desc string) (metric.Int64ObservableCounter, error) {
		c, err := m.Int64ObservableCounter(name, metric.WithDescription(desc))
		if err != nil {
			return nil, fmt.Errorf("observe: creating %s: %w", name, err)
		}
		return c, nil
	}

	callbacks, err := counter("audtempo.callbacks", "Audio callbacks served.")
	if err != nil {
		return nil, err
	}
	rendered, err := counter("audtempo.frames.rendered", "Frames produced by the pipeline.")
	if err != nil {
		return nil, err
	}
	silence, err := counter("audtempo.frames.silence", "Frames padded with silence.")
	if err != nil {
		return nil, err
	}
	seeks, err := counter("audtempo.seeks", "Seeks applied on the audio side.")
	if err != nil {
		return nil, err
	}
	loaded, err := counter("audtempo.sessions.loaded", "Sessions that started playing.")
	if err != nil {
		return nil, err
	}
	ended, err := counter("audtempo.sessions.ended", "Sessions that stopped playing.")
	if err != nil {
		return nil, err
	}

	position, err := m.Int64ObservableGauge("audtempo.position",
		metric.WithDescription("Source frame the current session reads next."),
		metric.WithUnit("{frame}"),
	)
	if err != nil {
		return nil, fmt.Errorf("observe: creating audtempo.position: %w", err)
	}
	active, err := m.Int64ObservableGauge("audtempo.active",
		metric.WithDescription("1 while a session is playing."),
	)
	if err != nil {
		return nil, fmt.Errorf("observe: creating audtempo.active: %w", err)
	}

	attrs := metric.WithAttributes(attribute.String("player", player))
	return m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		st := src.Stats()
		o.ObserveInt64(callbacks, int64(st.Callbacks), attrs)
		o.ObserveInt64(rendered, int64(st.FramesRendered), attrs)
		o.ObserveInt64(silence, int64(st.SilenceFrames), attrs)
		o.ObserveInt64(seeks, int64(st.Seeks), attrs)
		o.ObserveInt64(loaded, int64(st.SessionsLoaded), attrs)
		o.ObserveInt64(ended, int64(st.SessionsEnded), attrs)
		o.ObserveInt64(position, int64(src.PositionFrame()), attrs)

		var on int64
		if src.Active() {
			on = 1
		}
		o.ObserveInt64(active, on, attrs)
		return nil
	}, callbacks, rendered, silence, seeks, loaded, ended, position, active)
}
