// SPDX-License-Identifier: EPL-2.0

// Package observe provides the mixer's OpenTelemetry instruments and the
// SDK bootstrap used by the command-line player.
//
// The mixer records through the Metrics API only. [Noop] is the default so
// library users pay nothing unless they install a provider; tests should use
// [NewMetrics] with a ManualReader-backed provider.
package observe

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName is the instrumentation scope name used for all mixer metrics.
const meterName = "github.com/ik5/audiosys"

// Metrics holds the instruments the mixer records. All fields are safe for
// concurrent use.
type Metrics struct {
	// Updates counts Update calls that produced a window.
	Updates metric.Int64Counter

	// UpdateDuration tracks the wall time of one Update, in seconds.
	UpdateDuration metric.Float64Histogram

	// AdvancedFrames counts frames the producer advanced all voices by.
	AdvancedFrames metric.Int64Counter

	// ConsumedFrames counts frames copied out to the consumer.
	ConsumedFrames metric.Int64Counter

	// ActiveSounds tracks the number of live pool voices.
	ActiveSounds metric.Int64UpDownCounter

	// ReapedSounds counts pool voices removed after their source ended.
	ReapedSounds metric.Int64Counter

	// PoolGrowths counts reallocations of the sound pool.
	PoolGrowths metric.Int64Counter

	// ClippedSamples counts output samples whose magnitude exceeded full
	// scale before shaping.
	ClippedSamples metric.Int64Counter
}

// updateBuckets are histogram boundaries (in seconds) sized around a 60 Hz
// frame budget.
var updateBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.033,
}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Updates, err = m.Int64Counter("audiosys.updates",
		metric.WithDescription("Mixer update passes."),
	); err != nil {
		return nil, err
	}
	if met.UpdateDuration, err = m.Float64Histogram("audiosys.update.duration",
		metric.WithDescription("Wall time of one mixer update pass."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(updateBuckets...),
	); err != nil {
		return nil, err
	}
	if met.AdvancedFrames, err = m.Int64Counter("audiosys.frames.advanced",
		metric.WithDescription("Stereo frames every voice was advanced by."),
		metric.WithUnit("{frame}"),
	); err != nil {
		return nil, err
	}
	if met.ConsumedFrames, err = m.Int64Counter("audiosys.frames.consumed",
		metric.WithDescription("Stereo frames copied out to the audio callback."),
		metric.WithUnit("{frame}"),
	); err != nil {
		return nil, err
	}
	if met.ActiveSounds, err = m.Int64UpDownCounter("audiosys.sounds.active",
		metric.WithDescription("Sound-effect voices currently in the pool."),
	); err != nil {
		return nil, err
	}
	if met.ReapedSounds, err = m.Int64Counter("audiosys.sounds.reaped",
		metric.WithDescription("Sound-effect voices removed after their source ended."),
	); err != nil {
		return nil, err
	}
	if met.PoolGrowths, err = m.Int64Counter("audiosys.pool.growths",
		metric.WithDescription("Sound pool reallocations."),
	); err != nil {
		return nil, err
	}
	if met.ClippedSamples, err = m.Int64Counter("audiosys.samples.clipped",
		metric.WithDescription("Output samples beyond full scale before shaping."),
		metric.WithUnit("{sample}"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Noop returns instruments that discard everything.
func Noop() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		// The noop provider never fails.
		panic(err)
	}
	return m
}
