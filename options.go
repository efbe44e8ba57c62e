package spikeview

// Selection limits matching the reference curation workflow: waveform views
// render few spikes from many temporal batches; feature and amplitude views
// want dense scatters; correlograms need the most spikes to fill bins.
const (
	DefaultWaveformCount     = 100
	DefaultWaveformBatchSize = 10
	DefaultFeatureCount      = 10000
	DefaultAmplitudeCount    = 10000
	DefaultCorrelogramCount  = 100000
)

type options struct {
	logger *Logger
	colors ColorResolver

	nSpikesWaveforms   int
	batchSizeWaveforms int
	nSpikesFeatures    int
	nSpikesAmplitudes  int
	nSpikesCorrelogram int
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the logger. Passing nil restores the no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithColorResolver sets the resolver used to color trace clips.
func WithColorResolver(r ColorResolver) Option {
	return func(o *options) {
		if r == nil {
			r = NewPalette()
		}
		o.colors = r
	}
}

// WithWaveformLimits sets the spike count and batch size for waveform
// extraction.
func WithWaveformLimits(count, batchSize int) Option {
	return func(o *options) {
		o.nSpikesWaveforms = count
		o.batchSizeWaveforms = batchSize
	}
}

// WithFeatureLimit sets the spike count for feature extraction and the
// two-cluster projection.
func WithFeatureLimit(count int) Option {
	return func(o *options) { o.nSpikesFeatures = count }
}

// WithAmplitudeLimit sets the spike count for amplitude extraction.
func WithAmplitudeLimit(count int) Option {
	return func(o *options) { o.nSpikesAmplitudes = count }
}

// WithCorrelogramLimit sets the spike count for correlogram extraction.
func WithCorrelogramLimit(count int) Option {
	return func(o *options) { o.nSpikesCorrelogram = count }
}

func defaultOptions() options {
	return options{
		logger:             NoopLogger(),
		colors:             NewPalette(),
		nSpikesWaveforms:   DefaultWaveformCount,
		batchSizeWaveforms: DefaultWaveformBatchSize,
		nSpikesFeatures:    DefaultFeatureCount,
		nSpikesAmplitudes:  DefaultAmplitudeCount,
		nSpikesCorrelogram: DefaultCorrelogramCount,
	}
}
