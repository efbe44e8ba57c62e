// Package model defines the core types shared across spikeview.
//
// # Identity Types
//
//   - SpikeID: dense index of a detected spike within a session (int)
//   - ClusterID: identifier of a spike grouping; merges can mint ids beyond
//     the template range
//   - TemplateID: identifier of a learned waveform template
//   - ChannelID: index of a recording channel
//
// # Data Types
//
//   - Matrix: row-major float32 matrix (samples x channels, spikes x features)
//   - Template: multichannel waveform kernel with its channel subset
//   - Interval: half-open time interval in seconds
//
// # Bundles
//
// Every extractor returns a bundle: the requested data plus the provenance
// (spike ids, channel ids, bounds) the view layer needs to correlate it.
package model
