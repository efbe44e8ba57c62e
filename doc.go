// Package spikeview extracts bounded, view-ready slices of large
// multichannel electrophysiology recordings for interactive inspection of
// spike-sorting results.
//
// The Controller sits between an immutable session dataset (raw samples,
// spike columns, templates) and a set of visualization surfaces. Each
// extractor follows the same pattern: deterministically select a bounded,
// evenly-spread subset of a cluster's spikes, fetch the corresponding rows
// from the dataset, and package them with the provenance the view needs.
//
//	ds, _ := dataset.New(params)
//	clustering := cluster.NewFromAssignments(ds.SpikeClusters())
//	ctl, _ := spikeview.New(ds, clustering)
//
//	wf, _ := ctl.Waveforms(clusterID)
//	tb, _ := ctl.Traces(model.Interval{Start: 10, End: 10.5})
//
// All operations are synchronous and stateless per call; cluster membership
// is re-resolved from the clustering view every time, so splits and merges
// applied between calls are always reflected.
package spikeview
