// Package core implements the continuous-timeline layout engine: the
// positioned-object tree, coordinate mapping between tree nodes, flowable
// timelines with line and page breaking, and the document render cycle.
//
// # Object tree
//
// Every laid-out element is an [Object]: a node with a local position
// relative to its parent. Concrete element types embed [ObjectBase], which
// provides the tree mechanics. Document-space position of a node is the
// vector sum of local positions up the parent chain; [MapBetween] computes
// offsets between arbitrary nodes through their common ancestor.
//
// # Two coordinate spaces
//
// Nodes parented inside a [Flowable] live in flowable-timeline space: their
// x positions are offsets along one continuous horizontal musical timeline.
// Once the flowable is broken into [Line] segments, two objects adjacent on
// the timeline may render on different pages, so document-space positions
// of flowable contents are only meaningful per line slice. Mapping between
// two nodes inside the same flowable therefore works in timeline space.
//
// # Render cycle
//
// [Document.Render] runs three synchronous phases: pre-render (rebuild
// caches, register margin controllers, break every flowable into lines),
// render (walk the now-stable line list and issue slice render calls to a
// [Renderer]), and post-render (clear transient caches so later document
// mutation cannot observe stale geometry).
package core
