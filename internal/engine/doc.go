// Package engine provides the asynchronous authoring-run engine.
// It walks each run through the orchestration graph (profiling,
// standards alignment, knowledge-graph enrichment, design option
// generation, teacher selection, parallel component development with
// review loops, and final assembly with re-entry points), persisting
// state after every node and parking runs on teacher input.
package engine
