// Package orchestrator wires the loader → catalog → engine → extractor →
// synthesizer → renderer pipeline behind one entry point, providing
// dependency injection friendly options for consumers that want to swap
// individual stages.
package orchestrator
