// Package analysis inspects decoded PIO programs: it runs detectors over a
// stream and condenses the result into a summary for reports.
package analysis

import (
	"log/slog"
	"sort"

	"piodisasm/internal/disasm"
)

// OpCount is the number of instructions using one mnemonic.
type OpCount struct {
	Op    string `json:"op"`
	Count int    `json:"count"`
}

// Summary describes a decoded program.
type Summary struct {
	Name         string    `json:"name"`
	Instructions int       `json:"instructions"`
	Ops          []OpCount `json:"ops"`
	Labels       []int     `json:"labels"`
	References   []int     `json:"references"`
	Findings     []Finding `json:"findings"`
}

// Summarize counts mnemonics, collects labels and runs chain over stream.
// A nil chain produces no findings.
func Summarize(name string, stream disasm.Stream, chain *DetectorChain) Summary {
	counts := make(map[string]int)
	for _, inst := range stream {
		counts[inst.Op]++
	}
	ops := make([]OpCount, 0, len(counts))
	for op, n := range counts {
		ops = append(ops, OpCount{Op: op, Count: n})
	}
	// most used first, ties by name
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Count != ops[j].Count {
			return ops[i].Count > ops[j].Count
		}
		return ops[i].Op < ops[j].Op
	})

	var labels []int
	for addr := range stream.Labels() {
		labels = append(labels, addr)
	}
	sort.Ints(labels)

	var findings []Finding
	if chain != nil {
		findings = chain.Detect(stream)
	}
	slog.Debug("Summarized program", "name", name, "findings", len(findings))

	return Summary{
		Name:         name,
		Instructions: len(stream),
		Ops:          ops,
		Labels:       labels,
		References:   stream.References(),
		Findings:     findings,
	}
}
