// Package detectors flags suspicious or partially understood encodings in
// decoded PIO programs. None of these stop disassembly; they surface in
// summaries and JSON output.
package detectors

import (
	"fmt"
	"strings"

	"piodisasm/internal/analysis"
	"piodisasm/internal/disasm"
)

// ReservedDetector reports operand fields that use a reserved encoding.
type ReservedDetector struct{}

// NewReservedDetector creates a new reserved field detector.
func NewReservedDetector() *ReservedDetector {
	return &ReservedDetector{}
}

func (d *ReservedDetector) Detect(stream disasm.Stream, findings []analysis.Finding) []analysis.Finding {
	for _, inst := range stream {
		for _, field := range inst.Reserved {
			findings = append(findings, analysis.Finding{
				Addr:    inst.Addr,
				Kind:    analysis.KindReserved,
				Message: fmt.Sprintf("%s uses a reserved encoding (%s)", field, inst.Text),
			})
		}
	}
	return findings
}

// JumpTargetDetector reports jumps whose target lies past the last
// instruction. Such targets are legal but never receive a label.
type JumpTargetDetector struct{}

// NewJumpTargetDetector creates a new jump target detector.
func NewJumpTargetDetector() *JumpTargetDetector {
	return &JumpTargetDetector{}
}

func (d *JumpTargetDetector) Detect(stream disasm.Stream, findings []analysis.Finding) []analysis.Finding {
	for _, inst := range stream {
		if !inst.HasTarget() || inst.Target < len(stream) {
			continue
		}
		findings = append(findings, analysis.Finding{
			Addr: inst.Addr,
			Kind: analysis.KindDanglingJump,
			Message: fmt.Sprintf("%s points past the end of the program (%d words), no label emitted",
				disasm.LabelName(inst.Target), len(stream)),
		})
	}
	return findings
}

// RangeDetector reports instructions at addresses no jump can encode.
// PIO instruction memory holds 32 words, so a longer input is usually a
// concatenation of programs or a wrong offset.
type RangeDetector struct{}

// NewRangeDetector creates a new jump range detector.
func NewRangeDetector() *RangeDetector {
	return &RangeDetector{}
}

func (d *RangeDetector) Detect(stream disasm.Stream, findings []analysis.Finding) []analysis.Finding {
	first := disasm.MaxJumpTarget + 1
	if len(stream) <= first {
		return findings
	}
	return append(findings, analysis.Finding{
		Addr: first,
		Kind: analysis.KindOutOfRange,
		Message: fmt.Sprintf("addresses %#x-%#x are beyond the 5-bit jump range",
			first, len(stream)-1),
	})
}

// ConfidenceDetector reports instructions the decoder annotated with a
// diagnostic note.
type ConfidenceDetector struct{}

// NewConfidenceDetector creates a new low-confidence detector.
func NewConfidenceDetector() *ConfidenceDetector {
	return &ConfidenceDetector{}
}

func (d *ConfidenceDetector) Detect(stream disasm.Stream, findings []analysis.Finding) []analysis.Finding {
	for _, inst := range stream {
		if inst.Note == "" {
			continue
		}
		findings = append(findings, analysis.Finding{
			Addr:    inst.Addr,
			Kind:    analysis.KindLowConfidence,
			Message: fmt.Sprintf("%s: %s", inst.Text, strings.TrimSuffix(inst.Note, "!")),
		})
	}
	return findings
}

// Default returns the chain used by the CLI.
func Default() *analysis.DetectorChain {
	return analysis.NewDetectorChain(
		NewReservedDetector(),
		NewJumpTargetDetector(),
		NewRangeDetector(),
		NewConfidenceDetector(),
	)
}
