package analysis

import "piodisasm/internal/disasm"

// Detector inspects a decoded program and reports findings. It receives the
// findings of the detectors that ran before it and returns the full set,
// so it may drop or rewrite earlier findings as well as add new ones.
type Detector interface {
	Detect(stream disasm.Stream, findings []Finding) []Finding
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(stream disasm.Stream, findings []Finding) []Finding

// Detect calls f.
func (f DetectorFunc) Detect(stream disasm.Stream, findings []Finding) []Finding {
	return f(stream, findings)
}

// DetectorChain runs multiple detectors in sequence
type DetectorChain struct {
	detectors []Detector
}

// NewDetectorChain creates a new detector chain
func NewDetectorChain(detectors ...Detector) *DetectorChain {
	return &DetectorChain{
		detectors: detectors,
	}
}

// Detect runs all detectors in sequence
func (dc *DetectorChain) Detect(stream disasm.Stream) []Finding {
	var result []Finding
	for _, detector := range dc.detectors {
		result = detector.Detect(stream, result)
	}
	return result
}
