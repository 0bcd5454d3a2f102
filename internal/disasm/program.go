package disasm

import (
	"fmt"
	"log/slog"
)

// MaxJumpTarget is the highest address a jump can encode.
const MaxJumpTarget = 31

// Disassemble decodes words in address order. The configuration is
// validated first; after that every word yields exactly one instruction.
func Disassemble(words []Word, cfg SidesetConfig) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sideset config: %w", err)
	}

	stream := make(Stream, 0, len(words))
	for addr, w := range words {
		inst := Decode(w, cfg)
		inst.Addr = addr
		stream = append(stream, inst)
	}

	slog.Debug("Disassembled program",
		"words", len(words),
		"sideset", cfg.Width,
		"enablePin", cfg.EnablePin,
		"references", len(stream.References()))
	return stream, nil
}

// References returns the distinct jump targets in order of first use.
func (s Stream) References() []int {
	var refs []int
	seen := make(map[int]bool)
	for _, inst := range s {
		if !inst.HasTarget() || seen[inst.Target] {
			continue
		}
		seen[inst.Target] = true
		refs = append(refs, inst.Target)
	}
	return refs
}

// Labels returns the set of addresses that receive a label: referenced
// addresses that exist in the program.
func (s Stream) Labels() map[int]bool {
	labels := make(map[int]bool)
	for _, ref := range s.References() {
		if ref >= 0 && ref < len(s) {
			labels[ref] = true
		}
	}
	return labels
}

// Lines returns the listing body: an optional label line per address
// followed by the instruction, each without trailing newline.
func (s Stream) Lines() []string {
	labels := s.Labels()
	lines := make([]string, 0, len(s)+len(labels))
	for addr, inst := range s {
		if labels[addr] {
			lines = append(lines, LabelName(addr)+":")
		}
		if inst.Note != "" {
			lines = append(lines, "\t;"+inst.Note)
		}
		lines = append(lines, "\t"+inst.String())
	}
	return lines
}
