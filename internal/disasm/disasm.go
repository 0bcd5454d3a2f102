// Package disasm decodes RP2040 PIO instruction words into assembler text.
// A PIO program is at most 32 words of 16 bits; every word decodes to
// exactly one instruction, and jump targets are resolved into labels in a
// second pass over the decoded stream.
package disasm

import "fmt"

// Word is a raw 16-bit PIO instruction.
type Word uint16

// NoTarget marks an instruction that does not reference an address.
const NoTarget = -1

// Inst is a decoded PIO instruction.
type Inst struct {
	Addr     int      // word offset within the program
	Word     Word     // raw encoding
	Class    Class    // opcode class from bits 15-13
	Op       string   // mnemonic in lowercase
	Text     string   // mnemonic and operands
	Note     string   // diagnostic comment emitted on its own line before Text
	Target   int      // jump target, NoTarget when absent
	Sideset  string   // side-set/delay annotation, possibly empty
	Reserved []string // operand fields that decoded to a reserved value
}

// HasTarget reports whether the instruction references an address.
func (i Inst) HasTarget() bool {
	return i.Target != NoTarget
}

// String returns the instruction the way it appears in a listing line,
// without label or leading tab.
func (i Inst) String() string {
	if i.Sideset == "" {
		return i.Text
	}
	return i.Text + "\t" + i.Sideset
}

// Stream is a program: one instruction per input word, in address order.
type Stream []Inst

// LabelName returns the label emitted for addr.
func LabelName(addr int) string {
	return fmt.Sprintf("label_%#x", addr)
}
