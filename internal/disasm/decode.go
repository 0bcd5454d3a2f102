package disasm

import (
	"fmt"
	"strconv"
)

// IRQNote is attached to every IRQ instruction. Only the plain index mode
// is decoded, so relative IRQ numbers come out wrong.
const IRQNote = "IRQ support is not yet great!"

type decodeFunc func(w Word, s *symbols) Inst

var decoders = [numClasses]decodeFunc{
	ClassJMP:      decodeJMP,
	ClassWAIT:     decodeWAIT,
	ClassIN:       decodeIN,
	ClassOUT:      decodeOUT,
	ClassPushPull: decodePushPull,
	ClassMOV:      decodeMOV,
	ClassIRQ:      decodeIRQ,
	ClassSET:      decodeSET,
}

// Decode decodes a single word. It never fails: reserved operand values
// render as Reserved and a class without a decoder yields a placeholder.
func Decode(w Word, cfg SidesetConfig) Inst {
	class := OpcodeClass(w)

	var inst Inst
	var s symbols
	if fn := decoders[class]; fn != nil {
		inst = fn(w, &s)
	} else {
		inst = placeholder(class)
	}

	inst.Word = w
	inst.Class = class
	inst.Reserved = s.reserved
	inst.Sideset = DecodeSideset(w, cfg).String()
	return inst
}

func placeholder(class Class) Inst {
	return Inst{
		Op:     "unknown",
		Text:   fmt.Sprintf("%#b not implemented", uint8(class)),
		Target: NoTarget,
	}
}

func decodeJMP(w Word, s *symbols) Inst {
	addr := int(index5(w))
	text := "jmp "
	if cond := jmpConditions[upper3(w)]; cond != "" {
		text += cond + " "
	}
	return Inst{Op: "jmp", Text: text + LabelName(addr), Target: addr}
}

func decodeWAIT(w Word, s *symbols) Inst {
	polarity := field(w, 7, 1)
	source := s.lookup(waitSources[:], field(w, 5, 2), "wait source")
	return Inst{
		Op:     "wait",
		Text:   fmt.Sprintf("wait %d %s %d", polarity, source, index5(w)),
		Target: NoTarget,
	}
}

func decodeIN(w Word, s *symbols) Inst {
	source := s.lookup(inSources[:], upper3(w), "in source")
	return Inst{
		Op:     "in",
		Text:   "in " + source + ", " + strconv.Itoa(bitCount(w)),
		Target: NoTarget,
	}
}

func decodeOUT(w Word, s *symbols) Inst {
	dest := s.lookup(outDestinations[:], upper3(w), "out destination")
	return Inst{
		Op:     "out",
		Text:   "out " + dest + ", " + strconv.Itoa(bitCount(w)),
		Target: NoTarget,
	}
}

// decodePushPull handles both FIFO instructions; bit 7 selects pull.
func decodePushPull(w Word, s *symbols) Inst {
	op, cond := "push", "iffull"
	if bit(w, 7) {
		op, cond = "pull", "ifempty"
	}

	text := op + " "
	if bit(w, 6) {
		text += cond + " "
	}
	if bit(w, 5) {
		text += "block"
	} else {
		text += "noblock"
	}
	return Inst{Op: op, Text: text, Target: NoTarget}
}

func decodeMOV(w Word, s *symbols) Inst {
	dest := s.lookup(movDestinations[:], upper3(w), "mov destination")
	op := s.lookup(movOperations[:], field(w, 3, 2), "mov operation")
	source := s.lookup(movSources[:], field(w, 0, 3), "mov source")
	return Inst{
		Op:     "mov",
		Text:   "mov " + dest + ", " + op + source,
		Target: NoTarget,
	}
}

func decodeIRQ(w Word, s *symbols) Inst {
	index := index5(w) & 0b111

	mode := "nowait"
	switch {
	case bit(w, 6):
		mode = "clear"
	case bit(w, 5):
		mode = "wait"
	}
	return Inst{
		Op:     "irq",
		Text:   fmt.Sprintf("irq %s %d", mode, index),
		Note:   IRQNote,
		Target: NoTarget,
	}
}

func decodeSET(w Word, s *symbols) Inst {
	dest := s.lookup(setDestinations[:], upper3(w), "set destination")
	return Inst{
		Op:     "set",
		Text:   fmt.Sprintf("set %s, %d", dest, index5(w)),
		Target: NoTarget,
	}
}
