package disasm

// Field extraction. Operand fields live in the low byte of a word; bits
// 12-8 hold side-set/delay and are handled in sideset.go.

// OpcodeClass returns bits 15-13 of w.
func OpcodeClass(w Word) Class {
	return Class((w >> 13) & 0b111)
}

// field returns width bits of w starting at bit shift.
func field(w Word, shift, width uint) uint16 {
	return uint16(w>>shift) & (1<<width - 1)
}

// bit reports whether bit n of w is set.
func bit(w Word, n uint) bool {
	return w&(1<<n) != 0
}

// Operand fields shared by several classes.

// index5 is the low five bits: jump address, wait index, bit count, set data.
func index5(w Word) uint16 { return field(w, 0, 5) }

// upper3 is bits 7-5: jump condition, in source, out/mov/set destination.
func upper3(w Word) uint16 { return field(w, 5, 3) }

// bitCount decodes a 5-bit IN/OUT shift count, where 0 encodes 32.
func bitCount(w Word) int {
	n := int(index5(w))
	if n == 0 {
		return 32
	}
	return n
}

// tail returns bits 12-8, shared between side-set and delay.
func tail(w Word) uint8 {
	return uint8(field(w, 8, 5))
}

// symbols resolves table lookups and remembers which fields hit a
// reserved encoding.
type symbols struct {
	reserved []string
}

func (s *symbols) lookup(table []string, v uint16, name string) string {
	if int(v) >= len(table) {
		s.reserved = append(s.reserved, name)
		return Reserved
	}
	sym := table[v]
	if sym == Reserved {
		s.reserved = append(s.reserved, name)
	}
	return sym
}
