package disasm

// Class is the 3-bit opcode class of a PIO instruction.
type Class uint8

const (
	ClassJMP Class = iota
	ClassWAIT
	ClassIN
	ClassOUT
	ClassPushPull
	ClassMOV
	ClassIRQ
	ClassSET

	numClasses
)

var classNames = [numClasses]string{
	ClassJMP:      "jmp",
	ClassWAIT:     "wait",
	ClassIN:       "in",
	ClassOUT:      "out",
	ClassPushPull: "push/pull",
	ClassMOV:      "mov",
	ClassIRQ:      "irq",
	ClassSET:      "set",
}

func (c Class) String() string {
	if c < numClasses {
		return classNames[c]
	}
	return "unknown"
}

// Reserved is rendered for encodings the architecture leaves unassigned.
const Reserved = "RESERVED"

// Symbol tables, indexed by the raw field value. An empty string in
// jmpConditions means "always"; everywhere else Reserved marks an
// unassigned encoding.
var (
	jmpConditions = [8]string{
		"",      // always
		"!X",    // X zero
		"X--",   // X non-zero, post-decrement
		"!Y",    // Y zero
		"Y--",   // Y non-zero, post-decrement
		"X!=Y",  // X not equal Y
		"PIN",   // branch on input pin
		"!OSRE", // output shift register not empty
	}

	waitSources = [4]string{
		"GPIO",
		"PIN",
		"IRQ",
		Reserved,
	}

	inSources = [8]string{
		"PINS",
		"X",
		"Y",
		"NULL",
		Reserved,
		Reserved,
		"ISR",
		"OSR",
	}

	outDestinations = [8]string{
		"PINS",
		"X",
		"Y",
		"NULL",
		"PINDIRS",
		"PC",
		"ISR",
		"EXEC",
	}

	movDestinations = [8]string{
		"PINS",
		"X",
		"Y",
		Reserved,
		"EXEC",
		"PC",
		"ISR",
		"OSR",
	}

	movOperations = [4]string{
		"",   // none
		"!",  // invert
		"::", // bit-reverse
		Reserved,
	}

	movSources = [8]string{
		"PINS",
		"X",
		"Y",
		"NULL",
		Reserved,
		"STATUS",
		"ISR",
		"OSR",
	}

	setDestinations = [8]string{
		"PINS",
		"X",
		"Y",
		Reserved,
		"PINDIRS",
		Reserved,
		Reserved,
		Reserved,
	}
)
