// Package render turns decoded PIO programs into text: the assembler
// listing, a tabular view and a markdown summary.
package render

import (
	"io"
	"strconv"
	"strings"

	"piodisasm/internal/disasm"
)

// Header carries the directives printed before the program body. Optional
// and Pindirs are presentation only; the decoder never looks at them.
type Header struct {
	Name     string
	Sideset  int
	Optional bool
	Pindirs  bool
}

// Listing writes the program in pioasm syntax. The output is stable byte
// for byte since other tools feed it back into the assembler.
func Listing(w io.Writer, h Header, stream disasm.Stream) error {
	var b strings.Builder
	b.WriteString("; Generated by piodisasm\n\n\n")
	b.WriteString(".program " + h.Name + "\n")
	if h.Sideset > 0 {
		b.WriteString(".side_set " + strconv.Itoa(h.Sideset))
		if h.Optional {
			b.WriteString(" opt")
		}
		if h.Pindirs {
			b.WriteString(" pindirs")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n\n; program starts here\n\n\n")

	for _, line := range stream.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
