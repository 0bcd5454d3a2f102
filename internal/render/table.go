package render

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"piodisasm/internal/disasm"
)

// Table renders one row per instruction with its raw encoding.
func Table(title string, stream disasm.Stream) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{"Addr", "Word", "Label", "Instruction", "Side-set", "Note"})

	labels := stream.Labels()
	for addr, inst := range stream {
		label := ""
		if labels[addr] {
			label = disasm.LabelName(addr)
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%#x", addr),
			fmt.Sprintf("%04x", uint16(inst.Word)),
			label,
			inst.Text,
			inst.Sideset,
			inst.Note,
		})
	}
	return t.Render()
}
