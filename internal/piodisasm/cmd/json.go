package cmd

import (
	"encoding/json"
	"io"

	"piodisasm/internal/analysis"
	"piodisasm/internal/disasm"
)

// JSONSideset mirrors the side-set part of the configuration.
type JSONSideset struct {
	Width     int  `json:"width"`
	EnablePin bool `json:"enablePin"`
	Optional  bool `json:"optional"`
	Pindirs   bool `json:"pindirs"`
}

// JSONInstruction is one decoded word.
type JSONInstruction struct {
	Address  int      `json:"address"`
	Word     string   `json:"word"`
	Op       string   `json:"op"`
	Text     string   `json:"text"`
	Note     string   `json:"note,omitempty"`
	Target   *int     `json:"target,omitempty"`
	Label    string   `json:"label,omitempty"`
	Sideset  string   `json:"sideset,omitempty"`
	Reserved []string `json:"reserved,omitempty"`
}

// JSONOutput is the document written by --json.
type JSONOutput struct {
	Name         string             `json:"name"`
	Sideset      JSONSideset        `json:"sideset"`
	References   []int              `json:"references"`
	Instructions []JSONInstruction  `json:"instructions"`
	Findings     []analysis.Finding `json:"findings"`
}

func newJSONOutput(cfg Config, stream disasm.Stream, findings []analysis.Finding) JSONOutput {
	labels := stream.Labels()
	out := JSONOutput{
		Name: cfg.Name,
		Sideset: JSONSideset{
			Width:     cfg.Sideset,
			EnablePin: cfg.SidesetEnable,
			Optional:  cfg.SidesetOptional,
			Pindirs:   cfg.SidesetPindirs,
		},
		References:   stream.References(),
		Instructions: make([]JSONInstruction, 0, len(stream)),
		Findings:     findings,
	}
	if out.References == nil {
		out.References = []int{}
	}
	if out.Findings == nil {
		out.Findings = []analysis.Finding{}
	}

	for _, inst := range stream {
		ji := JSONInstruction{
			Address:  inst.Addr,
			Word:     wordHex(inst.Word),
			Op:       inst.Op,
			Text:     inst.Text,
			Note:     inst.Note,
			Sideset:  inst.Sideset,
			Reserved: inst.Reserved,
		}
		if inst.HasTarget() {
			target := inst.Target
			ji.Target = &target
		}
		if labels[inst.Addr] {
			ji.Label = disasm.LabelName(inst.Addr)
		}
		out.Instructions = append(out.Instructions, ji)
	}
	return out
}

func writeJSON(w io.Writer, cfg Config, stream disasm.Stream, findings []analysis.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newJSONOutput(cfg, stream, findings))
}
