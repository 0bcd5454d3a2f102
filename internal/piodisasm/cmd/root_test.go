package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"piodisasm/internal/disasm"
	"piodisasm/internal/hexfile"
)

func TestRunDisasmListing(t *testing.T) {
	// jmp 2; mov y, y; set pins, 0
	words := []disasm.Word{0x0002, 0xA042, 0xE000}
	var buf bytes.Buffer
	if err := runDisasm(&buf, words, Config{Name: defaultName}, outputListing, false); err != nil {
		t.Fatal(err)
	}

	want := "; Generated by piodisasm\n\n\n" +
		".program piodisasm_result\n" +
		"\n\n; program starts here\n\n\n" +
		"\tjmp label_0x2\n" +
		"\tmov Y, Y\n" +
		"label_0x2:\n" +
		"\tset PINS, 0\n"
	if got := buf.String(); got != want {
		t.Errorf("listing =\n%q\nwant\n%q", got, want)
	}
}

func TestRunDisasmLabelPlacement(t *testing.T) {
	words := []disasm.Word{0x0002, 0xE001, 0xE000}
	var buf bytes.Buffer
	if err := runDisasm(&buf, words, Config{Name: "labels"}, outputListing, false); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	labelCount := 0
	for i, line := range lines {
		if !strings.HasSuffix(line, ":") {
			continue
		}
		labelCount++
		if line != "label_0x2:" {
			t.Errorf("unexpected label line %q", line)
		}
		if i+1 >= len(lines) || lines[i+1] != "\tset PINS, 0" {
			t.Errorf("label is not followed by the set instruction")
		}
	}
	if labelCount != 1 {
		t.Errorf("got %d label lines, want 1", labelCount)
	}
}

func TestRunDisasmSideset(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Name: "ws2812", Sideset: 1, SidesetOptional: true}
	if err := runDisasm(&buf, []disasm.Word{0xF201}, cfg, outputListing, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, ".side_set 1 opt\n") {
		t.Errorf("missing side_set directive:\n%s", out)
	}
	if !strings.HasSuffix(out, "\tset PINS, 1\tside 1 [2]\n") {
		t.Errorf("unexpected instruction line:\n%s", out)
	}
}

func TestRunDisasmJSON(t *testing.T) {
	words := []disasm.Word{0x0001, 0xC043, 0xA03A}
	var buf bytes.Buffer
	if err := runDisasm(&buf, words, Config{Name: "json"}, outputJSON, false); err != nil {
		t.Fatal(err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Name != "json" {
		t.Errorf("Name = %q", out.Name)
	}
	if len(out.Instructions) != len(words) {
		t.Fatalf("got %d instructions, want %d", len(out.Instructions), len(words))
	}

	jmp := out.Instructions[0]
	if jmp.Word != "0001" || jmp.Op != "jmp" || jmp.Target == nil || *jmp.Target != 1 {
		t.Errorf("jmp = %+v", jmp)
	}
	if out.Instructions[1].Label != "label_0x1" {
		t.Errorf("irq label = %q, want label_0x1", out.Instructions[1].Label)
	}
	if out.Instructions[1].Note != disasm.IRQNote {
		t.Errorf("irq note = %q", out.Instructions[1].Note)
	}
	if out.Instructions[1].Target != nil {
		t.Errorf("irq has a target")
	}
	if got := out.Instructions[2].Reserved; len(got) != 1 || got[0] != "mov operation" {
		t.Errorf("mov reserved = %v", got)
	}
	if len(out.References) != 1 || out.References[0] != 1 {
		t.Errorf("References = %v", out.References)
	}

	kinds := make(map[string]bool)
	for _, f := range out.Findings {
		kinds[string(f.Kind)] = true
	}
	for _, k := range []string{"reserved", "low-confidence"} {
		if !kinds[k] {
			t.Errorf("missing %s finding in %v", k, out.Findings)
		}
	}
}

func TestRunDisasmJSONEmptyProgram(t *testing.T) {
	var buf bytes.Buffer
	if err := runDisasm(&buf, nil, Config{Name: "empty"}, outputJSON, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"references": []`, `"instructions": []`, `"findings": []`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestRunDisasmTableAndSummary(t *testing.T) {
	words := []disasm.Word{0x0001, 0xE000}

	var table bytes.Buffer
	if err := runDisasm(&table, words, Config{Name: "loop"}, outputTable, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(table.String(), "e000") || !strings.Contains(table.String(), "label_0x1") {
		t.Errorf("table output:\n%s", table.String())
	}

	var summary bytes.Buffer
	if err := runDisasm(&summary, words, Config{Name: "loop"}, outputSummary, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(summary.String(), "# loop\n") {
		t.Errorf("summary output:\n%s", summary.String())
	}
}

func TestRunDisasmRejectsBadConfig(t *testing.T) {
	var buf bytes.Buffer
	err := runDisasm(&buf, []disasm.Word{0xE000}, Config{Sideset: 6}, outputListing, false)
	if !errors.Is(err, disasm.ErrSidesetWidth) {
		t.Errorf("error = %v, want %v", err, disasm.ErrSidesetWidth)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote output alongside error: %q", buf.String())
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	odd := filepath.Join(dir, "odd.hex")
	if err := os.WriteFile(odd, []byte("e00001"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadImage(odd, nil); !errors.Is(err, hexfile.ErrOddLength) {
		t.Errorf("loadImage(odd) error = %v, want %v", err, hexfile.ErrOddLength)
	}

	im, err := loadImage("-", strings.NewReader("e081 e101\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(im.Words) != 2 || im.Words[0] != 0xE081 {
		t.Errorf("Words = %#04x", im.Words)
	}
}
