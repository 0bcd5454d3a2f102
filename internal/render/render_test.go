package render

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"piodisasm/internal/analysis"
	"piodisasm/internal/disasm"
)

func mustDisassemble(cfg disasm.SidesetConfig, words ...disasm.Word) disasm.Stream {
	stream, err := disasm.Disassemble(words, cfg)
	Expect(err).NotTo(HaveOccurred())
	return stream
}

var _ = Describe("Listing", func() {
	It("should emit the exact pioasm listing", func() {
		// jmp 2; mov y, y; set pins, 0
		stream := mustDisassemble(disasm.SidesetConfig{}, 0x0002, 0xA042, 0xE000)

		var buf bytes.Buffer
		Expect(Listing(&buf, Header{Name: "piodisasm_result"}, stream)).To(Succeed())

		Expect(buf.String()).To(Equal("; Generated by piodisasm\n\n\n" +
			".program piodisasm_result\n" +
			"\n\n; program starts here\n\n\n" +
			"\tjmp label_0x2\n" +
			"\tmov Y, Y\n" +
			"label_0x2:\n" +
			"\tset PINS, 0\n"))
	})

	It("should print the side_set directive only for a non-zero width", func() {
		stream := mustDisassemble(disasm.SidesetConfig{Width: 1}, 0xF001)

		var buf bytes.Buffer
		Expect(Listing(&buf, Header{Name: "ws2812", Sideset: 1, Optional: true, Pindirs: true}, stream)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(".program ws2812\n.side_set 1 opt pindirs\n\n\n"))
		Expect(buf.String()).To(HaveSuffix("\tset PINS, 1\tside 1\n"))

		buf.Reset()
		Expect(Listing(&buf, Header{Name: "plain", Optional: true}, stream)).To(Succeed())
		Expect(buf.String()).NotTo(ContainSubstring(".side_set"))
	})

	It("should put the IRQ diagnostic on its own line", func() {
		stream := mustDisassemble(disasm.SidesetConfig{}, 0xC043)

		var buf bytes.Buffer
		Expect(Listing(&buf, Header{Name: "irq"}, stream)).To(Succeed())
		Expect(buf.String()).To(HaveSuffix("\t;IRQ support is not yet great!\n\tirq clear 3\n"))
	})

	It("should emit one instruction line per word", func() {
		words := []disasm.Word{0x0000, 0x2085, 0x4000, 0x6005, 0x8020, 0xA02A, 0xE03F}
		stream := mustDisassemble(disasm.SidesetConfig{}, words...)

		var buf bytes.Buffer
		Expect(Listing(&buf, Header{Name: "all"}, stream)).To(Succeed())
		body := strings.SplitN(buf.String(), "; program starts here\n\n\n", 2)[1]
		instLines := 0
		for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
			if strings.HasPrefix(line, "\t") {
				instLines++
			}
		}
		Expect(instLines).To(Equal(len(words)))
	})
})

var _ = Describe("Table", func() {
	It("should show raw words and labels", func() {
		stream := mustDisassemble(disasm.SidesetConfig{}, 0x0001, 0xE000)

		out := Table("loop", stream)
		Expect(out).To(ContainSubstring("loop"))
		Expect(out).To(ContainSubstring("0001"))
		Expect(out).To(ContainSubstring("e000"))
		Expect(out).To(ContainSubstring("label_0x1"))
		Expect(out).To(ContainSubstring("set PINS, 0"))
	})
})

var _ = Describe("SummaryMarkdown", func() {
	It("should list mnemonics, labels and findings", func() {
		sum := analysis.Summary{
			Name:         "blink",
			Instructions: 3,
			Ops:          []analysis.OpCount{{Op: "set", Count: 2}, {Op: "jmp", Count: 1}},
			Labels:       []int{0},
			Findings: []analysis.Finding{
				{Addr: 1, Kind: analysis.KindReserved, Message: "mov operation uses a reserved encoding"},
			},
		}

		md := SummaryMarkdown(sum)
		Expect(md).To(HavePrefix("# blink\n"))
		Expect(md).To(ContainSubstring("; 3 instructions, 1 labels, 1 findings"))
		Expect(md).To(ContainSubstring("| set | 2 |"))
		Expect(md).To(ContainSubstring("- `label_0x0`"))
		Expect(md).To(ContainSubstring("- `0x1` **reserved**: mov operation uses a reserved encoding"))
	})

	It("should say when there is nothing to report", func() {
		md := SummaryMarkdown(analysis.Summary{Name: "empty"})
		Expect(md).To(HaveSuffix("No findings.\n"))
		Expect(md).NotTo(ContainSubstring("## Labels"))
	})
})
