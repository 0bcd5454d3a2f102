package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"piodisasm/internal/disasm"
	"piodisasm/internal/hexfile"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <word>...",
	Short: "Decode individual instruction words",
	Long: `Decode one or more 16-bit instruction words given on the command line.
Jump targets are printed as labels even though no listing is produced.`,
	Example: `
# Decode a single word
piodisasm decode e081

# Decode several words with a one-bit side-set
piodisasm decode --sideset 1 0xf001 0x1000
  `,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		words := make([]disasm.Word, 0, len(args))
		for _, arg := range args {
			w, err := hexfile.ParseWord(arg)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
		return runDecode(cmd.OutOrStdout(), words, cfg.SidesetConfig())
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func wordHex(w disasm.Word) string {
	return fmt.Sprintf("%04x", uint16(w))
}

// decodeLine formats a single instruction as address, word, text and note.
func decodeLine(addr int, inst disasm.Inst) string {
	line := fmt.Sprintf("%#x\t%s\t%s", addr, wordHex(inst.Word), inst.String())
	if inst.Note != "" {
		line += "\t; " + inst.Note
	}
	return line
}

func runDecode(w io.Writer, words []disasm.Word, cfg disasm.SidesetConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for addr, word := range words {
		if _, err := fmt.Fprintln(w, decodeLine(addr, disasm.Decode(word, cfg))); err != nil {
			return err
		}
	}
	return nil
}
