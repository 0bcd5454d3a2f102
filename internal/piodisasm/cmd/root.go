package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"piodisasm/internal/analysis"
	"piodisasm/internal/detectors"
	"piodisasm/internal/disasm"
	"piodisasm/internal/hexfile"
	"piodisasm/internal/piodisasm/log"
	"piodisasm/internal/piodisasm/styles"
	"piodisasm/internal/render"
	"piodisasm/internal/ui/colorize"
)

// outputMode selects what the root command prints.
type outputMode int

const (
	outputListing outputMode = iota
	outputJSON
	outputTable
	outputSummary
)

func init() {
	rootCmd.PersistentFlags().String("name", defaultName, "Name for program")
	rootCmd.PersistentFlags().Int("sideset", 0, "Side-set bit count (0-5)")
	rootCmd.PersistentFlags().Bool("sideset-optional", false, "Side-set is optional (adds opt to .side_set)")
	rootCmd.PersistentFlags().Bool("sideset-pindirs", false, "Side-set applies to PINDIRS")
	rootCmd.PersistentFlags().Bool("sideset-enable", false, "Whether the side-set enable bit (EXECCTRL_SIDE_EN) is set")
	rootCmd.PersistentFlags().String("config", "", "Load configuration from a JSON file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("json", "j", false, "Output results as JSON")
	rootCmd.Flags().BoolP("table", "t", false, "Output a table with raw words")
	rootCmd.Flags().BoolP("summary", "s", false, "Output a markdown summary with findings")
	rootCmd.Flags().Bool("no-color", false, "Disable syntax highlighting")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.MarkFlagsMutuallyExclusive("json", "table", "summary")
}

var rootCmd = &cobra.Command{
	Use:   "piodisasm [file]",
	Short: "Disassembler for RP2040 PIO programs",
	Long: `piodisasm turns PIO machine code, given as hex text, back into pioasm source.
Jump targets become labels, and side-set and delay bits are decoded according
to the side-set configuration of the state machine.`,
	Example: `
# Disassemble a program dumped from a PIO instruction memory
piodisasm ws2812.hex --name ws2812 --sideset 1

# Read hex from standard input
echo "e081 e101 e000 0001" | piodisasm -

# Show a summary of reserved encodings and other findings
piodisasm -s program.hex
  `,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
		if cpuprofile != "" {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		path := "-"
		if len(args) == 1 {
			path = args[0]
		} else if !stdinPiped() {
			return fmt.Errorf("usage: piodisasm <file> (or pipe hex into standard input)")
		}

		im, err := loadImage(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		mode := outputListing
		if v, _ := cmd.Flags().GetBool("json"); v {
			mode = outputJSON
		}
		if v, _ := cmd.Flags().GetBool("table"); v {
			mode = outputTable
		}
		if v, _ := cmd.Flags().GetBool("summary"); v {
			mode = outputSummary
		}

		noColor, _ := cmd.Flags().GetBool("no-color")
		color := !noColor && !colorize.Disabled() && term.IsTerminal(os.Stdout.Fd())

		return runDisasm(cmd.OutOrStdout(), im.Words, cfg, mode, color)
	},
}

// loadImage reads a hex program from path, or from stdin when path is "-".
func loadImage(path string, stdin io.Reader) (*hexfile.Image, error) {
	if path == "-" {
		im, err := hexfile.Read(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to load standard input: %w", err)
		}
		return im, nil
	}
	im, err := hexfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return im, nil
}

// runDisasm decodes words and writes them in the requested format.
func runDisasm(w io.Writer, words []disasm.Word, cfg Config, mode outputMode, color bool) error {
	stream, err := disasm.Disassemble(words, cfg.SidesetConfig())
	if err != nil {
		return err
	}

	switch mode {
	case outputJSON:
		findings := detectors.Default().Detect(stream)
		return writeJSON(w, cfg, stream, findings)

	case outputTable:
		_, err := fmt.Fprintln(w, render.Table(cfg.Name, stream))
		return err

	case outputSummary:
		md := render.SummaryMarkdown(analysis.Summarize(cfg.Name, stream, detectors.Default()))
		if color {
			md = styles.Render(md, terminalWidth())
		}
		_, err := io.WriteString(w, md)
		return err
	}

	var buf bytes.Buffer
	if err := render.Listing(&buf, cfg.Header(), stream); err != nil {
		return err
	}
	out := buf.String()
	if color {
		colored, err := colorize.ColorizeListing(out)
		if err != nil {
			slog.Debug("Highlighting failed, printing plain listing", "error", err)
		}
		out = colored
	}
	_, err = io.WriteString(w, out)
	return err
}

func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return 80
	}
	return width - 2
}

// stdinPiped reports whether hex can be read from standard input.
func stdinPiped() bool {
	if term.IsTerminal(os.Stdin.Fd()) {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeNamedPipe != 0 || fi.Mode().IsRegular()
}

func Execute() {
	// fang renders help and errors as styled markdown, which only makes
	// sense on a terminal and would corrupt machine-readable output.
	plain := false
	for _, arg := range os.Args[1:] {
		if arg == "--json" || arg == "-j" || arg == "--no-color" {
			plain = true
			break
		}
	}
	if !plain && !term.IsTerminal(os.Stdout.Fd()) {
		plain = true
	}

	atexit.Register(func() {
		if err := log.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "could not close log: %v\n", err)
		}
	})

	var err error
	if plain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = rootCmd.ExecuteContext(ctx)
		stop()
	} else {
		err = fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		)
	}
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
