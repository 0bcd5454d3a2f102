package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"piodisasm/internal/disasm"
	"piodisasm/internal/hexfile"
)

var followCmd = &cobra.Command{
	Use:   "follow <file>",
	Short: "Disassemble a hex dump as it is written",
	Long: `Follow a hex file and decode each line as it is appended, the way
tail -f prints a log. Every line holds one or more whole words. Addresses keep
counting across lines. Labels are not resolved because the program is never
complete.`,
	Example: `
# Decode words written by a logic analyzer capture script
piodisasm follow capture.hex --sideset 2 --sideset-enable

# Decode the file once and exit
piodisasm follow --follow=false capture.hex
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		follow, _ := cmd.Flags().GetBool("follow")
		return runFollow(cmd.Context(), cmd.OutOrStdout(), args[0], cfg.SidesetConfig(), follow)
	},
}

func init() {
	followCmd.Flags().Bool("follow", true, "Keep waiting for new lines")
	rootCmd.AddCommand(followCmd)
}

func runFollow(ctx context.Context, w io.Writer, path string, cfg disasm.SidesetConfig, follow bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t, err := tail.TailFile(path, tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to follow %s: %w", path, err)
	}
	defer t.Cleanup()

	addr := 0
	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Wait()
			}
			if line.Err != nil {
				return line.Err
			}
			if strings.TrimSpace(line.Text) == "" {
				continue
			}
			im, err := hexfile.Parse(line.Text)
			if err != nil {
				slog.Warn("Skipping line", "line", line.Num, "error", err)
				continue
			}
			for _, word := range im.Words {
				inst := disasm.Decode(word, cfg)
				if _, err := fmt.Fprintln(w, decodeLine(addr, inst)); err != nil {
					_ = t.Stop()
					return err
				}
				addr++
			}
		}
	}
}
