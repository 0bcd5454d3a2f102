package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"piodisasm/internal/analysis"
	"piodisasm/internal/detectors"
	"piodisasm/internal/disasm"
	"piodisasm/internal/piodisasm/styles"
	"piodisasm/internal/render"
	"piodisasm/internal/ui/colorize"
)

type viewMode int

const (
	viewListing viewMode = iota
	viewLabels
	viewDetails
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse a disassembled program interactively",
	Example: `
# Browse a program with a two-bit optional side-set
piodisasm view spi.hex --sideset 2 --sideset-optional --sideset-enable
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		im, err := loadImage(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		stream, err := disasm.Disassemble(im.Words, cfg.SidesetConfig())
		if err != nil {
			return err
		}

		program := tea.NewProgram(
			newViewModel(cfg, stream),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

type labelItem struct {
	addr int
	text string
}

func (i labelItem) Title() string       { return disasm.LabelName(i.addr) }
func (i labelItem) Description() string { return i.text }
func (i labelItem) FilterValue() string { return disasm.LabelName(i.addr) + " " + i.text }

type labelDelegate struct{}

func (d labelDelegate) Height() int                               { return 1 }
func (d labelDelegate) Spacing() int                              { return 0 }
func (d labelDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d labelDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(labelItem)
	if !ok {
		return
	}

	indicator := " "
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if index == m.Index() {
		indicator = ">"
		labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	}
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	fmt.Fprintf(w, " %s  %s  %s", indicator, labelStyle.Render(fmt.Sprintf("%-10s", i.Title())), textStyle.Render(i.text))
}

type viewModel struct {
	listing    viewport.Model
	labels     list.Model
	details    viewport.Model
	mode       viewMode
	cfg        Config
	stream     disasm.Stream
	labelLines map[int]int // label address -> line in the listing
	width      int
	height     int
}

func newViewModel(cfg Config, stream disasm.Stream) viewModel {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	labels := list.New([]list.Item{}, labelDelegate{}, 80, 24)
	labels.SetShowStatusBar(false)
	labels.SetFilteringEnabled(true)
	labels.Title = "Labels"
	labels.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)

	dvp := viewport.New()
	dvp.SetWidth(80)
	dvp.SetHeight(24)

	m := viewModel{
		listing:    vp,
		labels:     labels,
		details:    dvp,
		mode:       viewListing,
		cfg:        cfg,
		stream:     stream,
		labelLines: make(map[int]int),
		width:      80,
		height:     24,
	}
	m.updateListing()
	m.updateLabels()
	m.updateDetails()
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) updateListing() {
	var buf bytes.Buffer
	if err := render.Listing(&buf, m.cfg.Header(), m.stream); err != nil {
		m.listing.SetContent(err.Error())
		return
	}
	plain := buf.String()

	for n, line := range strings.Split(plain, "\n") {
		if !strings.HasPrefix(line, "label_") || !strings.HasSuffix(line, ":") {
			continue
		}
		addr, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(line, "label_"), ":"), 0, 0)
		if err == nil {
			m.labelLines[int(addr)] = n
		}
	}

	content := plain
	if !colorize.Disabled() {
		if colored, err := colorize.ColorizeListing(plain); err == nil {
			content = colored
		}
	}
	m.listing.SetContent(strings.TrimSuffix(content, "\n"))
}

func (m *viewModel) updateLabels() {
	marked := m.stream.Labels()
	items := make([]list.Item, 0, len(marked))
	for _, inst := range m.stream {
		if marked[inst.Addr] {
			items = append(items, labelItem{addr: inst.Addr, text: inst.String()})
		}
	}
	m.labels.SetItems(items)
}

func (m *viewModel) updateDetails() {
	md := render.SummaryMarkdown(analysis.Summarize(m.cfg.Name, m.stream, detectors.Default()))
	width := m.width
	if width == 0 {
		width = 80
	}
	m.details.SetContent(strings.TrimSuffix(styles.Render(md, width-2), "\n"))
}

// handleKey applies a key press outside of list filtering. It reports
// whether the key was consumed.
func (m *viewModel) handleKey(key string) (tea.Cmd, bool) {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit, true
	case "l":
		if len(m.labels.Items()) > 0 {
			m.mode = viewLabels
		}
		return nil, true
	case "d":
		m.mode = viewDetails
		return nil, true
	case "esc":
		if m.mode != viewListing {
			m.mode = viewListing
			return nil, true
		}
	case "enter":
		if m.mode == viewLabels {
			if item, ok := m.labels.SelectedItem().(labelItem); ok {
				m.mode = viewListing
				m.listing.SetYOffset(m.labelLines[item.addr])
			}
			return nil, true
		}
	case "tab":
		switch m.mode {
		case viewListing:
			if len(m.labels.Items()) > 0 {
				m.mode = viewLabels
			} else {
				m.mode = viewDetails
			}
		case viewLabels:
			m.mode = viewDetails
		case viewDetails:
			m.mode = viewListing
		}
		return nil, true
	case "shift+tab":
		switch m.mode {
		case viewListing:
			m.mode = viewDetails
		case viewLabels:
			m.mode = viewListing
		case viewDetails:
			if len(m.labels.Items()) > 0 {
				m.mode = viewLabels
			} else {
				m.mode = viewListing
			}
		}
		return nil, true
	}
	return nil, false
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.listing.SetWidth(msg.Width)
			m.listing.SetHeight(msg.Height - 2)
			m.labels.SetWidth(msg.Width)
			m.labels.SetHeight(msg.Height - 2)
			m.details.SetWidth(msg.Width)
			m.details.SetHeight(msg.Height - 2)
			m.updateDetails()
		}

	case tea.KeyMsg:
		key := msg.String()
		if m.mode == viewLabels && m.labels.FilterState() == list.Filtering {
			if key == "ctrl+c" {
				return m, tea.Quit
			}
		} else if cmd, ok := m.handleKey(key); ok {
			return m, cmd
		}
	}

	switch m.mode {
	case viewLabels:
		m.labels, cmd = m.labels.Update(msg)
	case viewDetails:
		m.details, cmd = m.details.Update(msg)
	default:
		m.listing, cmd = m.listing.Update(msg)
	}
	return m, cmd
}

func (m viewModel) menu() string {
	switch m.mode {
	case viewLabels:
		return " Enter: go to label • D: details • Tab: cycle • Q: quit "
	case viewDetails:
		return " Esc: listing • L: labels • Tab: cycle • Q: quit "
	}
	if len(m.labels.Items()) > 0 {
		return " L: labels • D: details • Tab: cycle • Q: quit "
	}
	return " D: details • Tab: cycle • Q: quit "
}

func (m viewModel) View() string {
	var content string
	switch m.mode {
	case viewLabels:
		content = m.labels.View()
	case viewDetails:
		content = m.details.View()
	default:
		content = m.listing.View()
	}

	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return content + "\n" + menuStyle.Render(m.menu())
}
