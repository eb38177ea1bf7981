package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kismeter/blendfile"
	"github.com/kismeter/blendfile/dna"
	"github.com/kismeter/blendfile/file"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseState int

const (
	stateBlocks browseState = iota
	stateDetail
)

type blockRow struct {
	block *file.Block
	strct *dna.Structure // nil when the sdna index names no structure
}

type browseModel struct {
	err       error
	filename  string
	doc       *blendfile.Document
	rows      []blockRow
	visible   []int // indexes into rows after filtering
	filter    textinput.Model
	filtering bool
	selected  int
	offset    int
	height    int
	state     browseState
}

func newBrowseModel(filename string) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "code or structure"
	ti.Prompt = "/"
	ti.Width = 30
	return &browseModel{
		filename: filename,
		filter:   ti,
		height:   20,
		state:    stateBlocks,
	}
}

type openedMsg struct {
	err error
	doc *blendfile.Document
}

func (m *browseModel) Init() tea.Cmd {
	return m.openFile
}

func (m *browseModel) openFile() tea.Msg {
	doc, err := blendfile.Import(m.filename)
	if err != nil {
		return openedMsg{err: err}
	}
	return openedMsg{doc: doc}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
		m.scroll()

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.refilter()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateBlocks {
				m.filtering = true
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "up", "k":
			if m.state == stateBlocks && m.selected > 0 {
				m.selected--
				m.scroll()
			}

		case "down", "j":
			if m.state == stateBlocks && m.selected < len(m.visible)-1 {
				m.selected++
				m.scroll()
			}

		case "enter":
			if m.state == stateBlocks && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateBlocks
			case stateBlocks:
				if m.filter.Value() != "" {
					m.filter.SetValue("")
					m.refilter()
				}
			}
		}

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.buildRows()
		m.refilter()
	}

	return m, nil
}

func (m *browseModel) buildRows() {
	blocks := m.doc.File.Blocks
	m.rows = make([]blockRow, len(blocks))
	for i := range blocks {
		row := blockRow{block: &blocks[i]}
		if s, ok := m.doc.DB.Catalog.StructAt(int(blocks[i].SDNAIndex)); ok {
			row.strct = s
		}
		m.rows[i] = row
	}
}

func (m *browseModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, row := range m.rows {
		if needle != "" {
			name := ""
			if row.strct != nil {
				name = row.strct.Name
			}
			if !strings.Contains(strings.ToLower(row.block.Code+" "+name), needle) {
				continue
			}
		}
		m.visible = append(m.visible, i)
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.doc == nil {
		return "Loading file..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("blendinfo"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("  ")
	b.WriteString(typeStyle.Render(m.doc.File.Header.String()))
	b.WriteString("\n\n")

	switch m.state {
	case stateBlocks:
		if m.filtering || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n")
		}
		end := m.offset + m.height
		if end > len(m.visible) {
			end = len(m.visible)
		}
		for vi := m.offset; vi < end; vi++ {
			row := m.rows[m.visible[vi]]
			if vi == m.selected {
				b.WriteString(selectedStyle.Render("> " + m.formatRow(row)))
			} else {
				b.WriteString("  " + m.formatRow(row))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n%d/%d blocks\n", len(m.visible), len(m.rows))
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • / filter • q quit"))

	case stateDetail:
		row := m.rows[m.visible[m.selected]]
		blk := row.block
		fmt.Fprintf(&b, "Block %s at 0x%x\n", codeStyle.Render(blk.Code), blk.Address)
		fmt.Fprintf(&b, "%d byte(s), %d instance(s), sdna %d\n\n", blk.Size, blk.Count, blk.SDNAIndex)
		if row.strct == nil {
			b.WriteString("no DNA structure recorded for this block\n")
		} else {
			fmt.Fprintf(&b, "%s\n", row.strct)
			for _, f := range row.strct.Fields() {
				fmt.Fprintf(&b, "  +%-5d %s\n", f.Offset, typeStyle.Render(f.String()))
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *browseModel) formatRow(row blockRow) string {
	name := "-"
	if row.strct != nil {
		name = row.strct.Name
	}
	return fmt.Sprintf("%s %-22s %5d %10d bytes  0x%x",
		codeStyle.Render(fmt.Sprintf("%-4s", row.block.Code)),
		name, row.block.Count, row.block.Size, row.block.Address)
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowseModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
