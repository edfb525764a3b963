package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/stac"
)

// newBrowseCmd creates the browse command.
func newBrowseCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse <catalog-href>",
		Short: "Navigate a catalog interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, rw, err := loadCatalog(ctx, args[0], noCache)
			if err != nil {
				return err
			}

			model, err := newBrowseModel(ctx, rw, cat)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP response cache")
	return cmd
}

// browseEntry is one selectable row: a child container or an item.
type browseEntry struct {
	obj       stac.Object
	container stac.Container // non-nil when the entry can be descended into
}

// browseModel is the bubbletea model for catalog navigation. It holds the
// current container, its resolved entries, and the path walked so far;
// resolution happens on descent, so remote subtrees load lazily.
type browseModel struct {
	ctx     context.Context
	reader  stac.Reader
	current stac.Container
	path    []stac.Container
	entries []browseEntry
	cursor  int
	height  int
	offset  int
	err     error
}

func newBrowseModel(ctx context.Context, r stac.Reader, root *stac.Catalog) (*browseModel, error) {
	m := &browseModel{ctx: ctx, reader: r, height: 15}
	if err := m.enter(root); err != nil {
		return nil, err
	}
	return m, nil
}

// enter makes cat the current container and resolves its entries.
func (m *browseModel) enter(cat stac.Container) error {
	children, err := cat.Children(m.ctx, m.reader)
	if err != nil {
		return err
	}
	items, err := cat.Items(m.ctx, m.reader)
	if err != nil {
		return err
	}

	entries := make([]browseEntry, 0, len(children)+len(items))
	for _, c := range children {
		entries = append(entries, browseEntry{obj: c, container: c})
	}
	for _, it := range items {
		entries = append(entries, browseEntry{obj: it})
	}

	m.current = cat
	m.entries = entries
	m.cursor = 0
	m.offset = 0
	return nil
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", "right", "l":
			if m.cursor < len(m.entries) {
				if sel := m.entries[m.cursor]; sel.container != nil {
					m.path = append(m.path, m.current)
					if err := m.enter(sel.container); err != nil {
						m.err = err
						m.path = m.path[:len(m.path)-1]
					}
				}
			}
		case "backspace", "left", "h":
			if n := len(m.path); n > 0 {
				parent := m.path[n-1]
				m.path = m.path[:n-1]
				if err := m.enter(parent); err != nil {
					m.err = err
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("stacgraph browse"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ descend  ⌫ up  q quit"))
	b.WriteString("\n\n")

	b.WriteString(StyleHighlight.Render(m.breadcrumb()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(StyleDim.Render("  (empty container)"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.height, len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		label := e.obj.ID()
		kind := string(e.obj.Type())
		style := styleItem
		if e.container != nil {
			style = styleCollection
		}
		if i == m.cursor {
			style = style.Bold(true)
		}
		b.WriteString(cursor + style.Render(label) + " " + StyleDim.Render(kind) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, max(len(m.entries), 1))))
	return b.String()
}

// breadcrumb renders the walked path down to the current container.
func (m *browseModel) breadcrumb() string {
	parts := make([]string, 0, len(m.path)+1)
	for _, c := range m.path {
		parts = append(parts, c.ID())
	}
	parts = append(parts, m.current.ID())
	return strings.Join(parts, " "+iconArrow+" ")
}

var _ tea.Model = (*browseModel)(nil)
