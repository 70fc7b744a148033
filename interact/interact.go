package interact

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goroom "github.com/jdginn/go-mirror-room/room"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	segment goroom.RaySegment
}

func (i item) Title() string {
	return fmt.Sprintf("#%d  %.2f long", i.segment.Depth, i.segment.Length())
}

func (i item) Description() string {
	s := i.segment
	switch {
	case s.HitAim:
		return fmt.Sprintf("reaches the aim at (%.2f, %.2f)", s.HitPoint.X, s.HitPoint.Y)
	case s.HitWall != nil:
		return fmt.Sprintf("hits wall %d at (%.2f, %.2f)", s.HitWall.Index(), s.HitPoint.X, s.HitPoint.Y)
	default:
		return "escapes"
	}
}

func (i item) FilterValue() string {
	return i.Title()
}

type model struct {
	list     list.Model
	view     goroom.View
	out      string
	selected int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if selected, ok := m.list.SelectedItem().(item); ok && selected.segment.Depth != m.selected {
		m.selected = selected.segment.Depth
		m.view.Highlight = []goroom.RaySegment{selected.segment}
		if err := m.view.SavePNG(m.out); err != nil {
			log.Printf("saving %s: %v", m.out, err)
		}
	}
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

func newModel(view goroom.View, out string) model {
	segments := view.Room.Segments()
	items := make([]list.Item, len(segments))
	for i, segment := range segments {
		items[i] = item{segment: segment}
	}

	m := model{list: list.New(items, list.NewDefaultDelegate(), 0, 0), view: view, out: out}
	m.list.Title = fmt.Sprintf("Ray path: %d segments", len(segments))
	return m
}

// Interact browses the traced path of the view's room. Every time the
// selection moves the room is rendered to out with the selected segment
// highlighted.
func Interact(view goroom.View, out string) error {
	if view.Room.Ray() == nil {
		return goroom.ErrNoRay
	}

	p := tea.NewProgram(newModel(view, out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
