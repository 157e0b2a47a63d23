// Package tui provides an interactive browser for deserialized node trees.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/views/tree"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// App is the browser application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	title    string
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	treeView *tree.View
	bar      *status.Bar
	help     help.Model
	showHelp bool
	width    int
	height   int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser over the given roots. Title names the chunk.
func NewApp(title string, roots []domain.Node) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		title:    title,
		styles:   s,
		keymap:   km,
		treeView: tree.NewView(s, km, roots),
		bar:      status.NewBar(s, km),
		help:     help.New(),
	}
	a.syncBar()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("lionweb - " + a.title)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.bar.SetWidth(msg.Width)
		a.help.Width = msg.Width
		a.layout()
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Help):
			a.showHelp = !a.showHelp
			a.layout()
			return a, nil
		}

		var cmd tea.Cmd
		a.treeView, cmd = a.treeView.Update(msg)
		a.syncBar()
		return a, cmd
	}

	return a, nil
}

// layout gives the tree everything but the title, status bar and help.
func (a *App) layout() {
	reserved := 2
	if a.showHelp {
		reserved += len(a.keymap.FullHelp()[0]) + 1
	}
	height := a.height - reserved
	if height < 1 {
		height = 1
	}
	a.treeView.SetDimensions(a.width, height)
}

func (a *App) syncBar() {
	a.bar.SetPath(a.treeView.Path())
	a.bar.SetPosition(a.treeView.Cursor()+1, a.treeView.Rows())
}

// View implements tea.Model.
func (a *App) View() string {
	view := a.styles.Title.Render(a.title) + "\n" + a.treeView.View() + "\n"
	if a.showHelp {
		view += a.help.FullHelpView(a.keymap.FullHelp()) + "\n"
	}
	return view + a.bar.View()
}

// ShowingHelp reports whether the full help is visible.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, title string, roots []domain.Node) error {
	p := tea.NewProgram(NewApp(title, roots), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
