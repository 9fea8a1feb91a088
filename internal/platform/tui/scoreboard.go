package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

const (
	historyLimit = 100 // Rounds loaded per variant
	trendLen     = 30  // Rounds drawn in the trend line
)

var trendLevels = []rune("▁▂▃▄▅▆▇█")

// historyOrder selects how finished rounds are listed.
type historyOrder int

const (
	orderRecent historyOrder = iota
	orderBest
)

func (o historyOrder) String() string {
	if o == orderBest {
		return "best first"
	}
	return "newest first"
}

// ScoreboardKeyMap defines the key bindings for the round history.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	Order   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Variant, k.Order, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Variant, k.Order}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Variant: key.NewBinding(key.WithKeys("tab", "v"), key.WithHelp("tab", "variant")),
		Order:   key.NewBinding(key.WithKeys("s", "o"), key.WithHelp("s", "sort")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the rounds finished since bubblepop started, one
// game variant at a time.
type ScoreboardModel struct {
	variants  []registry.GameInfo
	variant   int
	order     historyOrder
	store     *storage.Store
	rounds    []storage.ScoreEntry // Newest first
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	embedded  bool // Hosted by a SessionModel; leaving must not quit the program
}

// NewScoreboardModel creates the round history screen.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) gameID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.variant].ID
}

func (m *ScoreboardModel) newTable() table.Model {
	finished := max(m.width-48, 10)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Round", Width: 7},
			{Title: "Score", Width: 7},
			{Title: "", Width: 4},
			{Title: "Run", Width: 10},
			{Title: "Finished", Width: min(finished, 12)},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the selected variant's rounds from the store.
func (m *ScoreboardModel) load() {
	m.rounds, m.stats = nil, nil
	if m.store != nil && m.gameID() != "" {
		if rounds, err := m.store.RecentScores(m.gameID(), historyLimit); err == nil {
			m.rounds = rounds
		}
		if stats, err := m.store.GetGameStats(m.gameID()); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

// roundNumber returns the 1-based number of the i-th newest round.
func (m ScoreboardModel) roundNumber(i int) int {
	total := len(m.rounds)
	if m.stats != nil {
		total = m.stats.GamesCount
	}
	return total - i
}

// listed returns the loaded rounds in display order with their round numbers.
func (m ScoreboardModel) listed() ([]storage.ScoreEntry, []int) {
	rounds := make([]storage.ScoreEntry, len(m.rounds))
	copy(rounds, m.rounds)
	numbers := make(map[int64]int, len(rounds))
	for i, r := range rounds {
		numbers[r.ID] = m.roundNumber(i)
	}
	if m.order == orderBest {
		sort.SliceStable(rounds, func(i, j int) bool {
			if rounds[i].Score != rounds[j].Score {
				return rounds[i].Score > rounds[j].Score
			}
			return rounds[i].ID < rounds[j].ID
		})
	}

	nums := make([]int, len(rounds))
	for i, r := range rounds {
		nums[i] = numbers[r.ID]
	}
	return rounds, nums
}

func (m *ScoreboardModel) fillTable() {
	best := 0
	if m.stats != nil {
		best = m.stats.HighScore
	}

	rounds, nums := m.listed()
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		mark := ""
		if best > 0 && r.Score == best {
			mark = "best"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", nums[i]),
			fmt.Sprintf("%d", r.Score),
			mark,
			shortRunID(r.RunID),
			r.CreatedAt.Local().Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Variant):
			if len(m.variants) > 0 {
				m.variant = (m.variant + 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.fillTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the round history.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("ROUND HISTORY"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.variantLine(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n")
	if len(m.rounds) > 0 {
		b.WriteString(centerText(dimStyle.Render("trend ")+m.trendLine(), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	body := m.table.View()
	if len(m.rounds) == 0 {
		body = dimStyle.Italic(true).Padding(1, 3).Render(
			"No rounds finished yet.\nRounds are kept until bubblepop exits.")
	}
	b.WriteString(centerText(boxStyle.Render(body), m.width))
	b.WriteString("\n")
	if len(m.rounds) > 0 {
		b.WriteString(centerText(dimStyle.Render(m.order.String()), m.width))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// variantLine shows every variant with the selected one highlighted.
func (m ScoreboardModel) variantLine() string {
	active := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.variant {
			parts[i] = active.Render(v.Title)
		} else {
			parts[i] = inactive.Render(v.Title)
		}
	}
	return strings.Join(parts, " ")
}

// statsLine summarizes the selected variant's rounds.
func (m ScoreboardModel) statsLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if m.stats == nil || m.stats.GamesCount == 0 {
		return style.Render("no rounds this session")
	}
	return style.Render(fmt.Sprintf("%d rounds  |  best %d  |  avg %.1f  |  total %d  |  last %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalScore,
		m.stats.LastPlayed.Local().Format("15:04:05")))
}

// trendLine draws the latest rounds, oldest on the left.
func (m ScoreboardModel) trendLine() string {
	n := min(len(m.rounds), trendLen)
	scores := make([]int, n)
	for i := range n {
		scores[n-1-i] = m.rounds[i].Score
	}
	return sparkline(scores)
}

// sparkline scales scores onto block glyphs relative to the largest one.
func sparkline(scores []int) string {
	top := 0
	for _, s := range scores {
		top = max(top, s)
	}

	var b strings.Builder
	for _, s := range scores {
		level := 0
		if top > 0 {
			level = s * (len(trendLevels) - 1) / top
		}
		b.WriteRune(trendLevels[level])
	}
	return b.String()
}

// shortRunID trims a run uuid to its first group for display.
func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the round history.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
