package viz

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/deckmenu/internal/deck"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

// fadeIn is how long a card takes to appear once its delay has passed.
const fadeIn = time.Second

type frameMsg time.Time

type Options struct {
	Theme  string
	FPS    int
	Logger *slog.Logger
	// Now overrides the wall clock, for tests.
	Now func() time.Time
}

// stageClock is shared by every copy of the model.
type stageClock struct {
	start   time.Time
	entered time.Time
	now     time.Time
}

// Model is the Bubble Tea model of one session.
type Model struct {
	seq        *sequencer.Sequencer
	sched      *teaScheduler
	clock      *stageClock
	nowFn      func() time.Time
	art        [][]string
	theme      Theme
	fps        int
	cursor     int
	menuCursor int
	width      int
	height     int
	showHelp   bool
	log        *slog.Logger
}

func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	cards := deck.Cards()
	art := make([][]string, len(cards))
	for i, c := range cards {
		lines, err := ParsePath(c.Path)
		if err != nil {
			return Model{}, fmt.Errorf("card %d artwork: %w", c.ID, err)
		}
		cv := NewCanvas(cardCols, cardRows)
		cv.Plot(lines)
		art[i] = cv.Lines()
	}

	now := opts.Now()
	clock := &stageClock{start: now, entered: now, now: now}
	sched := newTeaScheduler()
	m := Model{
		sched: sched,
		clock: clock,
		nowFn: opts.Now,
		art:   art,
		theme: GetTheme(opts.Theme),
		fps:   opts.FPS,
		log:   opts.Logger,
	}
	m.seq = sequencer.New(sched,
		sequencer.WithLogger(opts.Logger),
		sequencer.WithObserver(sequencer.ObserverFunc(func(tr sequencer.Transition) {
			t := opts.Now()
			clock.entered, clock.now = t, t
		})),
	)
	return m, nil
}

// Snapshot exposes the session state being drawn.
func (m Model) Snapshot() sequencer.Snapshot { return m.seq.Snapshot() }

// Close ends the session and drops pending timers.
func (m Model) Close() { m.seq.Close() }

func (m Model) Init() tea.Cmd { return m.frame() }

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case fireMsg:
		if !m.sched.fire(msg.id) {
			m.log.Debug("dropped timer", "timer", uint64(msg.id))
		}
		return m, m.sched.flush()
	case frameMsg:
		m.clock.now = time.Time(msg)
		return m, m.frame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.seq.Close()
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.log.Debug("theme changed", "theme", m.theme.Name)
		return m, nil
	}

	switch m.seq.Phase() {
	case sequencer.Idle:
		m.cardKey(msg)
	case sequencer.MenuRevealing:
		m.menuKey(msg)
	}
	return m, m.sched.flush()
}

// Cards sit on a 2x2 grid: id^1 is the horizontal neighbour, id^2 the
// vertical one.
func (m *Model) cardKey(msg tea.KeyMsg) {
	switch k := msg.String(); k {
	case "1", "2", "3", "4":
		m.cursor = int(k[0] - '1')
		m.pickCard(m.cursor)
	case "left", "h", "right", "l":
		m.cursor ^= 1
	case "up", "k", "down", "j":
		m.cursor ^= 2
	case "enter", " ":
		m.pickCard(m.cursor)
	}
}

func (m *Model) menuKey(msg tea.KeyMsg) {
	entries := deck.MenuEntries()
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(entries)-1 {
			m.menuCursor++
		}
	case "enter", " ":
		m.pickEntry(entries[m.menuCursor])
	}
}

func (m *Model) pickCard(id int) {
	ok, err := m.seq.SelectCard(id)
	switch {
	case err != nil:
		m.log.Error("card selection rejected", "card", id, "err", err)
	case ok:
		m.log.Info("card selected", "card", id)
	}
}

func (m *Model) pickEntry(label string) {
	ok, err := m.seq.SelectMenuEntry(label)
	switch {
	case err != nil:
		m.log.Error("menu selection rejected", "entry", label, "err", err)
	case ok:
		m.log.Info("menu entry selected", "entry", label)
	}
}

// Run starts the interactive widget and blocks until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer m.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
