// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/loopvote/coercion"
	"github.com/danielhkuo/loopvote/commit"
	"github.com/danielhkuo/loopvote/guestbook"
	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/scheduler"
)

type tab int

const (
	tabVote tab = iota
	tabStandings
	tabComments
)

var tabNames = []string{"Vote", "Standings", "Comments"}

// Keys for each engine action while a ballot prompt is open.
var actionKeys = map[coercion.Action]string{
	coercion.ActionPay:         "p",
	coercion.ActionSwitch:      "s",
	coercion.ActionAccept:      "y",
	coercion.ActionDecline:     "n",
	coercion.ActionAcknowledge: "enter",
}

// Deps is everything the model needs from the outside world.
type Deps struct {
	Boot      models.InitResponse
	Submitter commit.Submitter // nil keeps votes local
	Poster    guestbook.Poster // nil keeps messages local
	Timings   coercion.Timings
	Rand      coercion.Rand
	Clock     scheduler.Scheduler // defaults to scheduler.Real
	Name      string              // guestbook signature
	DeepLink  int                 // house to select on start, 0 for none
	Now       func() time.Time
}

type (
	timerMsg  func()
	resultMsg commit.Result
	tickMsg   time.Time
	selectMsg int
)

// Model is the Bubble Tea model for the voting booth.
type Model struct {
	houses []models.House
	target int
	name   string
	now    func() time.Time

	engine *coercion.Engine
	svc    *commit.Service
	board  *guestbook.Board

	timers  chan func()
	results chan commit.Result
	cues    *atomic.Int32

	view      coercion.View
	seenCues  int32
	deepLink  int
	activeTab tab
	cursor    int
	banner    string
	status    string
	statusErr bool
	width     int

	input   textinput.Model
	spinner spinner.Model
	theme   theme
}

func New(d Deps) (Model, error) {
	houses := append([]models.House(nil), d.Boot.Houses...)
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID < houses[j].ID })

	choices := make([]coercion.Choice, 0, len(houses))
	seed := make(map[int]int, len(houses))
	for _, h := range houses {
		choices = append(choices, coercion.Choice{ID: h.ID, IsTarget: h.IsTarget})
		seed[h.ID] = h.Votes
	}
	catalog, err := coercion.NewCatalog(choices)
	if err != nil {
		return Model{}, fmt.Errorf("build catalog: %w", err)
	}

	m := Model{
		houses:   houses,
		target:   catalog.Target(),
		name:     d.Name,
		now:      d.Now,
		timers:   make(chan func(), 64),
		results:  make(chan commit.Result, 16),
		cues:     &atomic.Int32{},
		deepLink: d.DeepLink,
		theme:    newTheme(),
	}
	if m.name == "" {
		m.name = "Anonymous"
	}
	if m.now == nil {
		m.now = time.Now
	}

	cues := m.cues
	opts := []commit.Option{commit.WithCue(func() { cues.Add(1) })}
	if d.Submitter != nil {
		results := m.results
		opts = append(opts,
			commit.WithSubmitter(d.Submitter),
			commit.WithResultHandler(func(r commit.Result) { results <- r }),
		)
	}
	m.svc = commit.NewService(m.target, commit.NewTally(seed), opts...)

	clock := d.Clock
	if clock == nil {
		clock = scheduler.Real{}
	}
	timers := m.timers
	sched := scheduler.NewPosting(clock, func(fn func()) { timers <- fn })

	m.engine, err = coercion.NewEngine(catalog, coercion.Options{
		Timings:   d.Timings,
		Rand:      d.Rand,
		Scheduler: sched,
		Committer: m.svc,
	})
	if err != nil {
		return Model{}, err
	}
	m.view = m.engine.View()

	m.board = guestbook.NewBoard(d.Boot.Messages, d.Poster)

	input := textinput.New()
	input.Prompt = "✎ "
	input.CharLimit = models.MaxMessageTextLen
	input.Placeholder = "Tell the neighborhood who has the best lights..."
	m.input = input

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = m.theme.cursor
	m.spinner = sp

	for i, h := range houses {
		if h.ID == d.DeepLink {
			m.cursor = i
		}
	}

	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		waitForTimer(m.timers),
		waitForResult(m.results),
		tickEvery(time.Second),
	}
	if m.deepLink != 0 {
		id := m.deepLink
		cmds = append(cmds, func() tea.Msg { return selectMsg(id) })
	}
	return tea.Batch(cmds...)
}

// Close stops pending ballot timers and waits for background submissions.
func (m Model) Close() {
	m.engine.Close()
	m.svc.Wait()
	m.board.Wait()
}

// Tally returns the local vote counts.
func (m Model) Tally() map[int]int {
	return m.svc.Tally().Snapshot()
}

func waitForTimer(ch <-chan func()) tea.Cmd {
	return func() tea.Msg {
		return timerMsg(<-ch)
	}
}

func waitForResult(ch <-chan commit.Result) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-ch)
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		// Engine timer callbacks run here, on the program loop
		msg()
		m.sync()
		cmds = append(cmds, waitForTimer(m.timers))
	case resultMsg:
		if msg.Err != nil {
			m.setStatus("Vote saved locally, the server didn't answer", true)
		} else if msg.Response.Message != "" {
			m.setStatus(msg.Response.Message, false)
		}
		cmds = append(cmds, waitForResult(m.results))
	case selectMsg:
		m.selectChoice(int(msg))
	case tickMsg:
		cmds = append(cmds, tickEvery(time.Second))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-8)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.engine.Close()
			return m, tea.Quit
		}
		if m.view.Phase == coercion.PhaseSession {
			m.handleBallotKey(msg.String())
			return m, tea.Batch(cmds...)
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch key {
	case "tab":
		m.switchTab((m.activeTab + 1) % tab(len(tabNames)))
		return nil
	case "shift+tab":
		m.switchTab((m.activeTab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
		return nil
	}

	if m.activeTab == tabComments {
		switch key {
		case "enter":
			m.postMessage()
			return nil
		case "esc":
			m.switchTab(tabVote)
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch key {
	case "q":
		m.engine.Close()
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.houses)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.activeTab == tabVote && len(m.houses) > 0 {
			m.selectChoice(m.houses[m.cursor].ID)
		}
	}
	return nil
}

func (m *Model) handleBallotKey(key string) {
	if key == "esc" {
		if _, err := m.engine.Cancel(); err != nil {
			if errors.Is(err, coercion.ErrNotCancellable) {
				m.setStatus("This ballot can't be dismissed", true)
			}
			return
		}
		m.sync()
		m.setStatus("Ballot dismissed, no vote recorded", false)
		return
	}

	for _, a := range m.view.Actions {
		if actionKeys[a] != key {
			continue
		}
		if _, err := m.engine.Act(a); err != nil {
			slog.Debug("ballot action rejected", "action", a, "error", err)
			return
		}
		m.sync()
		return
	}
}

func (m *Model) selectChoice(id int) {
	_, err := m.engine.Select(id)
	switch {
	case errors.Is(err, coercion.ErrBusy):
		m.setStatus("Hold on, your vote is still being processed...", true)
		return
	case errors.Is(err, coercion.ErrUnknownChoice):
		m.setStatus(fmt.Sprintf("There is no House #%d", id), true)
		return
	case err != nil:
		m.setStatus(err.Error(), true)
		return
	}
	m.banner = ""
	m.status = ""
	m.sync()
}

// sync refreshes the cached engine view and reacts to finished commits.
func (m *Model) sync() {
	prev := m.view.Commits
	m.view = m.engine.View()

	if m.view.Commits > prev {
		m.setStatus(fmt.Sprintf("Thank you for voting! Vote again (for House #%d)", m.target), false)
	}
	if c := m.cues.Load(); c > m.seenCues {
		m.seenCues = c
		m.banner = fmt.Sprintf("★ HOUSE #%d ★ EXCELLENT CHOICE ★", m.target)
	}
}

func (m *Model) switchTab(t tab) {
	m.activeTab = t
	if t == tabComments {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) postMessage() {
	if len(m.houses) == 0 {
		return
	}
	_, err := m.board.Post(models.PostMessageRequest{
		Name:    m.name,
		Text:    m.input.Value(),
		HouseID: m.houses[m.cursor].ID,
	})
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.input.Reset()
	m.setStatus("Fan mail posted", false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}
