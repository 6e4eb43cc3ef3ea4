// Package app holds the dashboard core: the controller state machine and
// the bubbletea model that drives rendering, timer-based auto-refresh, and
// action dispatch in one cooperative loop.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/isbhargav/sqs-monitor/internal/sqs"
)

// QueueClient is the remote surface the core consumes. Every call is
// fallible and carries whatever timeout/retry behavior the client provides.
type QueueClient interface {
	ListQueues(ctx context.Context) ([]sqs.QueueSummary, error)
	GetQueueDetail(ctx context.Context, url string) (*sqs.QueueDetail, error)
	PurgeQueue(ctx context.Context, url string) error
}

type queuesLoadedMsg struct {
	queues []sqs.QueueSummary
	err    error
}

type detailLoadedMsg struct {
	url    string
	detail *sqs.QueueDetail
	err    error
}

type purgeDoneMsg struct {
	url  string
	name string
	err  error
}

type tickMsg struct {
	at time.Time
}

const (
	refreshCheckInterval = time.Second
	listTimeout          = 30 * time.Second
	detailTimeout        = 10 * time.Second
	purgeTimeout         = 15 * time.Second
)

// Model wires the controller to the bubbletea runtime. The controller is the
// single owner of queue state; remote calls run as commands and come back as
// the msgs above.
type Model struct {
	client QueueClient
	log    zerolog.Logger

	ctl Controller

	spinner spinner.Model
	detail  viewport.Model

	ready  bool
	width  int
	height int

	// refreshing guards the auto-refresh timer the way a blocking
	// single-threaded loop would: the timer cannot re-fire while an
	// enumerate call is outstanding. Manual refreshes are not debounced.
	refreshing      bool
	lastAutoRefresh time.Time
}

func NewModel(client QueueClient, log zerolog.Logger, opts Options) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(accentSecondary)

	detail := viewport.New(60, 20)
	detail.SetContent("No queue selected")

	return Model{
		client:          client,
		log:             log,
		ctl:             NewController(opts.RefreshInterval),
		spinner:         spin,
		detail:          detail,
		refreshing:      true,
		lastAutoRefresh: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(m.client),
		tickCmd(),
		m.spinner.Tick,
	)
}

func refreshCmd(client QueueClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		queues, err := client.ListQueues(ctx)
		return queuesLoadedMsg{queues: queues, err: err}
	}
}

func fetchDetailCmd(client QueueClient, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()
		detail, err := client.GetQueueDetail(ctx, url)
		return detailLoadedMsg{url: url, detail: detail, err: err}
	}
}

func purgeCmd(client QueueClient, url, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		err := client.PurgeQueue(ctx, url)
		return purgeDoneMsg{url: url, name: name, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshCheckInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetailView()
		m.syncDetailView()
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing && !m.ctl.PurgeInProgress() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if !m.refreshing && msg.at.Sub(m.lastAutoRefresh) >= m.ctl.RefreshInterval() {
			m.refreshing = true
			m.lastAutoRefresh = msg.at
			m.log.Debug().Msg("auto-refresh due")
			cmds = append(cmds, m.spinner.Tick, refreshCmd(m.client))
		}
		return m, tea.Batch(cmds...)

	case queuesLoadedMsg:
		m.refreshing = false
		if msg.err != nil {
			// Prior queues, projection, and selection stay untouched.
			m.ctl.SetStatus("Error: " + msg.err.Error())
			return m, nil
		}
		m.ctl.ApplyQueues(msg.queues, time.Now())
		m.syncDetailView()
		return m, m.fetchSelectedDetail()

	case detailLoadedMsg:
		if msg.err != nil {
			m.ctl.SetStatus("Error fetching details: " + msg.err.Error())
			return m, nil
		}
		// Discard results for a queue that is no longer selected.
		if q, ok := m.ctl.SelectedQueue(); ok && q.URL == msg.url {
			m.ctl.SetDetail(msg.detail)
			m.syncDetailView()
		}
		return m, nil

	case purgeDoneMsg:
		m.ctl.FinishPurge(msg.name, msg.err)
		if msg.err != nil {
			return m, nil
		}
		return m, m.dispatchRefresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act := actionForKey(msg)
	if act == actionQuit {
		return m, tea.Quit
	}

	// While a purge is executing, everything except quit is swallowed.
	if m.ctl.PurgeInProgress() {
		return m, nil
	}

	// While a confirmation is pending, only confirm and cancel dispatch.
	if m.ctl.AwaitingPurgeConfirmation() {
		switch act {
		case actionConfirmPurge:
			url, name, ok := m.ctl.BeginPurge()
			if !ok {
				return m, nil
			}
			m.lastAutoRefresh = time.Now()
			m.log.Info().Str("queue", name).Msg("purge confirmed")
			// The in-progress status renders before the purge command runs.
			return m, tea.Batch(m.spinner.Tick, purgeCmd(m.client, url, name))
		case actionCancelPurge:
			m.ctl.CancelPurge()
		}
		return m, nil
	}

	switch act {
	case actionRefresh:
		return m, m.dispatchRefresh()

	case actionSelectNext:
		m.ctl.SelectNext()
		m.syncDetailView()
		return m, m.fetchSelectedDetail()

	case actionSelectPrevious:
		m.ctl.SelectPrevious()
		m.syncDetailView()
		return m, m.fetchSelectedDetail()

	case actionToggleFilter:
		m.ctl.ToggleFilter()
		m.syncDetailView()
		return m, m.fetchSelectedDetail()

	case actionRequestPurge:
		m.ctl.RequestPurgeConfirmation()
		return m, nil
	}

	return m, nil
}

func (m *Model) dispatchRefresh() tea.Cmd {
	m.refreshing = true
	m.lastAutoRefresh = time.Now()
	return tea.Batch(m.spinner.Tick, refreshCmd(m.client))
}

func (m *Model) fetchSelectedDetail() tea.Cmd {
	queue, ok := m.ctl.SelectedQueue()
	if !ok {
		return nil
	}
	return fetchDetailCmd(m.client, queue.URL)
}

func (m *Model) syncDetailView() {
	m.detail.SetContent(renderDetailBody(&m.ctl))
}

func (m *Model) resizeDetailView() {
	_, detailW, contentH := m.paneSizes()
	m.detail.Width = maxInt(detailW-4, 20)
	m.detail.Height = maxInt(contentH-2, 4)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
