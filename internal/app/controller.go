package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/isbhargav/sqs-monitor/internal/sqs"
)

const defaultRefreshInterval = 30 * time.Second

// purgePhase tracks the destructive-action protocol:
// idle -> awaiting confirmation -> purging -> idle.
type purgePhase int

const (
	purgeIdle purgePhase = iota
	purgeAwaitingConfirm
	purgeInFlight
)

// Controller owns all mutable dashboard state. Its methods are synchronous,
// total state transitions with no protocol guards of their own; the Update
// dispatch decides which transitions are reachable at any moment.
//
// visibleQueues is never mutated directly: it is always recomputed from
// allQueues and filterOn.
type Controller struct {
	allQueues     []sqs.QueueSummary
	visibleQueues []sqs.QueueSummary

	selectedIndex  int
	selectedDetail *sqs.QueueDetail

	filterOn bool
	phase    purgePhase

	statusMessage   string
	lastRefresh     time.Time
	refreshInterval time.Duration
}

func NewController(refreshInterval time.Duration) Controller {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return Controller{
		statusMessage:   "Initializing...",
		refreshInterval: refreshInterval,
	}
}

// ApplyQueues replaces the queue snapshot with a fresh enumeration result:
// stable-sorts descending by visible count (ties keep service order),
// recomputes the filtered projection, clamps the selection, and stamps the
// refresh time.
func (c *Controller) ApplyQueues(queues []sqs.QueueSummary, now time.Time) {
	sorted := append([]sqs.QueueSummary(nil), queues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Visible > sorted[j].Visible
	})

	c.allQueues = sorted
	c.applyFilter()
	c.clampSelection()
	c.lastRefresh = now

	if c.filterOn {
		c.statusMessage = fmt.Sprintf("Connected to AWS | %d of %d queues (non-empty only)",
			len(c.visibleQueues), len(c.allQueues))
	} else {
		c.statusMessage = fmt.Sprintf("Connected to AWS | %d queues found", len(c.allQueues))
	}
}

func (c *Controller) applyFilter() {
	if !c.filterOn {
		c.visibleQueues = c.allQueues
		return
	}
	filtered := make([]sqs.QueueSummary, 0, len(c.allQueues))
	for _, q := range c.allQueues {
		if q.Visible > 0 {
			filtered = append(filtered, q)
		}
	}
	c.visibleQueues = filtered
}

func (c *Controller) clampSelection() {
	if c.selectedIndex >= len(c.visibleQueues) {
		c.selectedIndex = 0
	}
}

// SelectNext advances the selection circularly; no-op on an empty list.
func (c *Controller) SelectNext() {
	if len(c.visibleQueues) == 0 {
		return
	}
	c.selectedIndex = (c.selectedIndex + 1) % len(c.visibleQueues)
}

// SelectPrevious retreats the selection circularly; no-op on an empty list.
func (c *Controller) SelectPrevious() {
	if len(c.visibleQueues) == 0 {
		return
	}
	if c.selectedIndex > 0 {
		c.selectedIndex--
	} else {
		c.selectedIndex = len(c.visibleQueues) - 1
	}
}

// ToggleFilter flips the non-empty filter and recomputes the projection. The
// caller triggers a detail refresh afterward since the selected queue
// identity may have changed.
func (c *Controller) ToggleFilter() {
	c.filterOn = !c.filterOn
	c.applyFilter()
	c.clampSelection()

	if c.filterOn {
		c.statusMessage = fmt.Sprintf("Filter: ON | %d of %d queues (non-empty only)",
			len(c.visibleQueues), len(c.allQueues))
	} else {
		c.statusMessage = fmt.Sprintf("Filter: OFF | %d queues shown", len(c.allQueues))
	}
}

// SelectedQueue returns the queue under the cursor, if any.
func (c *Controller) SelectedQueue() (sqs.QueueSummary, bool) {
	if c.selectedIndex < 0 || c.selectedIndex >= len(c.visibleQueues) {
		return sqs.QueueSummary{}, false
	}
	return c.visibleQueues[c.selectedIndex], true
}

// RequestPurgeConfirmation opens the confirmation prompt for the selected
// queue. No-op when nothing is selected or a confirmation is already pending.
func (c *Controller) RequestPurgeConfirmation() {
	if c.phase != purgeIdle {
		return
	}
	queue, ok := c.SelectedQueue()
	if !ok {
		return
	}
	c.phase = purgeAwaitingConfirm
	c.statusMessage = fmt.Sprintf("Purge queue '%s'? Press Y to confirm, N to cancel", queue.Name)
}

// BeginPurge leaves the confirmation state and marks the purge in flight,
// returning the target for the caller to execute. Reports false when no
// queue is selected.
func (c *Controller) BeginPurge() (url, name string, ok bool) {
	c.phase = purgeIdle
	queue, selected := c.SelectedQueue()
	if !selected {
		return "", "", false
	}
	c.phase = purgeInFlight
	c.statusMessage = fmt.Sprintf("Purging queue '%s'...", queue.Name)
	return queue.URL, queue.Name, true
}

// FinishPurge records the purge outcome. The in-flight flag clears
// regardless; the caller chains a full refresh only on success.
func (c *Controller) FinishPurge(name string, err error) {
	c.phase = purgeIdle
	if err != nil {
		c.statusMessage = fmt.Sprintf("Failed to purge queue '%s': %v", name, err)
		return
	}
	c.statusMessage = fmt.Sprintf("Queue '%s' purged successfully", name)
}

// CancelPurge abandons a pending confirmation.
func (c *Controller) CancelPurge() {
	c.phase = purgeIdle
	c.statusMessage = "Purge cancelled"
}

// SetDetail replaces the attribute view for the selected queue.
func (c *Controller) SetDetail(detail *sqs.QueueDetail) {
	c.selectedDetail = detail
}

// SetStatus records an operation outcome on the status line without touching
// any other state.
func (c *Controller) SetStatus(msg string) {
	c.statusMessage = msg
}

func (c *Controller) Queues() []sqs.QueueSummary      { return c.visibleQueues }
func (c *Controller) SelectedIndex() int              { return c.selectedIndex }
func (c *Controller) Detail() *sqs.QueueDetail        { return c.selectedDetail }
func (c *Controller) FilterOn() bool                  { return c.filterOn }
func (c *Controller) Status() string                  { return c.statusMessage }
func (c *Controller) LastRefresh() time.Time          { return c.lastRefresh }
func (c *Controller) RefreshInterval() time.Duration  { return c.refreshInterval }
func (c *Controller) AwaitingPurgeConfirmation() bool { return c.phase == purgeAwaitingConfirm }
func (c *Controller) PurgeInProgress() bool           { return c.phase == purgeInFlight }
