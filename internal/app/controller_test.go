package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/isbhargav/sqs-monitor/internal/sqs"
)

func summaries(pairs ...any) []sqs.QueueSummary {
	out := make([]sqs.QueueSummary, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		out = append(out, sqs.QueueSummary{
			URL:     "https://sqs.eu-west-1.amazonaws.com/123/" + name,
			Name:    name,
			Visible: int64(pairs[i+1].(int)),
		})
	}
	return out
}

func queueNames(queues []sqs.QueueSummary) []string {
	names := make([]string, len(queues))
	for i, q := range queues {
		names[i] = q.Name
	}
	return names
}

func TestApplyQueuesSortsDescendingAndStable(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("a", 50, "b", 0, "c", 120, "d", 50), time.Now())

	got := queueNames(ctl.Queues())
	want := []string{"c", "a", "d", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
	if !strings.Contains(ctl.Status(), "4 queues found") {
		t.Fatalf("unexpected status: %q", ctl.Status())
	}
	if ctl.LastRefresh().IsZero() {
		t.Fatalf("expected refresh time to be stamped")
	}
}

func TestFilterProjectionScenario(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("a", 50, "b", 0, "c", 120), time.Now())

	if got := queueNames(ctl.Queues()); len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected unfiltered order: %v", got)
	}
	if ctl.SelectedIndex() != 0 {
		t.Fatalf("expected selection at 0, got %d", ctl.SelectedIndex())
	}

	ctl.ToggleFilter()
	if got := queueNames(ctl.Queues()); len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Fatalf("unexpected filtered projection: %v", got)
	}
	if selected, ok := ctl.SelectedQueue(); !ok || selected.Name != "c" {
		t.Fatalf("selection should stay on c, got %v", selected.Name)
	}
	if !strings.Contains(ctl.Status(), "2 of 3 queues (non-empty only)") {
		t.Fatalf("unexpected status: %q", ctl.Status())
	}

	ctl.ToggleFilter()
	if got := ctl.Queues(); len(got) != 3 {
		t.Fatalf("expected full projection after toggling off, got %d", len(got))
	}
	if !strings.Contains(ctl.Status(), "3 queues shown") {
		t.Fatalf("unexpected status: %q", ctl.Status())
	}
}

func TestToggleFilterClampsSelection(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("a", 50, "b", 0, "c", 120), time.Now())

	ctl.SelectNext()
	ctl.SelectNext() // on b, index 2
	if ctl.SelectedIndex() != 2 {
		t.Fatalf("expected index 2, got %d", ctl.SelectedIndex())
	}

	ctl.ToggleFilter() // b disappears, index out of range
	if ctl.SelectedIndex() != 0 {
		t.Fatalf("expected clamped index 0, got %d", ctl.SelectedIndex())
	}
	if len(ctl.Queues()) != 0 && ctl.SelectedIndex() >= len(ctl.Queues()) {
		t.Fatalf("selection invariant violated: %d >= %d", ctl.SelectedIndex(), len(ctl.Queues()))
	}
}

func TestSelectionWrapsCircularly(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("a", 3, "b", 2, "c", 1), time.Now())

	ctl.SelectPrevious()
	if ctl.SelectedIndex() != 2 {
		t.Fatalf("previous from 0 should wrap to last, got %d", ctl.SelectedIndex())
	}
	ctl.SelectNext()
	if ctl.SelectedIndex() != 0 {
		t.Fatalf("next from last should wrap to 0, got %d", ctl.SelectedIndex())
	}
}

func TestSelectionNoopOnEmpty(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.SelectNext()
	ctl.SelectPrevious()
	if ctl.SelectedIndex() != 0 {
		t.Fatalf("expected index 0 on empty list, got %d", ctl.SelectedIndex())
	}
	if _, ok := ctl.SelectedQueue(); ok {
		t.Fatalf("expected no selected queue on empty list")
	}
}

func TestPurgeProtocolHappyPath(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("orders-dlq", 9), time.Now())

	ctl.RequestPurgeConfirmation()
	if !ctl.AwaitingPurgeConfirmation() {
		t.Fatalf("expected confirmation pending")
	}
	if !strings.Contains(ctl.Status(), "orders-dlq") {
		t.Fatalf("prompt should name the queue: %q", ctl.Status())
	}

	url, name, ok := ctl.BeginPurge()
	if !ok || name != "orders-dlq" || !strings.HasSuffix(url, "/orders-dlq") {
		t.Fatalf("unexpected purge target: %q %q %v", url, name, ok)
	}
	if ctl.AwaitingPurgeConfirmation() || !ctl.PurgeInProgress() {
		t.Fatalf("expected purging phase")
	}

	ctl.FinishPurge(name, nil)
	if ctl.PurgeInProgress() {
		t.Fatalf("purge-in-progress must clear on completion")
	}
	if !strings.Contains(ctl.Status(), "purged successfully") {
		t.Fatalf("unexpected status: %q", ctl.Status())
	}
}

func TestPurgeFailureClearsInProgress(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("orders", 1), time.Now())
	ctl.RequestPurgeConfirmation()
	_, name, _ := ctl.BeginPurge()

	ctl.FinishPurge(name, errors.New("throttled"))
	if ctl.PurgeInProgress() {
		t.Fatalf("purge-in-progress must clear on failure too")
	}
	if !strings.Contains(ctl.Status(), "Failed to purge queue 'orders'") {
		t.Fatalf("unexpected status: %q", ctl.Status())
	}
}

func TestCancelPurgeLeavesQueueDataAlone(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.ApplyQueues(summaries("a", 5, "b", 1), time.Now())
	before := queueNames(ctl.Queues())

	ctl.RequestPurgeConfirmation()
	ctl.CancelPurge()
	if ctl.AwaitingPurgeConfirmation() || ctl.PurgeInProgress() {
		t.Fatalf("cancel must return to idle")
	}
	if ctl.Status() != "Purge cancelled" {
		t.Fatalf("unexpected status: %q", ctl.Status())
	}
	after := queueNames(ctl.Queues())
	if len(before) != len(after) || before[0] != after[0] || before[1] != after[1] {
		t.Fatalf("cancel must not touch queue data: %v -> %v", before, after)
	}
}

func TestRequestPurgeNoopWithoutSelectionOrWhenPending(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	ctl.RequestPurgeConfirmation()
	if ctl.AwaitingPurgeConfirmation() {
		t.Fatalf("no confirmation without a selected queue")
	}

	ctl.ApplyQueues(summaries("a", 1), time.Now())
	ctl.RequestPurgeConfirmation()
	first := ctl.Status()
	ctl.RequestPurgeConfirmation()
	if ctl.Status() != first {
		t.Fatalf("second request while pending must be a no-op")
	}
}

func TestBeginPurgeWithoutSelectionReportsNotOK(t *testing.T) {
	t.Parallel()

	ctl := NewController(0)
	if _, _, ok := ctl.BeginPurge(); ok {
		t.Fatalf("expected BeginPurge to report no target")
	}
	if ctl.PurgeInProgress() {
		t.Fatalf("no purge must start without a target")
	}
}
