package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentPrimary   = lipgloss.Color("14") // cyan
	accentSecondary = lipgloss.Color("11") // yellow
	panelBorder     = lipgloss.Color("8")
	dlqText         = lipgloss.Color("13") // magenta
	countZero       = lipgloss.Color("10")
	countLow        = lipgloss.Color("11")
	countHigh       = lipgloss.Color("9")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentPrimary)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(accentSecondary)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentPrimary)

	boldStyle = lipgloss.NewStyle().Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(accentPrimary)

	dlqRowStyle = lipgloss.NewStyle().Foreground(dlqText)

	statusWarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentSecondary)
)

func (m Model) View() string {
	if !m.ready {
		return "Starting sqs-monitor..."
	}

	listW, detailW, contentH := m.paneSizes()

	header := renderPanel("", headerStyle.Render("SQS Queue Monitor"), m.width-2, 1)
	listPanel := renderPanel("Queues (j/k to navigate)", m.renderQueueList(listW-4, contentH), listW-2, contentH)
	detailPanel := renderPanel("Queue Details", m.detail.View(), detailW-2, contentH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)

	return strings.Join([]string{header, body, m.renderStatusBar()}, "\n")
}

// paneSizes splits the frame into the 40/60 list/detail columns; contentH is
// the inner height left between the header and status bands.
func (m Model) paneSizes() (listW, detailW, contentH int) {
	width := maxInt(m.width, 60)
	height := maxInt(m.height, 16)
	listW = width * 2 / 5
	detailW = width - listW
	contentH = height - 8
	return listW, detailW, maxInt(contentH, 6)
}

func (m Model) renderQueueList(width, height int) string {
	queues := m.ctl.Queues()
	if len(queues) == 0 {
		return "No queues"
	}

	selected := m.ctl.SelectedIndex()
	rows := maxInt(height, 1)
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := minInt(start+rows, len(queues))

	nameWidth := maxInt(width-10, 12)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		q := queues[i]
		name := q.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-1] + "…"
		}
		count := fmt.Sprintf("%6d", q.Visible)

		switch {
		case i == selected:
			lines = append(lines, selectedRowStyle.Render(fmt.Sprintf("> %-*s %s", nameWidth, name, count)))
		case q.IsDLQ():
			lines = append(lines, dlqRowStyle.Render(fmt.Sprintf("  %-*s", nameWidth, name))+" "+styleCount(q.Visible, count))
		default:
			lines = append(lines, fmt.Sprintf("  %-*s", nameWidth, name)+" "+styleCount(q.Visible, count))
		}
	}
	return strings.Join(lines, "\n")
}

func styleCount(count int64, text string) string {
	color := countZero
	switch {
	case count > 100:
		color = countHigh
	case count > 0:
		color = countLow
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// renderDetailBody builds the detail pane content for the current selection.
// Attributes the service omitted are simply not shown.
func renderDetailBody(ctl *Controller) string {
	queue, ok := ctl.SelectedQueue()
	if !ok {
		return "No queue selected"
	}

	lines := []string{
		boldStyle.Render("Queue Name: ") + queue.Name,
		"",
		labelStyle.Render("Messages:              ") + fmt.Sprintf("%d", queue.Visible),
		labelStyle.Render("Messages In Flight:    ") + fmt.Sprintf("%d", queue.InFlight),
		labelStyle.Render("Messages Delayed:      ") + fmt.Sprintf("%d", queue.Delayed),
		"",
	}

	detail := ctl.Detail()
	if detail == nil {
		return strings.Join(lines, "\n")
	}

	if detail.ARN != nil {
		lines = append(lines, boldStyle.Render("ARN:"), *detail.ARN, "")
	}
	if detail.RetentionSeconds != nil {
		lines = append(lines, labelStyle.Render("Retention Period:      ")+fmt.Sprintf("%d seconds", *detail.RetentionSeconds))
	}
	if detail.VisibilityTimeout != nil {
		lines = append(lines, labelStyle.Render("Visibility Timeout:    ")+fmt.Sprintf("%d seconds", *detail.VisibilityTimeout))
	}
	if detail.MaximumMessageSize != nil {
		lines = append(lines, labelStyle.Render("Max Message Size:      ")+fmt.Sprintf("%d bytes", *detail.MaximumMessageSize))
	}
	if detail.DelaySeconds != nil {
		lines = append(lines, labelStyle.Render("Delay Seconds:         ")+fmt.Sprintf("%d", *detail.DelaySeconds))
	}
	if detail.CreatedAt != nil {
		lines = append(lines, "", labelStyle.Render("Created:               ")+detail.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if detail.LastModifiedAt != nil {
		lines = append(lines, labelStyle.Render("Last Modified:         ")+detail.LastModifiedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var body string
	if m.ctl.AwaitingPurgeConfirmation() || m.ctl.PurgeInProgress() {
		body = statusWarnStyle.Render(m.statusPrefix() + m.ctl.Status())
	} else {
		lastRefresh := "Never"
		if !m.ctl.LastRefresh().IsZero() {
			lastRefresh = m.ctl.LastRefresh().Local().Format("2006-01-02 15:04:05")
		}
		filter := "OFF"
		if m.ctl.FilterOn() {
			filter = "ON"
		}
		body = fmt.Sprintf("%s%s | Last Refresh: %s | Filter: %s | [q]uit [r]efresh [f]ilter [X]purge [j/k]navigate",
			m.statusPrefix(), m.ctl.Status(), lastRefresh, filter)
	}
	return renderPanel("", body, m.width-2, 1)
}

func (m Model) statusPrefix() string {
	if m.refreshing || m.ctl.PurgeInProgress() {
		return m.spinner.View() + " "
	}
	return ""
}

func renderPanel(title, body string, width, height int) string {
	style := panelStyle.Width(maxInt(width, 20)).Height(maxInt(height, 1))
	if title == "" {
		return style.Render(body)
	}
	return style.Render(panelTitleStyle.Render(title) + "\n" + body)
}
