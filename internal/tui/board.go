// Package tui renders a live task board in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/task"
)

const fetchTimeout = 5 * time.Second

// Lister fetches the filtered task list and the counts of the whole store.
type Lister interface {
	ListTasks(ctx context.Context, filter *labelguildv1.ListTasksRequest) ([]*labelguildv1.Task, *labelguildv1.TaskCounts, error)
}

// RefreshMsg asks the board to re-read the store. Send it from an event
// subscription whenever the task store changed.
type RefreshMsg struct{}

type tasksLoadedMsg struct {
	tasks  []*labelguildv1.Task
	counts *labelguildv1.TaskCounts
	err    error
	at     time.Time
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusColors = map[string]lipgloss.Color{
		string(task.StatusInProgress):    lipgloss.Color("33"),
		string(task.StatusPendingReview): lipgloss.Color("214"),
		string(task.StatusReturned):      lipgloss.Color("196"),
		string(task.StatusCompleted):     lipgloss.Color("42"),
	}
)

var priorities = []task.Priority{task.PriorityLow, task.PriorityNormal, task.PriorityHigh}

// Board is the bubbletea model of the task board.
type Board struct {
	lister Lister

	search    string
	searching bool
	status    task.Status
	priority  task.Priority

	tasks    []*labelguildv1.Task
	counts   *labelguildv1.TaskCounts
	cursor   int
	detail   bool
	err      error
	loadedAt time.Time

	width  int
	height int
}

func NewBoard(lister Lister) *Board {
	return &Board{lister: lister}
}

func (b *Board) Init() tea.Cmd {
	return b.fetch()
}

func (b *Board) filter() *labelguildv1.ListTasksRequest {
	return &labelguildv1.ListTasksRequest{
		Search:   b.search,
		Status:   string(b.status),
		Priority: string(b.priority),
	}
}

func (b *Board) fetch() tea.Cmd {
	filter := b.filter()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		tasks, counts, err := b.lister.ListTasks(ctx, filter)
		return tasksLoadedMsg{tasks: tasks, counts: counts, err: err, at: time.Now()}
	}
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		return b, nil
	case RefreshMsg:
		return b, b.fetch()
	case tasksLoadedMsg:
		b.err = msg.err
		if msg.err == nil {
			b.tasks = msg.tasks
			b.counts = msg.counts
			b.loadedAt = msg.at
		}
		if b.cursor >= len(b.tasks) {
			b.cursor = max(len(b.tasks)-1, 0)
		}
		return b, nil
	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateKey(msg)
	}
	return b, nil
}

func (b *Board) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		b.searching = false
		return b, nil
	case tea.KeyBackspace:
		if r := []rune(b.search); len(r) > 0 {
			b.search = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		b.search += string(msg.Runes)
	case tea.KeyCtrlC:
		return b, tea.Quit
	default:
		return b, nil
	}
	return b, b.fetch()
}

func (b *Board) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.tasks)-1 {
			b.cursor++
		}
	case "enter":
		b.detail = !b.detail
	case "esc":
		b.detail = false
	case "/":
		b.searching = true
	case "s":
		b.status = next(task.Statuses, b.status)
		return b, b.fetch()
	case "p":
		b.priority = next(priorities, b.priority)
		return b, b.fetch()
	case "c":
		b.search, b.status, b.priority = "", "", ""
		return b, b.fetch()
	case "r":
		return b, b.fetch()
	}
	return b, nil
}

// next cycles through "" followed by every option.
func next[T comparable](options []T, cur T) T {
	var zero T
	if cur == zero {
		return options[0]
	}
	for i, o := range options {
		if o == cur {
			if i+1 < len(options) {
				return options[i+1]
			}
			return zero
		}
	}
	return zero
}

// Selected returns the task under the cursor, if any.
func (b *Board) Selected() *labelguildv1.Task {
	if b.cursor < 0 || b.cursor >= len(b.tasks) {
		return nil
	}
	return b.tasks[b.cursor]
}

func (b *Board) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("labelguild · assigned tasks"))
	sb.WriteString("\n")
	sb.WriteString(b.summary())
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(b.filterLine()))
	sb.WriteString("\n\n")

	if b.err != nil {
		sb.WriteString(errorStyle.Render("error: " + b.err.Error()))
		sb.WriteString("\n\n")
	}

	if len(b.tasks) == 0 {
		sb.WriteString(mutedStyle.Render("No tasks match the current filters."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %-28s %-20s %-8s %-15s %-10s %4s", "ID", "PROJECT", "DATASET", "PRIORITY", "STATUS", "DUE", "PROG")))
		sb.WriteString("\n")
		for i, t := range b.tasks {
			row := fmt.Sprintf("%-16s %-28s %-20s %-8s %-15s %-10s %3d%%",
				truncate(t.ID, 16), truncate(t.ProjectName, 28), truncate(t.Dataset, 20),
				t.Priority, t.Status, t.DueAt, t.Progress)
			switch {
			case i == b.cursor:
				row = cursorStyle.Render(row)
			default:
				if c, ok := statusColors[t.Status]; ok {
					row = lipgloss.NewStyle().Foreground(c).Render(row)
				}
			}
			sb.WriteString(row)
			sb.WriteString("\n")
		}
	}

	if b.detail {
		if t := b.Selected(); t != nil {
			sb.WriteString("\n")
			sb.WriteString(detailStyle.Render(renderDetail(t)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("↑/↓ move · enter details · / search · s status · p priority · c clear · r refresh · q quit"))
	return sb.String()
}

func (b *Board) summary() string {
	if b.counts == nil {
		return mutedStyle.Render("loading…")
	}
	c := b.counts
	return fmt.Sprintf("total %d · in progress %d · pending review %d · returned %d · completed %d",
		c.Total, c.InProgress, c.PendingReview, c.Returned, c.Completed)
}

func (b *Board) filterLine() string {
	search := b.search
	if b.searching {
		search += "▏"
	}
	status, priority := string(b.status), string(b.priority)
	if status == "" {
		status = "all"
	}
	if priority == "" {
		priority = "all"
	}
	line := fmt.Sprintf("search: %q · status: %s · priority: %s", search, status, priority)
	if !b.loadedAt.IsZero() {
		line += " · updated " + b.loadedAt.Format("15:04:05")
	}
	return line
}

func renderDetail(t *labelguildv1.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s · %s\n", t.ProjectName, t.Dataset)
	fmt.Fprintf(&sb, "preset %s · AI prelabel %s · assigned %s\n", t.Preset, t.AIPrelabel, t.AssignedAt)
	if len(t.AssignedAnnotators) > 0 {
		fmt.Fprintf(&sb, "annotators: %s\n", strings.Join(t.AssignedAnnotators, ", "))
	}
	if len(t.Labels) > 0 {
		fmt.Fprintf(&sb, "labels: %s\n", strings.Join(t.Labels, ", "))
	}
	for _, item := range t.Checklist {
		fmt.Fprintf(&sb, "[ ] %s\n", item)
	}
	if t.ReviewerNote != "" {
		fmt.Fprintf(&sb, "reviewer: %s\n", t.ReviewerNote)
	}
	if len(t.ErrorTypes) > 0 {
		fmt.Fprintf(&sb, "errors: %s\n", strings.Join(t.ErrorTypes, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
