package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/client"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/tui"
	"github.com/kazz187/labelguild/pkg/color"
)

const resubscribeDelay = 2 * time.Second

// storeEvents are the event types after which the board re-reads the store.
var storeEvents = []string{
	string(eventbus.EventTypeTasksUpdated),
	string(eventbus.EventTypeStorageChanged),
}

func watch(ctx context.Context, cfg client.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.NewBoard(client.NewTaskClient(cfg)), tea.WithAltScreen(), tea.WithContext(ctx))

	events := client.NewEventClient(cfg)
	go func() {
		for ctx.Err() == nil {
			err := events.Subscribe(ctx, storeEvents, func(*labelguildv1.Event) error {
				p.Send(tui.RefreshMsg{})
				return nil
			})
			if err != nil {
				slog.Debug("event stream dropped", "error", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(resubscribeDelay):
				// Changes made while disconnected.
				p.Send(tui.RefreshMsg{})
			}
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func streamEvents(ctx context.Context, cfg client.Config, types []string) error {
	return client.NewEventClient(cfg).Subscribe(ctx, types, func(e *labelguildv1.Event) error {
		line := fmt.Sprintf("%s  %-16s %s", e.CreatedAt.Format(time.RFC3339), e.Type, e.ResourceID)
		if e.Origin != "" {
			line += color.Muted("  origin=" + e.Origin)
		}
		fmt.Println(line)
		return nil
	})
}
