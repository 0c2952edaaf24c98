package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/client"
	"github.com/kazz187/labelguild/pkg/color"
)

func showWorkspace(ctx context.Context, cfg client.Config, taskID string) error {
	wc := client.NewWorkspaceClient(cfg)
	ws, err := wc.Open(ctx, taskID)
	if err != nil {
		return err
	}
	defer closeWorkspace(wc, ws.SessionID)
	printWorkspace(os.Stdout, ws)
	return nil
}

func closeWorkspace(wc *client.WorkspaceClient, sessionID string) {
	if err := wc.Close(context.Background(), sessionID); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func printWorkspace(w io.Writer, ws *labelguildv1.Workspace) {
	printTask(w, ws.Task)
	if ws.Source != labelguildv1.SourceStore {
		fmt.Fprintln(w, color.Muted(fmt.Sprintf("  (resolved from %s data)", ws.Source)))
	}
	fmt.Fprintf(w, "  item:        %s\n", ws.ItemName)
	fmt.Fprintln(w, "  checklist:")
	for i, item := range ws.Task.Checklist {
		mark := " "
		if i < len(ws.Checked) && ws.Checked[i] {
			mark = "x"
		}
		fmt.Fprintf(w, "    [%s] %s\n", mark, item)
	}
	if ws.AIApplied {
		fmt.Fprintln(w, "  AI prelabels applied")
	}
	if ws.Advisory != "" {
		fmt.Fprintln(w, color.Status("Returned")+" "+ws.Advisory)
	}
}

func submitWorkspace(ctx context.Context, cfg client.Config, taskID string, labels []string, applyAI, yes bool) error {
	wc := client.NewWorkspaceClient(cfg)
	ws, err := wc.Open(ctx, taskID)
	if err != nil {
		return err
	}
	defer closeWorkspace(wc, ws.SessionID)

	for i, done := range ws.Checked {
		if done {
			continue
		}
		if ws, err = wc.ToggleChecklistItem(ctx, ws.SessionID, i); err != nil {
			return err
		}
	}
	for _, l := range labels {
		var added bool
		if ws, added, err = wc.AddLabel(ctx, ws.SessionID, l); err != nil {
			return err
		}
		if !added {
			fmt.Printf("label %q already present\n", l)
		}
	}
	if applyAI {
		if ws, err = wc.ApplyAIPrelabels(ctx, ws.SessionID); err != nil {
			return err
		}
	}

	if ws, err = wc.RequestSubmit(ctx, ws.SessionID); err != nil {
		return err
	}
	printWorkspace(os.Stdout, ws)
	if !yes && !confirm(os.Stdin, "Submit this task for review?") {
		_, err := wc.CancelSubmit(ctx, ws.SessionID)
		return err
	}
	if ws, err = wc.ConfirmSubmit(ctx, ws.SessionID); err != nil {
		return err
	}
	fmt.Printf("%s submitted: %s\n", ws.Task.ID, color.Status("Pending Review"))
	return nil
}

func confirm(r io.Reader, question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
