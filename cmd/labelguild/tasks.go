package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/internal/client"
	"github.com/kazz187/labelguild/pkg/color"
)

func listTasks(ctx context.Context, cfg client.Config) error {
	tasks, counts, err := client.NewTaskClient(cfg).ListTasks(ctx, &labelguildv1.ListTasksRequest{
		Search:   *listSearch,
		Status:   *listStatus,
		Priority: *listPriority,
	})
	if err != nil {
		return err
	}
	if counts != nil {
		fmt.Println(color.Muted(fmt.Sprintf("total %d · in progress %d · pending review %d · returned %d · completed %d",
			counts.Total, counts.InProgress, counts.PendingReview, counts.Returned, counts.Completed)))
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks match the current filters.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tDATASET\tPRIORITY\tSTATUS\tDUE\tPROGRESS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d%%\n",
			t.ID, t.ProjectName, t.Dataset, color.Priority(t.Priority), color.Status(t.Status), t.DueAt, t.Progress)
	}
	return w.Flush()
}

func showTask(ctx context.Context, cfg client.Config, id string) error {
	t, err := client.NewTaskClient(cfg).GetTask(ctx, id)
	if err != nil {
		return err
	}
	printTask(os.Stdout, t)
	return nil
}

func printTask(w io.Writer, t *labelguildv1.Task) {
	fmt.Fprintf(w, "%s  %s\n", t.ID, color.Status(t.Status))
	fmt.Fprintf(w, "  project:     %s\n", t.ProjectName)
	fmt.Fprintf(w, "  dataset:     %s\n", t.Dataset)
	fmt.Fprintf(w, "  preset:      %s\n", t.Preset)
	fmt.Fprintf(w, "  priority:    %s\n", color.Priority(t.Priority))
	fmt.Fprintf(w, "  assigned:    %s  due: %s\n", t.AssignedAt, t.DueAt)
	fmt.Fprintf(w, "  ai prelabel: %s  progress: %d%%\n", t.AIPrelabel, t.Progress)
	if len(t.AssignedAnnotators) > 0 {
		fmt.Fprintf(w, "  annotators:  %s\n", strings.Join(t.AssignedAnnotators, ", "))
	}
	if len(t.Instructions) > 0 {
		fmt.Fprintln(w, "  instructions:")
		for _, line := range t.Instructions {
			fmt.Fprintf(w, "    - %s\n", line)
		}
	}
	if len(t.Labels) > 0 {
		labels := make([]string, len(t.Labels))
		for i, l := range t.Labels {
			labels[i] = color.Label(l)
		}
		fmt.Fprintf(w, "  labels:      %s\n", strings.Join(labels, ", "))
	}
	for _, img := range t.UploadedImages {
		fmt.Fprintf(w, "  image:       %s\n", img.Name)
	}
	if t.ReviewerNote != "" {
		fmt.Fprintf(w, "  reviewer:    %s\n", t.ReviewerNote)
	}
	if len(t.ErrorTypes) > 0 {
		fmt.Fprintf(w, "  errors:      %s\n", strings.Join(t.ErrorTypes, ", "))
	}
}

func assignTask(ctx context.Context, cfg client.Config) error {
	images := make([]*labelguildv1.UploadedImage, 0, len(*assignImages))
	for _, path := range *assignImages {
		img, err := readImage(path)
		if err != nil {
			return err
		}
		images = append(images, img)
	}
	t, err := client.NewTaskClient(cfg).AssignTask(ctx, &labelguildv1.AssignTaskRequest{
		ProjectName:        *assignProject,
		Dataset:            *assignDataset,
		Preset:             *assignPreset,
		Priority:           *assignPriority,
		DueAt:              *assignDue,
		AIPrelabel:         *assignPrelabel,
		Instructions:       *assignInstructions,
		Checklist:          *assignChecklist,
		Labels:             *assignLabels,
		AssignedAnnotators: *assignAnnotators,
		UploadedImages:     images,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Assigned %s\n", t.ID)
	printTask(os.Stdout, t)
	return nil
}

// readImage embeds a file as a data URL.
func readImage(path string) (*labelguildv1.UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	mime := http.DetectContentType(data)
	return &labelguildv1.UploadedImage{
		Name:    filepath.Base(path),
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

func returnTask(ctx context.Context, cfg client.Config, id, note string, errorTypes []string) error {
	t, err := client.NewTaskClient(cfg).ReturnTask(ctx, id, note, errorTypes)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", t.ID, color.Status(t.Status))
	return nil
}

func approveTask(ctx context.Context, cfg client.Config, id string) error {
	t, err := client.NewTaskClient(cfg).ApproveTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", t.ID, color.Status(t.Status))
	return nil
}
