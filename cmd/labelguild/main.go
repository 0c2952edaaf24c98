package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/kazz187/labelguild/internal/client"
	"github.com/kazz187/labelguild/pkg/color"
)

var (
	app = kingpin.New("labelguild", "Assign, annotate and review labeling tasks")

	serverURL = app.Flag("server", "labelguild server URL").Envar("LABELGUILD_SERVER_URL").Default("http://localhost:3100").String()
	apiKey    = app.Flag("api-key", "API key").Envar("LABELGUILD_API_KEY").String()
	noColor   = app.Flag("no-color", "Disable colored output").Bool()

	tasksCmd = app.Command("tasks", "Task commands")

	listCmd      = tasksCmd.Command("list", "List assigned tasks").Default()
	listSearch   = listCmd.Flag("search", "Match project name or dataset").Short('q').String()
	listStatus   = listCmd.Flag("status", "Filter by status").Enum("In Progress", "Pending Review", "Returned", "Completed")
	listPriority = listCmd.Flag("priority", "Filter by priority").Enum("Low", "Normal", "High")

	showCmd = tasksCmd.Command("show", "Show task details")
	showID  = showCmd.Arg("id", "Task ID").Required().String()

	assignCmd          = tasksCmd.Command("assign", "Assign a new task")
	assignProject      = assignCmd.Flag("project", "Project name").Required().String()
	assignDataset      = assignCmd.Flag("dataset", "Dataset name").String()
	assignPreset       = assignCmd.Flag("preset", "Labeling preset").String()
	assignPriority     = assignCmd.Flag("priority", "Priority").Enum("Low", "Normal", "High")
	assignDue          = assignCmd.Flag("due", "Due date (YYYY-MM-DD)").String()
	assignPrelabel     = assignCmd.Flag("ai-prelabel", "AI prelabel state").Enum("Ready", "Running", "Off")
	assignInstructions = assignCmd.Flag("instruction", "Instruction line (repeatable)").Strings()
	assignChecklist    = assignCmd.Flag("check", "Checklist item (repeatable)").Strings()
	assignLabels       = assignCmd.Flag("label", "Available label (repeatable)").Strings()
	assignAnnotators   = assignCmd.Flag("annotator", "Assigned annotator (repeatable)").Strings()
	assignImages       = assignCmd.Flag("image", "Image file to embed (repeatable)").ExistingFiles()

	returnCmd        = tasksCmd.Command("return", "Return a task under review to the annotator")
	returnID         = returnCmd.Arg("id", "Task ID").Required().String()
	returnNote       = returnCmd.Flag("note", "Reviewer note").Required().String()
	returnErrorTypes = returnCmd.Flag("error-type", "Error type (repeatable)").Strings()

	approveCmd = tasksCmd.Command("approve", "Approve a task under review")
	approveID  = approveCmd.Arg("id", "Task ID").Required().String()

	workspaceCmd = app.Command("workspace", "Annotator workspace commands")

	wsShowCmd = workspaceCmd.Command("show", "Open a workspace and print it")
	wsShowID  = wsShowCmd.Arg("task-id", "Task ID").Required().String()

	wsSubmitCmd     = workspaceCmd.Command("submit", "Complete the checklist and submit a task for review")
	wsSubmitID      = wsSubmitCmd.Arg("task-id", "Task ID").Required().String()
	wsSubmitLabels  = wsSubmitCmd.Flag("label", "Label to add before submitting (repeatable)").Strings()
	wsSubmitApplyAI = wsSubmitCmd.Flag("apply-ai", "Apply AI prelabels").Bool()
	wsSubmitYes     = wsSubmitCmd.Flag("yes", "Skip the confirmation prompt").Short('y').Bool()

	watchCmd = app.Command("watch", "Live task board following store changes")

	eventsCmd   = app.Command("events", "Stream store and lifecycle events")
	eventsTypes = eventsCmd.Flag("type", "Event type to include (repeatable)").Strings()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	if *noColor {
		color.Disable()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := client.Config{BaseURL: *serverURL, APIKey: *apiKey}

	var err error
	switch command {
	case listCmd.FullCommand():
		err = listTasks(ctx, cfg)
	case showCmd.FullCommand():
		err = showTask(ctx, cfg, *showID)
	case assignCmd.FullCommand():
		err = assignTask(ctx, cfg)
	case returnCmd.FullCommand():
		err = returnTask(ctx, cfg, *returnID, *returnNote, *returnErrorTypes)
	case approveCmd.FullCommand():
		err = approveTask(ctx, cfg, *approveID)
	case wsShowCmd.FullCommand():
		err = showWorkspace(ctx, cfg, *wsShowID)
	case wsSubmitCmd.FullCommand():
		err = submitWorkspace(ctx, cfg, *wsSubmitID, *wsSubmitLabels, *wsSubmitApplyAI, *wsSubmitYes)
	case watchCmd.FullCommand():
		err = watch(ctx, cfg)
	case eventsCmd.FullCommand():
		err = streamEvents(ctx, cfg, *eventsTypes)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
