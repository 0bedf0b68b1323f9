package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/foodietour/engine/execution"
	"github.com/compozy/foodietour/engine/task"
	"github.com/compozy/foodietour/pkg/logger"
	"github.com/compozy/foodietour/sdk/client"
)

// CitiesInputKey is the execution input field holding the requested cities.
const CitiesInputKey = "cities"

// Client is the subset of the remote API the runner drives.
type Client interface {
	CreateAgent(ctx context.Context, req *client.AgentRequest) (*client.Agent, error)
	CreateTask(ctx context.Context, agentID string, def *task.Definition) (*client.Task, error)
	CreateExecution(ctx context.Context, taskID string, req *client.ExecutionRequest) (*client.Execution, error)
	GetExecution(ctx context.Context, executionID string) (*client.Execution, error)
}

// Config carries everything a run needs besides the cities.
type Config struct {
	Client      Client
	Renderer    *task.Renderer
	Credentials task.Credentials
	Agent       client.AgentRequest
	Tracking    execution.Options
	Reporter    *execution.Reporter
}

// Runner creates the agent, task and execution for a foodie tour and tracks
// the execution to completion.
type Runner struct {
	client   Client
	renderer *task.Renderer
	creds    task.Credentials
	agent    client.AgentRequest
	tracker  *execution.Tracker
	reporter *execution.Reporter
}

func NewRunner(cfg *Config) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("runner config is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("workflow client is required")
	}
	if cfg.Reporter == nil {
		return nil, fmt.Errorf("reporter is required")
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = task.NewRenderer()
	}
	tracker, err := execution.NewTracker(cfg.Client, cfg.Tracking)
	if err != nil {
		return nil, err
	}
	return &Runner{
		client:   cfg.Client,
		renderer: renderer,
		creds:    cfg.Credentials,
		agent:    cfg.Agent,
		tracker:  tracker,
		reporter: cfg.Reporter,
	}, nil
}

// Run submits the foodie tour for cities and waits for the execution to end.
func (r *Runner) Run(ctx context.Context, cities []string) (*execution.Outcome, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("at least one city is required")
	}
	log := logger.FromContext(ctx)
	def, err := r.renderer.Render(r.creds)
	if err != nil {
		return nil, fmt.Errorf("render task: %w", err)
	}
	input := map[string]any{CitiesInputKey: cities}
	if err := def.ValidateInput(input); err != nil {
		return nil, err
	}
	agent, err := r.client.CreateAgent(ctx, &r.agent)
	if err != nil {
		return nil, err
	}
	created, err := r.client.CreateTask(ctx, agent.ID, def)
	if err != nil {
		return nil, err
	}
	exec, err := r.client.CreateExecution(ctx, created.ID, &client.ExecutionRequest{Input: input})
	if err != nil {
		return nil, err
	}
	log.Info("tracking execution", "exec_id", exec.ID, "cities", strings.Join(cities, ", "))
	return r.tracker.Wait(ctx, exec.ID)
}

// Resume tracks an execution started by an earlier run.
func (r *Runner) Resume(ctx context.Context, executionID string) (*execution.Outcome, error) {
	return r.tracker.Wait(ctx, executionID)
}

// RunAndReport runs the tour and prints its result. Every failure up to the
// report is printed as an error line instead of being returned; only a
// failed write to the console is returned.
func (r *Runner) RunAndReport(ctx context.Context, cities []string) error {
	outcome, err := r.Run(ctx, cities)
	return r.Report(ctx, outcome, err)
}

// ResumeAndReport is RunAndReport for an existing execution.
func (r *Runner) ResumeAndReport(ctx context.Context, executionID string) error {
	outcome, err := r.Resume(ctx, executionID)
	return r.Report(ctx, outcome, err)
}

// Report prints outcome, or err when the run did not produce one.
func (r *Runner) Report(ctx context.Context, outcome *execution.Outcome, err error) error {
	if err != nil {
		logger.FromContext(ctx).Debug("workflow run failed", "error", err)
		return r.reporter.Error(err)
	}
	return r.reporter.Outcome(outcome)
}
