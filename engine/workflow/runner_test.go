package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compozy/foodietour/engine/execution"
	"github.com/compozy/foodietour/engine/task"
	"github.com/compozy/foodietour/pkg/logger"
	"github.com/compozy/foodietour/sdk/client"
)

type fakeClient struct {
	agentErr  error
	taskErr   error
	execErr   error
	statuses  []*client.Execution
	getErr    error
	agentReq  *client.AgentRequest
	taskAgent string
	taskDef   *task.Definition
	execTask  string
	execInput map[string]any
	getCalls  int
}

func (f *fakeClient) CreateAgent(_ context.Context, req *client.AgentRequest) (*client.Agent, error) {
	f.agentReq = req
	if f.agentErr != nil {
		return nil, f.agentErr
	}
	return &client.Agent{ID: "agent-1", Name: req.Name}, nil
}

func (f *fakeClient) CreateTask(_ context.Context, agentID string, def *task.Definition) (*client.Task, error) {
	f.taskAgent = agentID
	f.taskDef = def
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	return &client.Task{ID: "task-1", Name: def.Name}, nil
}

func (f *fakeClient) CreateExecution(
	_ context.Context,
	taskID string,
	req *client.ExecutionRequest,
) (*client.Execution, error) {
	f.execTask = taskID
	f.execInput = req.Input
	if f.execErr != nil {
		return nil, f.execErr
	}
	return &client.Execution{ID: "exec-1", Status: client.ExecutionQueued}, nil
}

func (f *fakeClient) GetExecution(_ context.Context, _ string) (*client.Execution, error) {
	idx := f.getCalls
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	copied := *f.statuses[idx]
	return &copied, nil
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logger.ContextWithLogger(t.Context(), logger.NewForTests())
}

func newTestRunner(t *testing.T, fc *fakeClient, out *bytes.Buffer) *Runner {
	t.Helper()
	runner, err := NewRunner(&Config{
		Client:      fc,
		Credentials: task.Credentials{OpenWeatherMapAPIKey: "owm", BraveAPIKey: "brave"},
		Agent:       client.AgentRequest{Name: "FoodieTourAgent", Model: "claude-3.5-sonnet"},
		Tracking:    execution.Options{PollInterval: time.Millisecond},
		Reporter:    execution.NewReporter(out),
	})
	require.NoError(t, err)
	return runner
}

func TestRunner_Run(t *testing.T) {
	t.Run("Should chain agent, task and execution with the cities as input", func(t *testing.T) {
		fc := &fakeClient{statuses: []*client.Execution{
			{ID: "exec-1", Status: client.ExecutionSucceeded, Output: json.RawMessage(`"tour"`)},
		}}
		runner := newTestRunner(t, fc, &bytes.Buffer{})

		outcome, err := runner.Run(testContext(t), []string{"Lisbon", "Osaka"})

		require.NoError(t, err)
		assert.Equal(t, "FoodieTourAgent", fc.agentReq.Name)
		assert.Equal(t, "agent-1", fc.taskAgent)
		assert.Equal(t, "FoodieTourGenerator", fc.taskDef.Name)
		weather, ok := fc.taskDef.ToolByProvider(task.WeatherProvider)
		require.True(t, ok)
		assert.Equal(t, "owm", weather.Integration.Setup["openweathermap_api_key"])
		assert.Equal(t, "task-1", fc.execTask)
		assert.Equal(t, map[string]any{"cities": []string{"Lisbon", "Osaka"}}, fc.execInput)
		assert.Equal(t, 1, outcome.Polls)
	})

	t.Run("Should stop at the first failing call", func(t *testing.T) {
		fc := &fakeClient{taskErr: errors.New("task rejected")}
		runner := newTestRunner(t, fc, &bytes.Buffer{})

		_, err := runner.Run(testContext(t), []string{"Lisbon"})

		require.Error(t, err)
		assert.EqualError(t, err, "task rejected")
		assert.Empty(t, fc.execTask)
		assert.Equal(t, 0, fc.getCalls)
	})

	t.Run("Should fail before any call when credentials are missing", func(t *testing.T) {
		fc := &fakeClient{}
		runner, err := NewRunner(&Config{
			Client:   fc,
			Tracking: execution.DefaultOptions(),
			Reporter: execution.NewReporter(&bytes.Buffer{}),
		})
		require.NoError(t, err)

		_, err = runner.Run(testContext(t), []string{"Lisbon"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "render task")
		assert.Nil(t, fc.agentReq)
	})

	t.Run("Should reject an empty city list", func(t *testing.T) {
		fc := &fakeClient{}
		runner := newTestRunner(t, fc, &bytes.Buffer{})

		_, err := runner.Run(testContext(t), nil)

		require.Error(t, err)
		assert.Nil(t, fc.agentReq)
	})
}

func TestRunner_RunAndReport(t *testing.T) {
	t.Run("Should print the output after queued and running polls", func(t *testing.T) {
		fc := &fakeClient{statuses: []*client.Execution{
			{ID: "exec-1", Status: client.ExecutionQueued},
			{ID: "exec-1", Status: client.ExecutionRunning},
			{ID: "exec-1", Status: client.ExecutionSucceeded, Output: json.RawMessage(`"X"`)},
		}}
		var out bytes.Buffer
		runner := newTestRunner(t, fc, &out)

		err := runner.RunAndReport(testContext(t), []string{"Lisbon"})

		require.NoError(t, err)
		assert.Equal(t, "Workflow Output: X\n", out.String())
		assert.Equal(t, 3, fc.getCalls)
	})

	t.Run("Should print the failure after one delayed poll", func(t *testing.T) {
		fc := &fakeClient{statuses: []*client.Execution{
			{ID: "exec-1", Status: client.ExecutionRunning},
			{ID: "exec-1", Status: client.ExecutionFailed, Error: "Y"},
		}}
		var out bytes.Buffer
		runner := newTestRunner(t, fc, &out)

		err := runner.RunAndReport(testContext(t), []string{"Lisbon"})

		require.NoError(t, err)
		assert.Equal(t, "Workflow failed: Y\n", out.String())
		assert.Equal(t, 2, fc.getCalls)
	})

	t.Run("Should print transport errors without polling again", func(t *testing.T) {
		netErr := &client.NetworkError{Operation: "get execution", Cause: errors.New("connection reset")}
		fc := &fakeClient{getErr: netErr}
		var out bytes.Buffer
		runner := newTestRunner(t, fc, &out)

		err := runner.RunAndReport(testContext(t), []string{"Lisbon"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Error: ")
		assert.Contains(t, out.String(), "connection reset")
		assert.NotContains(t, out.String(), "Workflow")
		assert.Equal(t, 1, fc.getCalls)
	})

	t.Run("Should print creation errors", func(t *testing.T) {
		fc := &fakeClient{agentErr: &client.APIError{Operation: "create agent", Status: 401}}
		var out bytes.Buffer
		runner := newTestRunner(t, fc, &out)

		err := runner.RunAndReport(testContext(t), []string{"Lisbon"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Error: create agent")
		assert.Contains(t, out.String(), "authentication failed")
	})
}

func TestRunner_ResumeAndReport(t *testing.T) {
	t.Run("Should track an existing execution", func(t *testing.T) {
		fc := &fakeClient{statuses: []*client.Execution{
			{ID: "exec-9", Status: client.ExecutionSucceeded, Output: json.RawMessage(`{"a":1}`)},
		}}
		var out bytes.Buffer
		runner := newTestRunner(t, fc, &out)

		err := runner.ResumeAndReport(testContext(t), "exec-9")

		require.NoError(t, err)
		assert.Equal(t, "Workflow Output: {\"a\":1}\n", out.String())
		assert.Nil(t, fc.agentReq)
	})
}

func TestNewRunner(t *testing.T) {
	t.Run("Should require a client and a reporter", func(t *testing.T) {
		_, err := NewRunner(nil)
		require.Error(t, err)
		_, err = NewRunner(&Config{Reporter: execution.NewReporter(&bytes.Buffer{}), Tracking: execution.DefaultOptions()})
		require.Error(t, err)
		_, err = NewRunner(&Config{Client: &fakeClient{}, Tracking: execution.DefaultOptions()})
		require.Error(t, err)
	})

	t.Run("Should reject invalid tracking options", func(t *testing.T) {
		_, err := NewRunner(&Config{
			Client:   &fakeClient{},
			Reporter: execution.NewReporter(&bytes.Buffer{}),
		})
		require.Error(t, err)
	})
}
