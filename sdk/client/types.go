package client

import "encoding/json"

// ExecutionStatus is the lifecycle label reported by the service.
type ExecutionStatus string

const (
	ExecutionQueued        ExecutionStatus = "queued"
	ExecutionStarting      ExecutionStatus = "starting"
	ExecutionRunning       ExecutionStatus = "running"
	ExecutionAwaitingInput ExecutionStatus = "awaiting_input"
	ExecutionSucceeded     ExecutionStatus = "succeeded"
	ExecutionFailed        ExecutionStatus = "failed"
	ExecutionCancelled     ExecutionStatus = "cancelled"
)

// IsTerminal reports whether no further transition follows this status.
// Only succeeded and failed end tracking.
func (s ExecutionStatus) IsTerminal() bool {
	return s == ExecutionSucceeded || s == ExecutionFailed
}

func (s ExecutionStatus) String() string {
	return string(s)
}

// AgentRequest is the payload for creating an agent.
type AgentRequest struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	About string `json:"about,omitempty"`
}

// Agent is the service's reference to a created agent.
type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model,omitempty"`
	About string `json:"about,omitempty"`
}

// Task is the service's reference to a created task.
type Task struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AgentID string `json:"agent_id,omitempty"`
}

// ExecutionRequest is the payload for starting an execution of a task.
type ExecutionRequest struct {
	Input map[string]any `json:"input"`
}

// Execution is one remote run of a task. Output is set once the run
// succeeded and Error once it failed.
type Execution struct {
	ID     string          `json:"id"`
	TaskID string          `json:"task_id,omitempty"`
	Status ExecutionStatus `json:"status"`
	Input  map[string]any  `json:"input,omitempty"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Succeeded reports whether the execution finished successfully.
func (e *Execution) Succeeded() bool {
	return e != nil && e.Status == ExecutionSucceeded
}
