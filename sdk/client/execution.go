package client

import (
	"context"
	"fmt"
	"net/http"
)

// CreateExecution starts a run of the task with the given input.
func (c *Client) CreateExecution(ctx context.Context, taskID string, req *ExecutionRequest) (*Execution, error) {
	id, err := requireID("task", taskID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &ExecutionRequest{Input: map[string]any{}}
	}
	var exec Execution
	err = c.send(ctx, request{
		operation:  "create execution",
		method:     http.MethodPost,
		path:       "/tasks/{task_id}/executions",
		pathParams: map[string]string{"task_id": id},
		body:       req,
	}, &exec)
	if err != nil {
		return nil, err
	}
	if exec.ID == "" {
		return nil, fmt.Errorf("create execution: response has no id")
	}
	logResource(ctx, "execution created", "exec_id", exec.ID, "task_id", id, "status", exec.Status)
	return &exec, nil
}

// GetExecution fetches the current state of an execution. Every call is a
// fresh remote read.
func (c *Client) GetExecution(ctx context.Context, executionID string) (*Execution, error) {
	id, err := requireID("execution", executionID)
	if err != nil {
		return nil, err
	}
	var exec Execution
	err = c.send(ctx, request{
		operation:  "get execution",
		method:     http.MethodGet,
		path:       "/executions/{execution_id}",
		pathParams: map[string]string{"execution_id": id},
	}, &exec)
	if err != nil {
		return nil, err
	}
	return &exec, nil
}
