package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/compozy/foodietour/engine/task"
)

// CreateTask submits a task definition owned by the given agent.
func (c *Client) CreateTask(ctx context.Context, agentID string, def *task.Definition) (*Task, error) {
	id, err := requireID("agent", agentID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, fmt.Errorf("task definition is required")
	}
	var created Task
	err = c.send(ctx, request{
		operation:  "create task",
		method:     http.MethodPost,
		path:       "/agents/{agent_id}/tasks",
		pathParams: map[string]string{"agent_id": id},
		body:       def,
	}, &created)
	if err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("create task: response has no id")
	}
	logResource(ctx, "task created", "task_id", created.ID, "agent_id", id, "name", def.Name)
	return &created, nil
}
