package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/foodietour/pkg/logger"
)

// CreateAgent registers a new agent and returns its reference.
func (c *Client) CreateAgent(ctx context.Context, req *AgentRequest) (*Agent, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("agent name is required")
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("agent model is required")
	}
	var agent Agent
	err := c.send(ctx, request{
		operation: "create agent",
		method:    http.MethodPost,
		path:      "/agents",
		body:      req,
	}, &agent)
	if err != nil {
		return nil, err
	}
	if agent.ID == "" {
		return nil, fmt.Errorf("create agent: response has no id")
	}
	logResource(ctx, "agent created", "agent_id", agent.ID, "model", req.Model)
	return &agent, nil
}

func logResource(ctx context.Context, msg string, keyvals ...any) {
	log := logger.FromContext(ctx)
	if log == nil {
		return
	}
	log.Info(msg, keyvals...)
}
