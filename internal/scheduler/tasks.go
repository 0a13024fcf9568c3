// Package scheduler provides the asynq client, task definitions, and worker
// for background lead processing.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadAutoAssign = "leads.autoassign"

type LeadAutoAssignPayload struct {
	LeadID string `json:"leadId"`
}

func NewLeadAutoAssignTask(payload LeadAutoAssignPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadAutoAssign, data), nil
}

func ParseLeadAutoAssignPayload(task *asynq.Task) (LeadAutoAssignPayload, error) {
	var payload LeadAutoAssignPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadAutoAssignPayload{}, err
	}
	return payload, nil
}
