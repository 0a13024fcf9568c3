package scheduler

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type schedulerConfig struct {
	redisURL string
}

func (c schedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c schedulerConfig) GetAsynqQueueName() string { return "leadtrack" }
func (c schedulerConfig) GetWorkerConcurrency() int { return 2 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(schedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestScheduleLeadAutoAssignEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(schedulerConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	payload := LeadAutoAssignPayload{LeadID: uuid.NewString()}
	if err := client.ScheduleLeadAutoAssign(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, key := range srv.Keys() {
		if strings.Contains(key, "leadtrack") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a task on the leadtrack queue, keys: %v", srv.Keys())
	}
}

func TestLeadAutoAssignPayloadRoundtrip(t *testing.T) {
	want := LeadAutoAssignPayload{LeadID: uuid.NewString()}

	task, err := NewLeadAutoAssignTask(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskLeadAutoAssign {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	got, err := ParseLeadAutoAssignPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("payload mismatch: %#v != %#v", got, want)
	}
}

func TestParseLeadAutoAssignPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskLeadAutoAssign, []byte("not-json"))
	if _, err := ParseLeadAutoAssignPayload(task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
