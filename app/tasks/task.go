package tasks

import (
	"time"
)

type Task struct {
	JobName   string
	StartedAt *time.Time
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(jobName string) Task {
	return Task{JobName: jobName}
}
