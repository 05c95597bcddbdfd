package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

type testJob struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

func (j *testJob) Name() string     { return j.name }
func (j *testJob) Schedule() string { return j.schedule }
func (j *testJob) Run(ctx context.Context) error {
	if j.run != nil {
		return j.run(ctx)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegisterJobDuplicate(t *testing.T) {
	s := NewScheduler(discardLogger())
	if err := s.RegisterJob(&testJob{name: "post", schedule: "* * * * *"}); err != nil {
		t.Fatalf("RegisterJob: %v", err)
	}
	if err := s.RegisterJob(&testJob{name: "post", schedule: "* * * * *"}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestStartInvalidSchedule(t *testing.T) {
	s := NewScheduler(discardLogger())
	if err := s.RegisterJob(&testJob{name: "bad", schedule: "not a cron expr"}); err != nil {
		t.Fatalf("RegisterJob: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(discardLogger())
	if err := s.RegisterJob(&testJob{name: "noop", schedule: "* * * * *"}); err != nil {
		t.Fatalf("RegisterJob: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
