package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDigestScheduler_OffDisables(t *testing.T) {
	svc, _, _, _, _ := setupDigestTest()
	sched := NewDigestScheduler(svc, "off", zap.NewNop())

	if err := sched.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if sched.cron != nil {
		t.Error("expected no cron loop when disabled")
	}
	sched.Stop()
}

func TestDigestScheduler_InvalidSchedule(t *testing.T) {
	svc, _, _, _, _ := setupDigestTest()
	sched := NewDigestScheduler(svc, "not a cron expr", zap.NewNop())

	err := sched.Start()
	if err == nil || !strings.Contains(err.Error(), "invalid digest schedule") {
		t.Errorf("expected schedule error, got %v", err)
	}
}

func TestDigestScheduler_StartStop(t *testing.T) {
	svc, _, _, _, _ := setupDigestTest()
	sched := NewDigestScheduler(svc, "0 6 * * *", zap.NewNop())

	if err := sched.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	sched.Stop()
}

func TestDigestScheduler_RunGeneratesYesterday(t *testing.T) {
	svc, digests, _, _, _ := setupDigestTest()
	sched := NewDigestScheduler(svc, "0 6 * * *", zap.NewNop())

	orig := timeNow
	timeNow = func() time.Time { return time.Date(2024, 3, 11, 6, 0, 0, 0, time.UTC) }
	defer func() { timeNow = orig }()

	sched.run()

	stored, err := digests.FindByDate(context.Background(), "2024-03-10")
	if err != nil {
		t.Fatalf("expected digest for 2024-03-10, got %v", err)
	}
	if stored.Date != "2024-03-10" {
		t.Errorf("expected date 2024-03-10, got %q", stored.Date)
	}
}
