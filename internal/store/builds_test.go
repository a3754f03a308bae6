package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return s
}

func TestBuildLifecycleDone(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := s.BeginBuild(start)
	if err != nil {
		t.Fatalf("BeginBuild: %v", err)
	}

	end := start.Add(4 * time.Minute)
	if err := s.FinishBuild(id, end, "0.7.8", "/home/u/claude-desktop_0.7.8_amd64.deb"); err != nil {
		t.Fatalf("FinishBuild: %v", err)
	}

	builds, err := s.ListBuilds()
	if err != nil {
		t.Fatalf("ListBuilds: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("got %d builds, want 1", len(builds))
	}

	b := builds[0]
	if b.State != BuildDone {
		t.Errorf("state = %q, want %q", b.State, BuildDone)
	}
	if b.Version != "0.7.8" {
		t.Errorf("version = %q, want 0.7.8", b.Version)
	}
	if !b.StartedAt.Equal(start) || !b.FinishedAt.Equal(end) {
		t.Errorf("timestamps not preserved: %v / %v", b.StartedAt, b.FinishedAt)
	}
}

func TestBuildLifecycleFailed(t *testing.T) {
	s := newTestStore(t)

	id, err := s.BeginBuild(time.Now())
	if err != nil {
		t.Fatalf("BeginBuild: %v", err)
	}
	if err := s.FailBuild(id, time.Now(), "fetching"); err != nil {
		t.Fatalf("FailBuild: %v", err)
	}

	builds, err := s.ListBuilds()
	if err != nil {
		t.Fatalf("ListBuilds: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("got %d builds, want 1", len(builds))
	}
	if builds[0].State != BuildFailed {
		t.Errorf("state = %q, want %q", builds[0].State, BuildFailed)
	}
	if builds[0].FailedStage != "fetching" {
		t.Errorf("failed_stage = %q, want fetching", builds[0].FailedStage)
	}
}

func TestListBuildsMostRecentFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := s.BeginBuild(base.Add(time.Duration(i) * time.Hour)); err != nil {
			t.Fatalf("BeginBuild %d: %v", i, err)
		}
	}

	builds, err := s.ListBuilds()
	if err != nil {
		t.Fatalf("ListBuilds: %v", err)
	}
	if len(builds) != 3 {
		t.Fatalf("got %d builds, want 3", len(builds))
	}
	for i := 1; i < len(builds); i++ {
		if builds[i].StartedAt.After(builds[i-1].StartedAt) {
			t.Errorf("builds not sorted most recent first")
		}
	}
}
