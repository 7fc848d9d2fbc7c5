package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/roach88/sortstep/internal/engine"
)

func TestReplayRun_AllAlgorithms(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, alg := range engine.Algorithms() {
		t.Run(alg.Entry().Key, func(t *testing.T) {
			run, err := s.Record(ctx, alg, []int{9, 4, 4, 0, -2, 7, 1})
			if err != nil {
				t.Fatal(err)
			}

			res, err := s.ReplayRun(ctx, run.ID)
			if err != nil {
				t.Fatalf("ReplayRun() failed: %v", err)
			}
			if !res.OK() {
				t.Errorf("replay failed: %+v", res)
			}
			if res.StoredDigest != res.ReplayDigest {
				t.Errorf("digests differ: %s vs %s", res.StoredDigest, res.ReplayDigest)
			}
			if res.StepCount != run.StepCount {
				t.Errorf("StepCount = %d, want %d", res.StepCount, run.StepCount)
			}
		})
	}
}

func TestReplayRun_DetectsTampering(t *testing.T) {
	tests := []struct {
		name    string
		tamper  string
		wantMsg string
	}{
		{
			name:    "description",
			tamper:  "UPDATE steps SET description = 'edited' WHERE run_id = ? AND seq = 0",
			wantMsg: "recorded digest",
		},
		{
			name:    "header digest",
			tamper:  "UPDATE runs SET digest = 'bogus' WHERE id = ?",
			wantMsg: "recorded digest",
		},
		{
			name:    "final array",
			tamper:  "UPDATE runs SET final = '[0,0,0]' WHERE id = ?",
			wantMsg: "differs from stored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)
			ctx := context.Background()

			run, err := s.Record(ctx, engine.Selection, []int{3, 1, 2})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := s.db.Exec(tt.tamper, run.ID); err != nil {
				t.Fatalf("tamper: %v", err)
			}

			res, err := s.ReplayRun(ctx, run.ID)
			if err != nil {
				t.Fatalf("ReplayRun() failed: %v", err)
			}
			if res.OK() {
				t.Fatal("tampered run passed replay")
			}
			if !strings.Contains(res.Mismatch, tt.wantMsg) {
				t.Errorf("Mismatch = %q, want it to mention %q", res.Mismatch, tt.wantMsg)
			}
		})
	}
}

func TestReplayRun_Missing(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReplayRun(context.Background(), "run-9999")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestFirstDifference(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	run, err := s.Record(ctx, engine.Bubble, []int{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	steps, err := s.LoadSteps(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}

	if got := firstDifference(steps, steps[:1]); got != "stored 4 steps, replayed 1" {
		t.Errorf("firstDifference() = %q", got)
	}

	edited := append(steps[:0:0], steps...)
	edited[1].Description = "x"
	if got := firstDifference(steps, edited); !strings.HasPrefix(got, "step 1:") {
		t.Errorf("firstDifference() = %q", got)
	}
}
