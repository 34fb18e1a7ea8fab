package idhash

import (
	"testing"
	"time"
)

func TestComputeSnapshotID_Deterministic(t *testing.T) {
	first := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 28, 18, 30, 0, 0, time.UTC)

	id1 := ComputeSnapshotID(20, 18, 150, first, last)
	id2 := ComputeSnapshotID(20, 18, 150, first, last)

	if id1 != id2 {
		t.Errorf("same inputs produced different IDs: %s vs %s", id1, id2)
	}
	if len(id1) != 64 {
		t.Errorf("expected 64-char hex ID, got %d chars", len(id1))
	}
}

func TestComputeSnapshotID_InputSensitivity(t *testing.T) {
	first := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 28, 18, 30, 0, 0, time.UTC)

	base := ComputeSnapshotID(20, 18, 150, first, last)

	if got := ComputeSnapshotID(21, 18, 150, first, last); got == base {
		t.Error("user count change did not change the ID")
	}
	if got := ComputeSnapshotID(20, 18, 151, first, last); got == base {
		t.Error("transaction count change did not change the ID")
	}
	if got := ComputeSnapshotID(20, 18, 150, first.Add(time.Second), last); got == base {
		t.Error("date range change did not change the ID")
	}
}

func TestComputeSnapshotID_EmptySnapshot(t *testing.T) {
	id := ComputeSnapshotID(0, 0, 0, time.Time{}, time.Time{})
	if len(id) != 64 {
		t.Errorf("expected 64-char hex ID for empty snapshot, got %d chars", len(id))
	}
}
