// Package filecheckpoint is a filesystem-backed checkpoint.Checkpoint,
// grounded on CWBudde-MayFlyCircleFit's FSStore: a temp-file-then-rename
// write for atomicity and a plain ReadFile for load. It uses encoding/gob
// rather than FSStore's JSON. Gob encodes exported fields only: unexported
// fields of the solver and state (for state.IterState and
// state.PopulationState: evaluation counts, elapsed time, termination
// status, and the is-best and has-param flags) are not part of the
// snapshot unless the type implements gob.GobEncoder itself, as pso.PSO
// does.
package filecheckpoint

import (
	"bytes"
	"encoding/gob"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rwcarlsen/optimum"
)

// Sink persists a (solver, state) snapshot at path, using a temp-file
// write plus atomic rename so a crash mid-write never corrupts the last
// good snapshot. Every snapshot is stamped with a run identifier: a fresh
// one the first time Save is called, or the one recovered from disk once
// Load has restored a prior run, so a chain of saves against the same
// path can be traced back to the run that started it.
type Sink[S, St any] struct {
	path  string
	runID uuid.UUID
}

// New returns a Sink writing to path, stamped with a newly generated run
// ID. The parent directory is created lazily on first Save. Call Load
// first if path may already hold a prior run's snapshot, so its run ID is
// carried forward instead of being overwritten by this new one.
func New[S, St any](path string) *Sink[S, St] {
	return &Sink[S, St]{path: path, runID: uuid.New()}
}

// RunID is the identifier stamped into every snapshot this Sink saves.
func (s *Sink[S, St]) RunID() uuid.UUID { return s.runID }

type snapshot[S, St any] struct {
	RunID  uuid.UUID
	Solver S
	State  St
}

// Save gob-encodes (run ID, solver, state) to a temp file beside path,
// then renames it into place, matching FSStore.SaveCheckpoint's temp-
// then-rename pattern.
func (s *Sink[S, St]) Save(solver S, state St) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return optimum.NewIOError("checkpoint mkdir", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot[S, St]{RunID: s.runID, Solver: solver, State: state}); err != nil {
		return optimum.NewIOError("checkpoint encode", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0644); err != nil {
		return optimum.NewIOError("checkpoint write", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return optimum.NewIOError("checkpoint rename", err)
	}

	slog.Debug("checkpoint saved", "path", s.path, "run_id", s.runID)
	return nil
}

// Load attempts to restore the most recent snapshot. A missing file is
// reported as ok=false, err=nil — "no snapshot available" is not an
// error. On success, s.RunID() switches to the restored snapshot's run
// ID, so a subsequent Save continues stamping the same run rather than a
// newly generated one.
func (s *Sink[S, St]) Load() (solver S, state St, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return solver, state, false, nil
	} else if err != nil {
		return solver, state, false, optimum.NewIOError("checkpoint read", err)
	}

	var snap snapshot[S, St]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return solver, state, false, optimum.NewIOError("checkpoint decode", err)
	}

	s.runID = snap.RunID
	slog.Debug("checkpoint loaded", "path", s.path, "run_id", s.runID)
	return snap.Solver, snap.State, true, nil
}
