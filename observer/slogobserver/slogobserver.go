// Package slogobserver adapts log/slog into an observer.Observer, the way
// CWBudde-MayFlyCircleFit's server and cmd packages log job/checkpoint
// progress through structured slog.Info/Debug calls rather than raw
// fmt.Println.
package slogobserver

import (
	"context"
	"log/slog"

	"github.com/rwcarlsen/optimum"
)

// IterReporter is the subset of state.IterState/PopulationState fields the
// observer logs. Keeping it narrow lets the observer stay generic over any
// concrete State without importing the state package.
type IterReporter interface {
	GetIter() uint64
	IsBest() bool
}

// Sink logs one structured line per observed iteration via a *slog.Logger.
// It satisfies observer.Observer[St] for any St implementing IterReporter.
type Sink[St IterReporter] struct {
	Logger *slog.Logger
	// Level controls ObserveIter's log level; ObserveInit always logs at
	// Info since it happens once per run.
	Level slog.Level
}

func New[St IterReporter](logger *slog.Logger) *Sink[St] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink[St]{Logger: logger, Level: slog.LevelInfo}
}

func (s *Sink[St]) ObserveInit(name string, state St, kv *optimum.KV) error {
	args := append([]any{"solver", name, "iter", state.GetIter()}, slogKVArgs(kv)...)
	s.Logger.Info("optimization started", args...)
	return nil
}

func (s *Sink[St]) ObserveIter(state St, kv *optimum.KV) error {
	args := append([]any{"iter", state.GetIter(), "is_best", state.IsBest()}, slogKVArgs(kv)...)
	s.Logger.Log(context.Background(), s.Level, "optimization iteration", args...)
	return nil
}

func slogKVArgs(kv *optimum.KV) []any {
	if kv == nil {
		return nil
	}
	keys := kv.Keys()
	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		v, _ := kv.Get(k)
		args = append(args, k, kvAny(v))
	}
	return args
}

func kvAny(v optimum.Value) any {
	switch v.Kind() {
	case optimum.KindFloat:
		f, _ := v.Float()
		return f
	case optimum.KindInt:
		i, _ := v.Int()
		return i
	case optimum.KindUint:
		u, _ := v.Uint()
		return u
	case optimum.KindBool:
		b, _ := v.Bool()
		return b
	default:
		s, _ := v.String()
		return s
	}
}
