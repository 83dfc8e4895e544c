package state

import (
	"time"

	"github.com/rwcarlsen/optimum"
)

// Particle is one member of a population in a PopulationState: its current
// position and cost plus its own best-so-far, and a velocity for
// momentum-based movers such as particle swarm.
type Particle[P any, F optimum.Float] struct {
	Position     P
	Cost         F
	BestPosition P
	BestCost     F
	Velocity     P
}

// PopulationState is the analogue of IterState for population-based
// heuristics: the parameter is Population, an ordered sequence of Particle
// rather than a single point, with an individual_best aggregation across
// the population.
type PopulationState[P any, F optimum.Float] struct {
	Population     []Particle[P, F]
	PrevPopulation []Particle[P, F]

	BestParam, PrevBestParam P
	hasParam                 bool
	Cost, PrevCost           F
	BestCost, PrevBestCost   F
	TargetCost               F

	Iter         uint64
	LastBestIter uint64
	MaxIters     uint64

	counts optimum.Counts
	time   *time.Duration
	status optimum.TerminationStatus
	isBest bool
}

// NewPopulation returns a fresh PopulationState with spec-mandated
// defaults.
func NewPopulation[P any, F optimum.Float]() *PopulationState[P, F] {
	return &PopulationState[P, F]{
		Cost:         optimum.PosInf[F](),
		PrevCost:     optimum.PosInf[F](),
		BestCost:     optimum.PosInf[F](),
		PrevBestCost: optimum.PosInf[F](),
		TargetCost:   optimum.NegInf[F](),
		MaxIters:     ^uint64(0),
		counts:       optimum.NewCounts(),
	}
}

func (s *PopulationState[P, F]) WithPopulation(pop []Particle[P, F]) *PopulationState[P, F] {
	s.Population = pop
	s.hasParam = true
	return s
}

func (s *PopulationState[P, F]) HasParam() bool { return s.hasParam }

func (s *PopulationState[P, F]) WithTargetCost(c F) *PopulationState[P, F] {
	s.TargetCost = c
	return s
}

func (s *PopulationState[P, F]) WithMaxIters(n uint64) *PopulationState[P, F] {
	s.MaxIters = n
	return s
}

// individualBest scans the population for the lowest BestCost, mirroring
// Population.Best() in the teacher's pswarm package.
func individualBest[P any, F optimum.Float](pop []Particle[P, F]) (P, F) {
	var bestPos P
	best := optimum.PosInf[F]()
	for i, p := range pop {
		if i == 0 || p.BestCost < best {
			best = p.BestCost
			bestPos = p.BestPosition
		}
	}
	return bestPos, best
}

// Update applies the population-wide individual_best aggregation and the
// same best-tracking rule as IterState.
func (s *PopulationState[P, F]) Update() *PopulationState[P, F] {
	s.PrevPopulation = s.Population
	s.PrevCost = s.Cost

	pos, cost := individualBest(s.Population)
	s.Cost = cost

	improved := s.Cost < s.BestCost
	bothNonFinite := !optimum.IsFinite(s.BestCost) && !optimum.IsFinite(s.Cost)
	if improved || bothNonFinite {
		s.PrevBestParam = s.BestParam
		s.PrevBestCost = s.BestCost
		s.BestParam = pos
		s.BestCost = cost
		s.LastBestIter = s.Iter
		s.isBest = true
	} else {
		s.isBest = false
	}
	return s
}

func (s *PopulationState[P, F]) IncrementIter() *PopulationState[P, F] {
	s.Iter++
	return s
}

func (s *PopulationState[P, F]) GetIter() uint64 { return s.Iter }

func (s *PopulationState[P, F]) IsBest() bool { return s.isBest }

func (s *PopulationState[P, F]) Terminated() bool { return s.status.IsTerminated() }

func (s *PopulationState[P, F]) TerminationStatus() optimum.TerminationStatus { return s.status }

func (s *PopulationState[P, F]) TerminateWith(reason optimum.TerminationReason) *PopulationState[P, F] {
	if !s.status.IsTerminated() {
		s.status = optimum.Terminated(reason)
	}
	return s
}

func (s *PopulationState[P, F]) CheckInternalTermination() optimum.TerminationStatus {
	if s.Iter >= s.MaxIters {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.MaxItersReached})
	}
	if s.BestCost <= s.TargetCost {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.TargetCostReached})
	}
	return optimum.NotTerminatedStatus
}

func (s *PopulationState[P, F]) WithFuncCounts(counts optimum.Counts) *PopulationState[P, F] {
	s.counts = counts
	return s
}

func (s *PopulationState[P, F]) FuncCounts() optimum.Counts { return s.counts }

func (s *PopulationState[P, F]) WithTime(d time.Duration) *PopulationState[P, F] {
	s.time = &d
	return s
}

func (s *PopulationState[P, F]) Time() *time.Duration { return s.time }

// BestCostFloat returns BestCost widened to float64, for sinks (metrics,
// logging) that need a backend-agnostic scalar regardless of F.
func (s *PopulationState[P, F]) BestCostFloat() float64 { return float64(s.BestCost) }
