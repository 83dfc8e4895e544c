// Package pso implements particle swarm optimization: a population of
// particles explores the parameter space, each one nudged every
// iteration by an inertia term, a pull toward its own best-known
// position, and a pull toward the swarm's best-known position.
//
// Grounded on the teacher's pswarm/pswarm.go (Particle.Update,
// Population.Best, SimpleMover.Move's inertia/cognition/social velocity
// update) and pop/pop.go (box-bound random initialization seeded off a
// caller-owned *rand.Rand, and the petar/GoLLRB/llrb worst-candidate
// ranking adapted below for stall reseeding).
package pso

import (
	"bytes"
	"encoding/gob"
	"math/rand"

	"github.com/petar/GoLLRB/llrb"

	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/linalg"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/solver"
	"github.com/rwcarlsen/optimum/state"
)

// The state PSO drives is *state.PopulationState[P, F].

// Vector is the capability set PSO needs from its parameter type: the
// pointwise arithmetic behind velocity updates, plus box-bound random
// sampling for initialization and stall reseeding.
type Vector[P any, F optimum.Float] interface {
	linalg.Adder[P]
	linalg.Suber[P]
	linalg.Scaler[P, F]
	linalg.Randomer[P, F]
}

// PSO is a particle swarm solver. Every NextIter call moves the whole
// population by inertia + cognitive + social velocity terms, evaluates
// the moved positions in bulk, and updates each particle's personal
// best.
//
// The RNG is driven off Seed rather than exposing a live *rand.Rand
// field: *rand.Rand's Source has no exported fields, so encoding/gob
// (which filecheckpoint uses) cannot serialize it directly. src instead
// wraps rand.NewSource(Seed) and counts every draw, so GobEncode can
// persist (Seed, draw count) and GobDecode can rebuild an RNG in the
// exact same state by reseeding and replaying that many draws — a
// resumed run continues the identical draw sequence it would have
// produced uninterrupted.
type PSO[O problem.CostFunction[P, F], P Vector[P, F], F optimum.Float] struct {
	solver.Defaults[O, *state.PopulationState[P, F]]

	// NumParticles is the swarm size; must be > 0.
	NumParticles int
	// Low, High bound every dimension's initial and reseeded positions.
	Low, High F
	// Cognition weights the pull toward a particle's own best position.
	Cognition F
	// Social weights the pull toward the swarm's best-known position.
	Social F
	// Inertia weights how much of the previous velocity carries over.
	Inertia F
	// Seed is the RNG seed in force since the last WithSeed call,
	// recorded for reproducibility per SPEC_FULL.md §5's RNG ownership
	// rule.
	Seed int64

	// StallLimit reseeds the worst-ranked ReseedCount particles once the
	// swarm's best cost has gone StallLimit consecutive iterations
	// without improving. Zero disables reseeding.
	StallLimit  uint64
	ReseedCount int

	template    P
	hasTemplate bool

	src *countingSource
	rng *rand.Rand
}

// New returns a PSO with the teacher's defaults: 30 particles, bounds
// [-1,1], cognition/social 0.5, inertia 0.8, seed 0, no stall reseeding.
func New[O problem.CostFunction[P, F], P Vector[P, F], F optimum.Float]() *PSO[O, P, F] {
	p := &PSO[O, P, F]{
		NumParticles: 30,
		Low:          -1,
		High:         1,
		Cognition:    0.5,
		Social:       0.5,
		Inertia:      0.8,
	}
	p.WithSeed(0)
	return p
}

// SetTemplate fixes the population's dimensionality: template is never
// itself used as a particle position, only as the receiver Random is
// called against. Required before Init.
func (p *PSO[O, P, F]) SetTemplate(template P) *PSO[O, P, F] {
	p.template = template
	p.hasTemplate = true
	return p
}

// WithSeed (re)seeds the RNG that drives every random draw, for
// reproducible runs (SPEC_FULL.md §5's RNG ownership rule).
func (p *PSO[O, P, F]) WithSeed(seed int64) *PSO[O, P, F] {
	p.Seed = seed
	p.src = newCountingSource(seed)
	p.rng = rand.New(p.src)
	return p
}

// WithStallReseed enables reseeding the worst count particles once the
// swarm's best has gone limit iterations without improving.
func (p *PSO[O, P, F]) WithStallReseed(limit uint64, count int) *PSO[O, P, F] {
	p.StallLimit = limit
	p.ReseedCount = count
	return p
}

func (p *PSO[O, P, F]) Name() string { return "pso" }

// Init seeds a random population within [Low, High] on every dimension
// and evaluates its initial cost, establishing each particle's first
// personal best.
func (p *PSO[O, P, F]) Init(w *problem.Wrapper[O], st *state.PopulationState[P, F]) (*state.PopulationState[P, F], *optimum.KV, error) {
	if !p.hasTemplate {
		return st, nil, optimum.NewNotInitializedError("Template")
	}
	if p.NumParticles <= 0 {
		return st, nil, optimum.NewConditionViolatedError("PSO: NumParticles must be > 0")
	}
	if p.rng == nil {
		return st, nil, optimum.NewNotInitializedError("Seed")
	}

	particles := make([]state.Particle[P, F], p.NumParticles)
	positions := make([]P, p.NumParticles)
	for i := range particles {
		positions[i] = p.template.Random(p.rng, p.Low, p.High)
		particles[i].Position = positions[i]
		particles[i].Velocity = p.template.Random(p.rng, -(p.High-p.Low), p.High-p.Low)
		particles[i].BestCost = optimum.PosInf[F]()
	}

	costs, err := problem.BulkCost[O, P, F](w, positions)
	if err != nil {
		return st, nil, err
	}
	for i := range particles {
		particles[i].Cost = costs[i]
		particles[i].BestPosition = particles[i].Position
		particles[i].BestCost = costs[i]
	}

	st = st.WithPopulation(particles)
	return st, nil, nil
}

// NextIter moves every particle toward its own and the swarm's best
// position, evaluates the moved population in bulk, refreshes personal
// bests, and — once StallLimit is exceeded — reseeds the worst-ranked
// particles to escape a stalled local minimum.
func (p *PSO[O, P, F]) NextIter(w *problem.Wrapper[O], st *state.PopulationState[P, F]) (*state.PopulationState[P, F], *optimum.KV, error) {
	particles := st.Population

	swarmBestPos, swarmBestCost := particles[0].BestPosition, particles[0].BestCost
	for _, particle := range particles[1:] {
		if particle.BestCost < swarmBestCost {
			swarmBestPos, swarmBestCost = particle.BestPosition, particle.BestCost
		}
	}

	positions := make([]P, len(particles))
	for i, particle := range particles {
		w1, w2 := p.rng.Float64(), p.rng.Float64()

		toward, err := particle.BestPosition.Sub(particle.Position)
		if err != nil {
			return st, nil, err
		}
		towardSwarm, err := swarmBestPos.Sub(particle.Position)
		if err != nil {
			return st, nil, err
		}

		vel := particle.Velocity.Scale(p.Inertia)
		vel, err = vel.Add(toward.Scale(p.Cognition * F(w1)))
		if err != nil {
			return st, nil, err
		}
		vel, err = vel.Add(towardSwarm.Scale(p.Social * F(w2)))
		if err != nil {
			return st, nil, err
		}

		pos, err := particle.Position.Add(vel)
		if err != nil {
			return st, nil, err
		}

		particles[i].Velocity = vel
		particles[i].Position = pos
		positions[i] = pos
	}

	if p.StallLimit > 0 && p.ReseedCount > 0 && st.Iter > 0 && st.Iter-st.LastBestIter >= p.StallLimit {
		p.reseedWorst(particles, positions)
	}

	costs, err := problem.BulkCost[O, P, F](w, positions)
	if err != nil {
		return st, nil, err
	}
	for i := range particles {
		particles[i].Cost = costs[i]
		if costs[i] < particles[i].BestCost || !optimum.IsFinite(particles[i].BestCost) {
			particles[i].BestCost = costs[i]
			particles[i].BestPosition = particles[i].Position
		}
	}

	st.Population = particles
	kv := optimum.NewKV().With("swarmbest", optimum.FloatValue(float64(swarmBestCost)))
	return st, kv, nil
}

// worstItem ranks particles by current cost, highest (worst) first,
// adapting the llrb.Item ranking pop.go uses for infeasible candidates
// to rank underperforming particles instead.
type worstItem struct {
	idx  int
	cost float64
}

func (w worstItem) Less(than llrb.Item) bool {
	return w.cost < than.(worstItem).cost
}

// reseedWorst ranks particles by cost via an llrb tree and overwrites
// the ReseedCount worst positions (and their velocities) with fresh
// random draws, mutating positions in place to match.
func (p *PSO[O, P, F]) reseedWorst(particles []state.Particle[P, F], positions []P) {
	tree := llrb.New()
	for i, particle := range particles {
		tree.InsertNoReplace(worstItem{idx: i, cost: float64(particle.Cost)})
	}
	for n := 0; n < p.ReseedCount && tree.Len() > 0; n++ {
		worst := tree.DeleteMax().(worstItem)
		fresh := p.template.Random(p.rng, p.Low, p.High)
		particles[worst.idx].Position = fresh
		particles[worst.idx].Velocity = p.template.Random(p.rng, -(p.High-p.Low), p.High-p.Low)
		positions[worst.idx] = fresh
	}
}

// countingSource wraps a rand.Source64 and counts every draw made
// against it, regardless of which *rand.Rand method triggered it
// (Float64, Int63, Random's per-dimension draws, ...). Replaying exactly
// that many draws against a freshly reseeded source reproduces the
// identical internal state, since a Source's state transition depends
// only on the number of prior draws, not on how their results were used.
type countingSource struct {
	inner rand.Source64
	count uint64
}

func newCountingSource(seed int64) *countingSource {
	return &countingSource{inner: rand.NewSource(seed).(rand.Source64)}
}

func (c *countingSource) Int63() int64 {
	c.count++
	return c.inner.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.count++
	return c.inner.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.inner.Seed(seed)
	c.count = 0
}

// psoGob mirrors PSO's exported, gob-safe configuration plus the
// (Seed, draw count) pair GobDecode needs to rebuild an equivalent RNG.
type psoGob[P any, F optimum.Float] struct {
	NumParticles int
	Low, High    F
	Cognition    F
	Social       F
	Inertia      F
	Seed         int64
	DrawCount    uint64
	StallLimit   uint64
	ReseedCount  int
	Template     P
	HasTemplate  bool
}

// GobEncode lets filecheckpoint persist a PSO without trying (and
// failing) to serialize the live *rand.Rand directly.
func (p *PSO[O, P, F]) GobEncode() ([]byte, error) {
	var drawCount uint64
	if p.src != nil {
		drawCount = p.src.count
	}

	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(psoGob[P, F]{
		NumParticles: p.NumParticles,
		Low:          p.Low,
		High:         p.High,
		Cognition:    p.Cognition,
		Social:       p.Social,
		Inertia:      p.Inertia,
		Seed:         p.Seed,
		DrawCount:    drawCount,
		StallLimit:   p.StallLimit,
		ReseedCount:  p.ReseedCount,
		Template:     p.template,
		HasTemplate:  p.hasTemplate,
	})
	return buf.Bytes(), err
}

// GobDecode restores a PSO's configuration and rebuilds its RNG by
// reseeding from Seed and replaying DrawCount draws, reproducing the
// exact source state it had at encode time.
func (p *PSO[O, P, F]) GobDecode(data []byte) error {
	var g psoGob[P, F]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}

	p.NumParticles = g.NumParticles
	p.Low, p.High = g.Low, g.High
	p.Cognition = g.Cognition
	p.Social = g.Social
	p.Inertia = g.Inertia
	p.StallLimit = g.StallLimit
	p.ReseedCount = g.ReseedCount
	p.template = g.Template
	p.hasTemplate = g.HasTemplate

	p.Seed = g.Seed
	p.src = newCountingSource(g.Seed)
	for i := uint64(0); i < g.DrawCount; i++ {
		p.src.Int63()
	}
	p.rng = rand.New(p.src)
	return nil
}
