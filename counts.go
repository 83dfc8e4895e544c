package optimum

// CapabilityKind names one of the six problem capabilities so counters and
// KV snapshots can key on it uniformly.
type CapabilityKind string

const (
	CapOperator CapabilityKind = "operator"
	CapCost     CapabilityKind = "cost"
	CapGradient CapabilityKind = "gradient"
	CapJacobian CapabilityKind = "jacobian"
	CapHessian  CapabilityKind = "hessian"
	CapAnneal   CapabilityKind = "anneal"
)

// Counts is a snapshot of per-capability scalar-evaluation counters. A
// bulk call of length N increments its capability's counter by N.
type Counts struct {
	m map[CapabilityKind]uint64
}

// NewCounts returns a zeroed Counts snapshot.
func NewCounts() Counts {
	return Counts{m: make(map[CapabilityKind]uint64, 6)}
}

// Get returns the counter for kind, or 0 if never incremented.
func (c Counts) Get(kind CapabilityKind) uint64 {
	if c.m == nil {
		return 0
	}
	return c.m[kind]
}

// With returns a copy of c with kind's counter set to value.
func (c Counts) With(kind CapabilityKind, value uint64) Counts {
	out := NewCounts()
	for k, v := range c.m {
		out.m[k] = v
	}
	out.m[kind] = value
	return out
}

// All returns a defensive copy of the underlying map.
func (c Counts) All() map[CapabilityKind]uint64 {
	out := make(map[CapabilityKind]uint64, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}
