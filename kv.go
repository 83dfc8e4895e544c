package optimum

// ValueKind identifies the concrete type stored in a Value.
type ValueKind int

const (
	KindFloat ValueKind = iota
	KindInt
	KindUint
	KindBool
	KindString
)

// Value is a tagged scalar carried by a KV. Observers use the typed
// getters instead of a stringly-typed map so they can decide whether and
// how to render a value.
type Value struct {
	kind ValueKind
	f    float64
	i    int64
	u    uint64
	b    bool
	s    string
}

func FloatValue(v float64) Value  { return Value{kind: KindFloat, f: v} }
func IntValue(v int64) Value      { return Value{kind: KindInt, i: v} }
func UintValue(v uint64) Value    { return Value{kind: KindUint, u: v} }
func BoolValue(v bool) Value      { return Value{kind: KindBool, b: v} }
func StringValue(v string) Value  { return Value{kind: KindString, s: v} }

func (v Value) Kind() ValueKind { return v.kind }

// Float returns the wrapped value and true if v holds a Float.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Int returns the wrapped value and true if v holds an Int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Uint returns the wrapped value and true if v holds a Uint.
func (v Value) Uint() (uint64, bool) { return v.u, v.kind == KindUint }

// Bool returns the wrapped value and true if v holds a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String returns the wrapped value and true if v holds a String.
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }

// entry is a single named value, kept in insertion order.
type entry struct {
	key string
	val Value
}

// KV is an ordered set of named typed values reported by a Solver to
// Observers at init and on each iteration.
type KV struct {
	entries []entry
}

// NewKV builds an empty KV.
func NewKV() *KV { return &KV{} }

// With appends key/val and returns the receiver for chaining.
func (kv *KV) With(key string, val Value) *KV {
	if kv == nil {
		kv = NewKV()
	}
	kv.entries = append(kv.entries, entry{key: key, val: val})
	return kv
}

// Get returns the value stored under key and whether it was present.
func (kv *KV) Get(key string) (Value, bool) {
	if kv == nil {
		return Value{}, false
	}
	for _, e := range kv.entries {
		if e.key == key {
			return e.val, true
		}
	}
	return Value{}, false
}

// Keys returns the keys in insertion order.
func (kv *KV) Keys() []string {
	if kv == nil {
		return nil
	}
	keys := make([]string, len(kv.entries))
	for i, e := range kv.entries {
		keys[i] = e.key
	}
	return keys
}

// Merge returns a new KV containing kv's entries followed by other's.
func (kv *KV) Merge(other *KV) *KV {
	out := NewKV()
	if kv != nil {
		out.entries = append(out.entries, kv.entries...)
	}
	if other != nil {
		out.entries = append(out.entries, other.entries...)
	}
	return out
}
