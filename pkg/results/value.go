// Package results implements the shot-result aggregation engine: per-worker
// containers that accumulate extras, pershot snapshots, and running-average
// snapshots, and merge into a single aggregate before serialization.
package results

import (
	"encoding/json"
	"fmt"
)

// Value constrains the types a Container can store. Add and Mul are
// element-wise; Scale multiplies by a scalar factor. All three must return
// a new value and leave both operands unchanged, which is what keeps
// non-destructive merges safe.
type Value[T any] interface {
	Add(T) T
	Mul(T) T
	Scale(float64) T
}

// Scalar is a single float64 result value.
type Scalar float64

func (s Scalar) Add(o Scalar) Scalar    { return s + o }
func (s Scalar) Mul(o Scalar) Scalar    { return s * o }
func (s Scalar) Scale(f float64) Scalar { return Scalar(float64(s) * f) }

// Complex is a complex result value. It serializes as a [real, imag] pair.
type Complex complex128

func (c Complex) Add(o Complex) Complex { return c + o }
func (c Complex) Mul(o Complex) Complex { return c * o }
func (c Complex) Scale(f float64) Complex {
	return Complex(complex128(c) * complex(f, 0))
}

func (c Complex) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{real(complex128(c)), imag(complex128(c))})
}

func (c *Complex) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal complex value: %w", err)
	}
	*c = Complex(complex(pair[0], pair[1]))
	return nil
}

// Vector is a fixed-length float64 result value. Element-wise operations on
// vectors of different lengths treat the missing tail of the shorter operand
// as zero.
type Vector []float64

func (v Vector) Add(o Vector) Vector {
	out := make(Vector, maxLen(len(v), len(o)))
	copy(out, v)
	for i, x := range o {
		out[i] += x
	}
	return out
}

func (v Vector) Mul(o Vector) Vector {
	out := make(Vector, maxLen(len(v), len(o)))
	for i := range out {
		if i < len(v) && i < len(o) {
			out[i] = v[i] * o[i]
		}
	}
	return out
}

func (v Vector) Scale(f float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x * f
	}
	return out
}

// Distribution is a sparse string-keyed result value, e.g. outcome
// frequencies. Add unions keys; Mul multiplies matching keys (a key missing
// from either operand contributes zero).
type Distribution map[string]float64

func (d Distribution) Add(o Distribution) Distribution {
	out := make(Distribution, len(d)+len(o))
	for k, x := range d {
		out[k] = x
	}
	for k, x := range o {
		out[k] += x
	}
	return out
}

func (d Distribution) Mul(o Distribution) Distribution {
	out := make(Distribution)
	for k, x := range d {
		if y, ok := o[k]; ok {
			out[k] = x * y
		}
	}
	return out
}

func (d Distribution) Scale(f float64) Distribution {
	out := make(Distribution, len(d))
	for k, x := range d {
		out[k] = x * f
	}
	return out
}

func maxLen(a, b int) int {
	if a > b {
		return a
	}
	return b
}
