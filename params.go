package govte

import (
	"fmt"
	"math"
	"strings"
)

// MaxParams is the maximum number of parameters a single CSI/DCS sequence
// can carry (spec.md §3/§4.5's "ordered sequence of signed integers",
// capped). No subparameter (colon) grouping is modeled: the classical
// Williams diagram treats ':' inside CSI as invalid and routes it to
// CsiIgnore (see tables.go), so every slot here is a top-level parameter.
const MaxParams = 16

// Params is P: the ordered, saturating parameter buffer built up by
// ActionParam and handed to CsiDispatch/Hook.
type Params struct {
	values [MaxParams]int64
	len    int
}

// NewParams creates an empty Params.
func NewParams() *Params {
	return &Params{}
}

// Len returns the number of committed parameter slots.
func (p *Params) Len() int {
	return p.len
}

// IsEmpty reports whether no parameter slot has been started yet.
func (p *Params) IsEmpty() bool {
	return p.len == 0
}

// IsFull reports whether the buffer has reached MaxParams.
func (p *Params) IsFull() bool {
	return p.len >= MaxParams
}

// Clear resets the buffer for reuse (fired by ActionClear on state entry).
func (p *Params) Clear() {
	p.len = 0
	for i := range p.values {
		p.values[i] = 0
	}
}

// separator commits a fresh zero-valued slot, as ';' always does in the
// lazy-slot model: a ';' never "finalizes" an accumulator, it just opens the
// next one. This, together with digit, reproduces spec.md §8 scenario 3
// ("4;m" -> params [4, 0]) without any extra push step at dispatch time.
// It reports false when the buffer was already full, so the caller can
// raise the parser's overflow (ignoring) flag per spec.md §3.
func (p *Params) separator() bool {
	if p.IsFull() {
		return false
	}
	p.values[p.len] = 0
	p.len++
	return true
}

// digit folds one decimal digit into the current slot, opening slot 0 first
// if nothing has been started yet. Arithmetic saturates at math.MaxInt64
// rather than overflowing, matching spec.md §3's "signed integers" with no
// stated overflow behavior beyond "does not panic or wrap". It reports false
// only in the (unreachable in practice) case where no slot is open and the
// buffer is already full, mirroring separator's overflow signal.
func (p *Params) digit(d int64) bool {
	if p.len == 0 {
		if p.IsFull() {
			return false
		}
		p.len = 1
	}
	i := p.len - 1
	p.values[i] = satAdd(satMul(p.values[i], 10), d)
	return true
}

func satMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

func satAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Iter returns the committed parameters in order.
func (p *Params) Iter() []int64 {
	if p.len == 0 {
		return nil
	}
	out := make([]int64, p.len)
	copy(out, p.values[:p.len])
	return out
}

// String returns a debug representation of the parameters.
func (p *Params) String() string {
	if p.len == 0 {
		return "Params{}"
	}
	parts := make([]string, p.len)
	for i := 0; i < p.len; i++ {
		parts[i] = fmt.Sprintf("%d", p.values[i])
	}
	return fmt.Sprintf("Params{%s}", strings.Join(parts, ";"))
}
