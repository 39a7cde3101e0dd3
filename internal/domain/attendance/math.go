package attendance

import (
	"fmt"

	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
)

// DefaultThresholdPercent is the minimum attendance required by default.
const DefaultThresholdPercent = 75

// Status is the coarse health of a record against the threshold.
type Status string

const (
	// StatusOK - percentage is at or above the threshold.
	StatusOK Status = "ok"
	// StatusNeedsAttention - percentage is below the threshold.
	StatusNeedsAttention Status = "needs_attention"
)

// ProjectionKind tells which guidance applies to a record.
type ProjectionKind string

const (
	// MustAttend - Count more consecutive attended classes are needed.
	MustAttend ProjectionKind = "must_attend"
	// CanSkip - Count more classes may be missed while staying at the threshold.
	CanSkip ProjectionKind = "can_skip"
)

// Projection is the "must attend N" / "can skip N" guidance for a record.
type Projection struct {
	Kind  ProjectionKind
	Count int
}

// String renders the guidance the way it is shown to the user.
func (p Projection) String() string {
	if p.Kind == MustAttend {
		return fmt.Sprintf("Must attend %d Classes", p.Count)
	}
	return fmt.Sprintf("Can Skip %d Classes", p.Count)
}

// Policy holds the attendance threshold. All arithmetic is done on integers
// so that results at exact threshold boundaries are deterministic.
type Policy struct {
	ThresholdPercent int
}

// DefaultPolicy returns the 75% policy.
func DefaultPolicy() Policy {
	return Policy{ThresholdPercent: DefaultThresholdPercent}
}

// NewPolicy creates a policy for a threshold in 1..99 percent.
func NewPolicy(thresholdPercent int) (Policy, error) {
	p := Policy{ThresholdPercent: thresholdPercent}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate checks that the threshold leaves room for both projections.
func (p Policy) Validate() error {
	if p.ThresholdPercent < 1 || p.ThresholdPercent > 99 {
		return shared.ErrInvalidThreshold
	}
	return nil
}

// Percentage returns attended/total as an integer percentage rounded half up,
// or 0 when no classes were held.
func Percentage(attended, total int) int {
	if total <= 0 || attended <= 0 {
		return 0
	}
	return (200*attended + total) / (2 * total)
}

// Percentage returns the rounded attendance percentage of r.
func (p Policy) Percentage(r Record) int {
	return Percentage(r.Attended, r.Total)
}

// NeedsAttention reports whether r is below the threshold.
func (p Policy) NeedsAttention(r Record) bool {
	return p.Percentage(r) < p.ThresholdPercent
}

// Status returns the coarse status of r.
func (p Policy) Status(r Record) Status {
	if p.NeedsAttention(r) {
		return StatusNeedsAttention
	}
	return StatusOK
}

// Projection computes the guidance for r.
//
// Below the threshold T it is the least k with (a+k)/(t+k) >= T/100, that is
// ceil((T*t - 100*a) / (100-T)). At or above it is the largest k with
// a/(t+k) >= T/100, that is floor((100*a - T*t) / T). Both are clamped at 0:
// rounding can put a record at T% while its exact ratio is slightly below.
func (p Policy) Projection(r Record) Projection {
	t := p.ThresholdPercent
	if p.NeedsAttention(r) {
		deficit := t*r.Total - 100*r.Attended
		return Projection{Kind: MustAttend, Count: ceilDiv(deficit, 100-t)}
	}
	surplus := 100*r.Attended - t*r.Total
	return Projection{Kind: CanSkip, Count: floorDiv(surplus, t)}
}

// ceilDiv divides non-negative n by positive d rounding up; n <= 0 yields 0.
func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// floorDiv divides non-negative n by positive d rounding down; n <= 0 yields 0.
func floorDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return n / d
}

// ══════════════════════════════════════════════════════════════════════════════
// DEFAULT-POLICY HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// PercentageOf returns the rounded attendance percentage of r.
func PercentageOf(r Record) int {
	return DefaultPolicy().Percentage(r)
}

// NeedsAttention reports whether r is below 75%.
func NeedsAttention(r Record) bool {
	return DefaultPolicy().NeedsAttention(r)
}

// ProjectionFor computes the guidance for r under the 75% policy.
func ProjectionFor(r Record) Projection {
	return DefaultPolicy().Projection(r)
}
