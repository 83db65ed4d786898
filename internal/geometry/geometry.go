// Package geometry defines the boundary to the external geometry provider.
// The engine only selects among cached per-tier templates; it never builds
// or mutates mesh data.
package geometry

// LodTier is the fixed set of geometry complexity levels, ordered from
// finest to coarsest.
type LodTier uint8

const (
	TierHigh LodTier = iota
	TierMedium
	TierLow
)

func (t LodTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	}
	return "unknown"
}

// TierForDistance picks the tier for a chunk whose footprint center is at
// the given distance from the observer.
func TierForDistance(dist, highDetailDistance, mediumDetailDistance float64) LodTier {
	switch {
	case dist < highDetailDistance:
		return TierHigh
	case dist < mediumDetailDistance:
		return TierMedium
	default:
		return TierLow
	}
}

// Handle is an opaque reference to a provider-owned geometry template.
// Templates are shared read-only between chunks.
type Handle any

// Provider supplies one cached template per tier. A provider may fail
// transiently; the engine skips the chunk for one frame and retries.
type Provider interface {
	TemplateFor(tier LodTier) (Handle, error)
}

// Assignment tracks which tier template a chunk record currently holds.
// Pooled records keep their last assignment so reuse at the same tier
// avoids a geometry swap; reassignment is an explicit transition.
type Assignment struct {
	assigned bool
	tier     LodTier
	handle   Handle
}

// Assign binds the record to a tier template.
func (a *Assignment) Assign(tier LodTier, handle Handle) {
	a.assigned = true
	a.tier = tier
	a.handle = handle
}

// Clear drops the assignment, e.g. when a record is disposed.
func (a *Assignment) Clear() {
	*a = Assignment{}
}

// Tier reports the currently assigned tier, if any.
func (a *Assignment) Tier() (LodTier, bool) {
	return a.tier, a.assigned
}

// Handle returns the assigned template, or nil when unassigned.
func (a *Assignment) Handle() Handle {
	if !a.assigned {
		return nil
	}
	return a.handle
}
