// Package prefetch issues advisory memory prefetch hints.
//
// A hint asks the CPU to start loading the cache line behind an address
// before the program actually dereferences it.
// Hints never fault and never change program results,
// on platforms without a supported instruction they are no-ops.
package prefetch

import "unsafe"

// Locality tells the CPU how long the prefetched data is expected to stay useful.
// The values follow the usual 0-3 scale, where 3 means keep it in every cache level.
type Locality int

const (
	// NoLocality is a non-temporal hint, the data is used once.
	NoLocality Locality = iota
	LowLocality
	ModerateLocality
	HighLocality
)

// Supported reports whether Read results in a hardware instruction on the running platform.
func Supported() bool { return supported }

// Read issues a read prefetch hint for addr.
// A nil addr is ignored.
func Read(addr unsafe.Pointer, l Locality) {
	if addr == nil || !supported {
		return
	}
	read(uintptr(addr), l)
}

// Prefetch implements the advisory hint hook with the receiver's locality.
func (l Locality) Prefetch(addr unsafe.Pointer) { Read(addr, l) }

func (l Locality) String() string {
	switch l {
	case NoLocality:
		return "none"
	case LowLocality:
		return "low"
	case ModerateLocality:
		return "moderate"
	case HighLocality:
		return "high"
	default:
		return "invalid"
	}
}

// Valid reports whether l is one of the four known locality levels.
func (l Locality) Valid() bool {
	return NoLocality <= l && l <= HighLocality
}
