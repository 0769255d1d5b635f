package prefetch

import "golang.org/x/sys/cpu"

// the PREFETCHh family ships with SSE, which every amd64 CPU has,
// but we still respect what the feature detection reports.
var supported = cpu.X86.HasSSE2

func read(addr uintptr, l Locality) {
	switch l {
	case NoLocality:
		prefetchNTA(addr)
	case LowLocality:
		prefetchT2(addr)
	case ModerateLocality:
		prefetchT1(addr)
	default:
		prefetchT0(addr)
	}
}

func prefetchT0(addr uintptr)
func prefetchT1(addr uintptr)
func prefetchT2(addr uintptr)
func prefetchNTA(addr uintptr)
