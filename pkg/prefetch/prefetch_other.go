//go:build !amd64

package prefetch

const supported = false

func read(uintptr, Locality) {}
