package prefetch_test

import (
	"testing"
	"unsafe"

	"go.llib.dev/conslist/pkg/prefetch"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func TestRead(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("hinting a live address has no observable effect", func(t *testcase.T) {
		type node struct {
			V    int
			Next *node
		}
		n := &node{V: 42, Next: &node{V: 24}}

		for _, l := range []prefetch.Locality{
			prefetch.NoLocality,
			prefetch.LowLocality,
			prefetch.ModerateLocality,
			prefetch.HighLocality,
		} {
			assert.NotPanic(t, func() { prefetch.Read(unsafe.Pointer(n.Next), l) })
		}

		assert.Equal(t, 42, n.V)
		assert.Equal(t, 24, n.Next.V)
	})

	s.Test("nil address is ignored", func(t *testcase.T) {
		assert.NotPanic(t, func() { prefetch.Read(nil, prefetch.HighLocality) })
		assert.NotPanic(t, func() { prefetch.HighLocality.Prefetch(nil) })
	})
}

func TestLocality(t *testing.T) {
	assert.True(t, prefetch.HighLocality.Valid())
	assert.True(t, prefetch.NoLocality.Valid())
	assert.False(t, prefetch.Locality(-1).Valid())
	assert.False(t, prefetch.Locality(4).Valid())

	assert.Equal(t, "high", prefetch.HighLocality.String())
	assert.Equal(t, "none", prefetch.NoLocality.String())
	assert.Equal(t, "invalid", prefetch.Locality(7).String())
}
