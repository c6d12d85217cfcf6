package transfer

// scalarBackend is the reference implementation: a plain sequential loop.
// It defines the observable behaviour the other backends are checked
// against.
type scalarBackend struct{}

func newScalarBackend() *scalarBackend {
	return &scalarBackend{}
}

func (b *scalarBackend) Name() string { return BackendScalar }

// Available always reports true; the scalar path is the fallback of last
// resort.
func (b *scalarBackend) Available() bool { return true }

func (b *scalarBackend) MapPixels(dst, src []uint32, m Mapper) {
	for i, c := range src {
		dst[i] = m.Map(c)
	}
}
