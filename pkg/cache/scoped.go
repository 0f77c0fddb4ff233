package cache

// ScopedKeyer wraps a Keyer with a prefix so several boxgrid deployments
// can share one cache backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DecodeKey generates a prefixed decode key.
func (k *ScopedKeyer) DecodeKey(gridHash string) string {
	return k.prefix + k.inner.DecodeKey(gridHash)
}

// EncodeKey generates a prefixed encode key.
func (k *ScopedKeyer) EncodeKey(setHash string, opts EncodeKeyOpts) string {
	return k.prefix + k.inner.EncodeKey(setHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
