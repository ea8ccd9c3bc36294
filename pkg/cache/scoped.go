package cache

// ScopedKeyer prefixes every key of an inner Keyer. The render service uses
// "api:" so its artifacts never collide with CLI renders in a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(imageHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(imageHash, opts)
}

func (k *ScopedKeyer) RemoteKey(baseURL, imageHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.RemoteKey(baseURL, imageHash, opts)
}
