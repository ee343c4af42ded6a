package collision

// Tracker records a set of keys and detects duplicates while a batch of
// insertions or renames is being planned. Nothing is applied to the caller's
// data: the tracker only answers whether the planned key set stays unique.
type Tracker[K comparable] struct {
	keys       map[K]struct{}
	collisions []K // keys that were tracked twice, in detection order
}

// NewTracker creates a tracker sized for capacity keys.
func NewTracker[K comparable](capacity int) *Tracker[K] {
	return &Tracker[K]{
		keys: make(map[K]struct{}, capacity),
	}
}

// Track adds key. It returns false and records a collision if key is already
// tracked.
func (t *Tracker[K]) Track(key K) bool {
	if _, exists := t.keys[key]; exists {
		t.collisions = append(t.collisions, key)
		return false
	}
	t.keys[key] = struct{}{}

	return true
}

// TrackAll tracks every key and reports whether all were new.
func (t *Tracker[K]) TrackAll(keys []K) bool {
	ok := true
	for _, k := range keys {
		if !t.Track(k) {
			ok = false
		}
	}

	return ok
}

// Release removes key, e.g. because a planned rename vacates it.
func (t *Tracker[K]) Release(key K) {
	delete(t.keys, key)
}

// HasCollision reports whether any Track call has failed.
func (t *Tracker[K]) HasCollision() bool {
	return len(t.collisions) > 0
}

// Collisions returns the duplicated keys in detection order.
func (t *Tracker[K]) Collisions() []K {
	return t.collisions
}
