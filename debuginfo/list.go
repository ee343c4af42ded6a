package debuginfo

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/collision"
	"github.com/arloliu/mvpuobj/internal/logging"
	"github.com/arloliu/mvpuobj/object"
	"github.com/arloliu/mvpuobj/section"
)

// Entry is the debug record of one compilation unit.
type Entry struct {
	Container *object.Container
	// SectionAddrs maps a section name to the base address it was linked at.
	// It is recorded after linking and is not part of the container image.
	SectionAddrs map[string]uint32
}

func newEntry(c *object.Container) *Entry {
	return &Entry{Container: c, SectionAddrs: make(map[string]uint32)}
}

// Rename re-keys the entry stored under Old to New.
type Rename struct {
	Old section.DebugID
	New section.DebugID
}

// List maps debug ids to debug records. The zero value is not usable; create
// lists with New.
type List struct {
	entries map[section.DebugID]*Entry
}

// New creates an empty list.
func New() *List {
	return &List{entries: make(map[section.DebugID]*Entry)}
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Empty reports whether the list has no entries.
func (l *List) Empty() bool { return len(l.entries) == 0 }

// Clear removes every entry.
func (l *List) Clear() { clear(l.entries) }

// Add stores c under id, replacing any previous entry and its section
// addresses.
//
// Returns:
//   - *object.Container: The stored container, for further in-place changes
//   - error: ErrNilContainer when c is nil; the list is left unchanged
func (l *List) Add(id section.DebugID, c *object.Container) (*object.Container, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrNilContainer, id)
	}
	e := newEntry(c)
	l.entries[id] = e

	return e.Container, nil
}

// Find returns the container stored under id.
//
// Returns:
//   - *object.Container: The stored container, not a copy
//   - error: ErrIDNotFound when id is absent
func (l *List) Find(id section.DebugID) (*object.Container, error) {
	e, err := l.Entry(id)
	if err != nil {
		return nil, err
	}

	return e.Container, nil
}

// Entry returns the record stored under id.
func (l *List) Entry(id section.DebugID) (*Entry, error) {
	e, ok := l.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrIDNotFound, id)
	}

	return e, nil
}

// SectionAddr returns the base address recorded for section sec of the entry
// stored under id.
//
// Returns:
//   - uint32: Base address
//   - error: ErrIDNotFound when id is absent, ErrSectionNotFound when no address
//     was recorded for sec
func (l *List) SectionAddr(id section.DebugID, sec string) (uint32, error) {
	e, err := l.Entry(id)
	if err != nil {
		return 0, err
	}

	addr, ok := e.SectionAddrs[sec]
	if !ok {
		return 0, fmt.Errorf("%w: %s of %s", errs.ErrSectionNotFound, sec, id)
	}

	return addr, nil
}

// SetSectionAddr records the base address of section sec for the entry stored
// under id. The section does not have to exist in the container.
func (l *List) SetSectionAddr(id section.DebugID, sec string, addr uint32) error {
	e, err := l.Entry(id)
	if err != nil {
		return err
	}
	e.SectionAddrs[sec] = addr

	return nil
}

// IDs returns every id in ascending order.
func (l *List) IDs() []section.DebugID {
	return slices.SortedFunc(maps.Keys(l.entries), section.DebugID.Compare)
}

// All iterates over the entries in ascending id order.
func (l *List) All() iter.Seq2[section.DebugID, *Entry] {
	return func(yield func(section.DebugID, *Entry) bool) {
		for _, id := range l.IDs() {
			if !yield(id, l.entries[id]) {
				return
			}
		}
	}
}

// Merge moves every entry of other into l. On success other is left empty.
//
// No entry is moved when any id of other is already present in l; the error
// lists the colliding ids and both lists are unchanged.
//
// Returns:
//   - error: ErrDuplicateID on a key collision
func (l *List) Merge(other *List) error {
	if other == nil || other == l || other.Empty() {
		return nil
	}

	tracker := collision.NewTracker[section.DebugID](len(l.entries) + len(other.entries))
	for id := range l.entries {
		tracker.Track(id)
	}
	if !tracker.TrackAll(other.IDs()) {
		logging.Logger().Debug("rejected merge",
			zap.Int("entries", len(other.entries)),
			zap.Int("collisions", len(tracker.Collisions())))

		return fmt.Errorf("%w: %v", errs.ErrDuplicateID, tracker.Collisions())
	}

	maps.Copy(l.entries, other.entries)
	moved := len(other.entries)
	other.Clear()

	logging.Logger().Debug("merged debug records", zap.Int("moved", moved), zap.Int("total", len(l.entries)))

	return nil
}

// Update re-keys entries in bulk. A rename whose old id is absent is skipped.
// Renames are applied together, so ids may be swapped or rotated.
//
// The whole batch is checked before any entry moves: the call fails and the
// list is unchanged when an old id is named twice, or when a new id would
// collide with another new id or with an entry that is not renamed. A renamed
// container that carries a debug id section gets its new id.
//
// Returns:
//   - error: ErrAmbiguousRename or ErrDuplicateID
func (l *List) Update(renames []Rename) error {
	seen := collision.NewTracker[section.DebugID](len(renames))
	for _, r := range renames {
		seen.Track(r.Old)
	}
	if seen.HasCollision() {
		return fmt.Errorf("%w: %v", errs.ErrAmbiguousRename, seen.Collisions())
	}

	applied := make([]Rename, 0, len(renames))
	for _, r := range renames {
		if _, ok := l.entries[r.Old]; ok {
			applied = append(applied, r)
		}
	}

	tracker := collision.NewTracker[section.DebugID](len(l.entries))
	for id := range l.entries {
		tracker.Track(id)
	}
	for _, r := range applied {
		tracker.Release(r.Old)
	}
	for _, r := range applied {
		tracker.Track(r.New)
	}
	if tracker.HasCollision() {
		logging.Logger().Debug("rejected update",
			zap.Int("renames", len(applied)),
			zap.Int("collisions", len(tracker.Collisions())))

		return fmt.Errorf("%w: %v", errs.ErrDuplicateID, tracker.Collisions())
	}

	moved := make([]*Entry, len(applied))
	for i, r := range applied {
		moved[i] = l.entries[r.Old]
		delete(l.entries, r.Old)
	}
	for i, r := range applied {
		e := moved[i]
		if e.Container.HasDebugID() {
			e.Container.SetDebugID(r.New)
		}
		l.entries[r.New] = e
	}

	logging.Logger().Debug("updated debug ids", zap.Int("renamed", len(applied)), zap.Int("skipped", len(renames)-len(applied)))

	return nil
}
