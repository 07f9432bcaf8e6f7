package vc

import "github.com/araxis-games/hexvc/internal/bitset"

// DefaultSoftLimit is the VCList soft-limit prefix length used when a
// builder does not override it.
const DefaultSoftLimit = 10

// AddResult reports what Add did with an incoming Connection.
type AddResult int

const (
	AddedInsideSoft AddResult = iota
	AddedOutsideSoft
	Failed
)

// VCList is an ordered collection of Connections sharing endpoints
// (End1, End2) and Kind: ascending by carrier size,
// stable on ties, with a dominance invariant (no entry's carrier is a
// superset of another's) and precomputed hard/soft intersections.
type VCList struct {
	End1, End2 int
	Kind       Type
	softLimit  int

	entries []Connection

	hardIntersection bitset.Bitset
	softIntersection bitset.Bitset
}

// NewVCList constructs an empty list for the given canonical endpoint
// pair and type.
func NewVCList(end1, end2 int, kind Type) *VCList {
	end1, end2 = orderedPair(end1, end2)
	l := &VCList{End1: end1, End2: end2, Kind: kind, softLimit: DefaultSoftLimit}
	l.recompute()
	return l
}

// Len returns the number of entries.
func (l *VCList) Len() int { return len(l.entries) }

// Entries returns the list's entries in order. Callers must not mutate
// the returned slice.
func (l *VCList) Entries() []Connection { return l.entries }

// SoftPrefix returns the actively-propagated prefix of the list.
func (l *VCList) SoftPrefix() []Connection {
	n := l.softLimit
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[:n]
}

// HardIntersection is the AND of every entry's carrier (universe if
// empty).
func (l *VCList) HardIntersection() bitset.Bitset { return l.hardIntersection }

// SoftIntersection is the AND of the soft prefix's carriers (universe
// if empty).
func (l *VCList) SoftIntersection() bitset.Bitset { return l.softIntersection }

// Add inserts vc, enforcing the dominance invariant. log may be nil (no
// rollback bookkeeping, as during BuildStatic).
func (l *VCList) Add(log *ChangeLog, vc Connection) AddResult {
	vc = vc.normalizeEndpoints(l.End1, l.End2)
	vc.Kind = l.Kind

	for _, e := range l.entries {
		if e.Carrier.IsSubsetOf(vc.Carrier) {
			return Failed
		}
	}

	// Evict entries vc dominates, one at a time so each logged index is
	// valid at the moment of its removal (rollback re-inserts in reverse).
	for i := 0; i < len(l.entries); {
		if vc.Carrier.IsSubsetOf(l.entries[i].Carrier) {
			logRemove(log, l, l.entries[i], i)
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			continue
		}
		i++
	}

	idx := l.insertSorted(vc)
	logAdd(log, l, vc, idx)
	l.recompute()

	if idx < l.softLimit {
		return AddedInsideSoft
	}
	return AddedOutsideSoft
}

// insertSorted places vc in ascending-by-carrier-size order, stable on
// ties, without any dominance checking.
func (l *VCList) insertSorted(vc Connection) int {
	size := vc.Carrier.Count()
	idx := len(l.entries)
	for i, e := range l.entries {
		if e.Carrier.Count() > size {
			idx = i
			break
		}
	}
	l.insertAt(idx, vc)
	return idx
}

// insertAt splices vc in at idx without any ordering or dominance checks;
// used by insertSorted and by ChangeLog rollback, which must restore an
// undone Remove at its exact original position.
func (l *VCList) insertAt(idx int, vc Connection) {
	l.entries = append(l.entries, Connection{})
	copy(l.entries[idx+1:], l.entries[idx:])
	l.entries[idx] = vc
	l.recompute()
}

// Append adds every entry of other, in order.
func (l *VCList) Append(log *ChangeLog, other *VCList) {
	for _, e := range other.Entries() {
		l.Add(log, e)
	}
}

// RemoveAllContaining removes every entry whose carrier intersects mask,
// returning the removed entries for the caller to re-shrink as part of
// BuildIncremental's merge/shrink step.
func (l *VCList) RemoveAllContaining(log *ChangeLog, mask bitset.Bitset) []Connection {
	var removed []Connection
	for i := 0; i < len(l.entries); {
		if l.entries[i].Carrier.Intersects(mask) {
			removed = append(removed, l.entries[i])
			logRemove(log, l, l.entries[i], i)
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			continue
		}
		i++
	}
	l.recompute()
	return removed
}

// RemoveAll unconditionally removes every entry in the list (used when
// the list's endpoints themselves become invalid, e.g. one was captured
// by the opponent), returning the removed entries.
func (l *VCList) RemoveAll(log *ChangeLog) []Connection {
	removed := append([]Connection(nil), l.entries...)
	for _, e := range removed {
		// Each removal is logged as popping the head, which is exactly how
		// reverse-order rollback will rebuild the list front to back.
		logRemove(log, l, e, 0)
	}
	l.entries = l.entries[:0]
	l.recompute()
	return removed
}

// RemoveSuperSetsOf removes every entry whose carrier is a superset of
// (or equal to) carrier, returning them.
func (l *VCList) RemoveSuperSetsOf(log *ChangeLog, carrier bitset.Bitset) []Connection {
	var removed []Connection
	for i := 0; i < len(l.entries); {
		if carrier.IsSubsetOf(l.entries[i].Carrier) {
			removed = append(removed, l.entries[i])
			logRemove(log, l, l.entries[i], i)
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			continue
		}
		i++
	}
	l.recompute()
	return removed
}

// IsSupersetOfAny reports whether some entry's carrier is a subset of
// carrier — i.e. carrier already contains a proven/conditional
// connection, making a new one with that same-or-larger carrier
// redundant.
func (l *VCList) IsSupersetOfAny(carrier bitset.Bitset) bool {
	for _, e := range l.entries {
		if e.Carrier.IsSubsetOf(carrier) {
			return true
		}
	}
	return false
}

// FindInList locates vc by endpoints + carrier equality, returning its
// index.
func (l *VCList) FindInList(vc Connection) (int, bool) {
	vc = vc.normalizeEndpoints(l.End1, l.End2)
	for i, e := range l.entries {
		if e.Carrier.Equal(vc.Carrier) {
			return i, true
		}
	}
	return -1, false
}

// MarkProcessed sets the processed flag on the entry at idx.
func (l *VCList) MarkProcessed(log *ChangeLog, idx int) {
	if l.entries[idx].Processed {
		return
	}
	logProcessed(log, l, l.entries[idx], idx)
	l.entries[idx].Processed = true
}

// Union is the OR of every entry's carrier.
func (l *VCList) Union() bitset.Bitset {
	var u bitset.Bitset
	for _, e := range l.entries {
		u = u.Or(e.Carrier)
	}
	return u
}

// GreedyUnion unions carriers in list order, skipping any entry whose
// carrier does not shrink the running intersection any further.
func (l *VCList) GreedyUnion() bitset.Bitset {
	var union bitset.Bitset
	runningAnd := bitset.Universe()
	for _, e := range l.entries {
		next := runningAnd.And(e.Carrier)
		if next.Equal(runningAnd) {
			continue
		}
		runningAnd = next
		union = union.Or(e.Carrier)
	}
	return union
}

func (l *VCList) recompute() {
	if len(l.entries) == 0 {
		l.hardIntersection = bitset.Universe()
		l.softIntersection = bitset.Universe()
		return
	}
	hard := bitset.Universe()
	for _, e := range l.entries {
		hard = hard.And(e.Carrier)
	}
	l.hardIntersection = hard

	soft := bitset.Universe()
	for _, e := range l.SoftPrefix() {
		soft = soft.And(e.Carrier)
	}
	l.softIntersection = soft
}

// removeAt deletes the entry at idx without logging or dominance
// checks; used internally by ChangeLog rollback when undoing an Add.
func (l *VCList) removeAt(idx int) Connection {
	vc := l.entries[idx]
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	l.recompute()
	return vc
}
