package vc

// RecordKind distinguishes the three mutations a VCList can log.
type RecordKind int

const (
	RecAdd RecordKind = iota
	RecRemove
	RecProcessed
)

// record is one logged mutation: list identifies which VCList it happened
// on, vc is the value added/removed/marked-processed, and idx is the
// entry's position in the list at the moment of the mutation. Because
// rollback undoes records in strict reverse order, each idx is valid
// again by the time its record is undone, making rollback restore the
// exact entry ordering.
type record struct {
	kind RecordKind
	list *VCList
	vc   Connection
	idx  int
}

// ChangeLog is an undo journal recording every VCList mutation made
// during a BuildIncremental call, so a caller can roll the VCSet back to
// its pre-build state. A nil *ChangeLog is valid everywhere a log is
// accepted: BuildStatic passes nil and no bookkeeping happens.
type ChangeLog struct {
	records []record
}

// NewChangeLog returns an empty log.
func NewChangeLog() *ChangeLog {
	return &ChangeLog{}
}

// Mark returns a position in the log that RollbackTo can later return
// to.
func (c *ChangeLog) Mark() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Rollback undoes every record back to the beginning of the log.
func (c *ChangeLog) Rollback() {
	c.RollbackTo(0)
}

// RollbackTo undoes every record after mark, in reverse order, so the
// affected VCLists return to exactly their state (ordered equality of
// every list) at the time Mark() was called.
func (c *ChangeLog) RollbackTo(mark int) {
	if c == nil {
		return
	}
	for i := len(c.records) - 1; i >= mark; i-- {
		r := c.records[i]
		switch r.kind {
		case RecAdd:
			r.list.removeAt(r.idx)
		case RecRemove:
			r.list.insertAt(r.idx, r.vc)
		case RecProcessed:
			r.list.entries[r.idx].Processed = false
		}
	}
	c.records = c.records[:mark]
}

func logAdd(log *ChangeLog, list *VCList, vc Connection, idx int) {
	if log == nil {
		return
	}
	log.records = append(log.records, record{kind: RecAdd, list: list, vc: vc, idx: idx})
}

func logRemove(log *ChangeLog, list *VCList, vc Connection, idx int) {
	if log == nil {
		return
	}
	log.records = append(log.records, record{kind: RecRemove, list: list, vc: vc, idx: idx})
}

func logProcessed(log *ChangeLog, list *VCList, vc Connection, idx int) {
	if log == nil {
		return
	}
	log.records = append(log.records, record{kind: RecProcessed, list: list, vc: vc, idx: idx})
}
