package taint

import "sort"

// Entry holds the taint known so far for one function: its tainted local
// variables, and the tainted parameter/return slots visible to callers.
type Entry struct {
	Locals map[string]struct{}
	Slots  map[string]struct{}
}

func newEntry() *Entry {
	return &Entry{Locals: map[string]struct{}{}, Slots: map[string]struct{}{}}
}

// HasLocal reports whether name is a known-tainted local of this function.
func (e *Entry) HasLocal(name string) bool {
	_, ok := e.Locals[name]
	return ok
}

// HasSlot reports whether slot is known tainted for this function.
func (e *Entry) HasSlot(slot string) bool {
	_, ok := e.Slots[slot]
	return ok
}

// SortedLocals returns the entry's tainted locals in sorted order, for
// stable reporting.
func (e *Entry) SortedLocals() []string {
	return sortedKeys(e.Locals)
}

// SortedSlots returns the entry's tainted slots in sorted order.
func (e *Entry) SortedSlots() []string {
	return sortedKeys(e.Slots)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Map is the function-name-keyed taint table the whole traversal builds
// up: for every function reachable on a call chain into the sink, the
// tainted locals and tainted parameter/return slots known about it.
type Map map[string]*Entry

// NewMap returns an empty taint table.
func NewMap() Map {
	return Map{}
}

// Entry returns the entry for function, creating an empty one if absent.
// Repeated calls for the same function accumulate rather than reset,
// since a function may sit on more than one call chain into the sink.
func (m Map) Entry(function string) *Entry {
	e, ok := m[function]
	if !ok {
		e = newEntry()
		m[function] = e
	}
	return e
}

// SlotsOf returns the slot set already known for function, or nil if the
// function has not been visited yet. Unlike Entry, this never creates a
// map entry — it's used to read a neighbor's taint without implying that
// neighbor was ever analyzed.
func (m Map) SlotsOf(function string) map[string]struct{} {
	if e, ok := m[function]; ok {
		return e.Slots
	}
	return nil
}

// Functions returns every function name with an entry, sorted.
func (m Map) Functions() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
