package fulltext

// slot is one position of the document store.
type slot struct {
	occupied bool
	doc      Value
	filter   Filter // filter the document was indexed with
}

// docStore is a dense arena of documents addressed by slot id.
//
// Ids come from a monotonic pointer and are never handed out twice, so a
// stale id can never alias a newer document. Freed ids are still recorded in
// the free list for callers that want to observe churn.
type docStore struct {
	slots []slot
	next  int
	free  []int
	live  int
}

func newDocStore() *docStore {
	return &docStore{}
}

// alloc reserves the next slot id and stores doc in it.
func (s *docStore) alloc(doc Value, filter Filter) int {
	id := s.next
	s.next++
	s.slots = append(s.slots, slot{occupied: true, doc: doc, filter: filter})
	s.live++
	return id
}

// get returns the slot for id if it is occupied.
func (s *docStore) get(id int) (slot, bool) {
	if id < 0 || id >= len(s.slots) || !s.slots[id].occupied {
		return slot{}, false
	}
	return s.slots[id], true
}

// release clears an occupied slot and records it as free.
func (s *docStore) release(id int) {
	s.slots[id] = slot{}
	s.free = append(s.free, id)
	s.live--
}

// freeSlots returns a copy of the free list in release order.
func (s *docStore) freeSlots() []int {
	return append([]int(nil), s.free...)
}
