package fulltext

import (
	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// MULTI-LEVEL SHINGLE INDEX
// ═══════════════════════════════════════════════════════════════════════════════
// One map per level. Level L maps every shingle of exactly L characters to
// the set of slot ids whose text produced it:
//
//	levels[0]  "s"   → {0, 4}
//	           "i"   → {0, 2, 4}
//	levels[2]  "sim" → {0}
//	           "imp" → {0, 2}
//
// Posting sets are roaring bitmaps: an id can appear at most once, and since
// ids only ever grow, ascending order is the order ids were registered in.
// ═══════════════════════════════════════════════════════════════════════════════

type levelIndex struct {
	levels []map[string]*roaring.Bitmap
}

func newLevelIndex(amount int) *levelIndex {
	li := &levelIndex{levels: make([]map[string]*roaring.Bitmap, amount)}
	for i := range li.levels {
		li.levels[i] = make(map[string]*roaring.Bitmap)
	}
	return li
}

// depth is the number of levels, i.e. the longest indexed shingle.
func (li *levelIndex) depth() int { return len(li.levels) }

// register adds id under every shingle of shingles[i] at level i+1.
func (li *levelIndex) register(shingles [][]string, id uint32) {
	for i, parts := range shingles {
		m := li.levels[i]
		for _, p := range parts {
			bm, ok := m[p]
			if !ok {
				bm = roaring.NewBitmap()
				m[p] = bm
			}
			bm.Add(id)
		}
	}
}

// unregister removes id from every shingle of shingles[i] at level i+1 and
// drops entries left empty.
func (li *levelIndex) unregister(shingles [][]string, id uint32) {
	for i, parts := range shingles {
		m := li.levels[i]
		for _, p := range parts {
			bm, ok := m[p]
			if !ok {
				continue
			}
			bm.Remove(id)
			if bm.IsEmpty() {
				delete(m, p)
			}
		}
	}
}

// lookup returns the posting set of shingle at level, or nil.
// Callers must not modify the returned bitmap.
func (li *levelIndex) lookup(level int, shingle string) *roaring.Bitmap {
	if level < 1 || level > len(li.levels) {
		return nil
	}
	return li.levels[level-1][shingle]
}

// terms returns the number of distinct shingles stored at level.
func (li *levelIndex) terms(level int) int {
	if level < 1 || level > len(li.levels) {
		return 0
	}
	return len(li.levels[level-1])
}
