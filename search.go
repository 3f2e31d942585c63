package fulltext

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SEARCH: Direct and Indirect Lookups
// ═══════════════════════════════════════════════════════════════════════════════
// A query is normalized the same way indexed text is, then answered by one of
// two paths depending on its length.
//
// DIRECT PATH (len(query) ≤ IndexAmount):
// ---------------------------------------
// The query is itself a shingle of some level. One map lookup returns every
// document containing it, no verification needed.
//
//	IndexAmount = 3, query "imp" → levels[2]["imp"] → {0, 2}
//
// INDIRECT PATH (len(query) > IndexAmount):
// -----------------------------------------
// No level is long enough, so the query is cut at the deepest level and the
// posting sets of all pieces are intersected:
//
//	query "impl"  → "imp" ∩ "mpl" → candidates
//	query "sximp" → "sxi" has no entry → nothing can match
//
// Every piece occurring somewhere in a document does not mean the pieces
// occur in sequence ("mpl" + "imp" are both in "mplximp"), so each
// candidate is checked for the literal query before it is returned.
// ═══════════════════════════════════════════════════════════════════════════════

// Search returns the documents containing query, in the order they were
// added. Null, empty and composite queries match nothing.
func (idx *Index) Search(query Value) []Value {
	ids := idx.SearchIDs(query)
	if len(ids) == 0 {
		return nil
	}
	docs := make([]Value, 0, len(ids))
	for _, id := range ids {
		s, _ := idx.store.get(id)
		docs = append(docs, s.doc)
	}
	return docs
}

// SearchText searches for a plain string.
func (idx *Index) SearchText(query string) []Value {
	return idx.Search(String(query))
}

// SearchAny converts query with FromAny and searches for it.
func (idx *Index) SearchAny(query any) []Value {
	v, err := FromAny(query)
	if err != nil {
		return nil
	}
	return idx.Search(v)
}

// SearchIDs returns the slot ids of the documents containing query.
func (idx *Index) SearchIDs(query Value) []int {
	if !query.IsPrimitive() {
		return nil
	}
	text := idx.norm.Normalize(query)
	if text == "" {
		return nil
	}

	length := utf8.RuneCountInString(text)
	if length <= idx.levels.depth() {
		return idx.searchDirect(text, length)
	}
	return idx.searchIndirect(text)
}

// searchDirect looks the query up in the level matching its length.
func (idx *Index) searchDirect(text string, level int) []int {
	bm := idx.levels.lookup(level, text)
	if bm == nil || bm.IsEmpty() {
		idx.logger.Debug("direct search: no match", slog.String("query", text), slog.Int("level", level))
		return nil
	}
	idx.logger.Debug("direct search",
		slog.String("query", text),
		slog.Int("level", level),
		slog.Uint64("hits", bm.GetCardinality()))
	return toInts(bm.ToArray())
}

// searchIndirect intersects the deepest-level pieces of the query and
// verifies the surviving candidates.
func (idx *Index) searchIndirect(text string) []int {
	depth := idx.levels.depth()
	parts, err := Cut(text, depth, idx.config.OnlyPrefix)
	if err != nil || len(parts) == 0 {
		return nil
	}

	candidates := idx.allOf(depth, parts)
	if candidates == nil || candidates.IsEmpty() {
		idx.logger.Debug("indirect search: no candidates",
			slog.String("query", text),
			slog.Int("parts", len(parts)))
		return nil
	}

	var ids []int
	it := candidates.Iterator()
	for it.HasNext() {
		id := int(it.Next())
		if idx.verify(id, text) {
			ids = append(ids, id)
		}
	}

	idx.logger.Debug("indirect search",
		slog.String("query", text),
		slog.Int("parts", len(parts)),
		slog.Uint64("candidates", candidates.GetCardinality()),
		slog.Int("hits", len(ids)))
	return ids
}

// allOf returns the slot ids registered under every shingle of parts at
// level. It returns nil as soon as one shingle has no entry at all.
func (idx *Index) allOf(level int, parts []string) *roaring.Bitmap {
	bitmaps := make([]*roaring.Bitmap, 0, len(parts))
	for _, p := range parts {
		bm := idx.levels.lookup(level, p)
		if bm == nil || bm.IsEmpty() {
			return nil
		}
		bitmaps = append(bitmaps, bm)
	}

	// Smallest first keeps the running intersection small.
	sort.Slice(bitmaps, func(i, j int) bool {
		return bitmaps[i].GetCardinality() < bitmaps[j].GetCardinality()
	})

	result := bitmaps[0].Clone()
	for _, bm := range bitmaps[1:] {
		result.And(bm)
		if result.IsEmpty() {
			break
		}
	}
	return result
}

// verify reports whether the document in slot id really contains text.
func (idx *Index) verify(id int, text string) bool {
	s, ok := idx.store.get(id)
	if !ok {
		return false
	}
	if s.doc.IsPrimitive() {
		return strings.Contains(idx.norm.Normalize(s.doc), text)
	}
	return containsText(s.doc, text, idx.norm, s.filter)
}
