// Package fulltext implements a lightweight in-memory full-text index.
//
// ═══════════════════════════════════════════════════════════════════════════════
// HOW IT WORKS
// ═══════════════════════════════════════════════════════════════════════════════
// Every primitive value of a document (strings, numbers, booleans, including
// those nested deep inside objects and arrays) is cut into shingles of every
// length from 1 to IndexAmount. Each shingle points back to the slot ids of
// the documents it came from.
//
// Example with IndexAmount = 3 and document 0 = "simpler":
//
//	level 1: "s" "i" "m" "p" "l" "e" "r"   → {0}
//	level 2: "si" "im" "mp" "pl" "le" "er" → {0}
//	level 3: "sim" "imp" "mpl" "ple" "ler" → {0}
//
// A query no longer than IndexAmount is a single map lookup. A longer query
// is cut at the deepest level, the posting sets are intersected and every
// surviving document is checked for the literal text.
//
// An Index is not safe for concurrent use; wrap it in a SyncIndex when
// several goroutines share it.
// ═══════════════════════════════════════════════════════════════════════════════
package fulltext

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("document not found")
	ErrUnsupported      = errors.New("unsupported operation")
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrIndexFull        = errors.New("no slot ids left")
)

// Index is a multi-level shingle index over a store of documents.
type Index struct {
	config Config
	norm   Normalizer
	store  *docStore
	levels *levelIndex
	logger *slog.Logger
}

// New creates an empty index. Without options it uses DefaultConfig.
func New(opts ...Option) (*Index, error) {
	idx := &Index{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	if err := idx.config.Validate(); err != nil {
		return nil, err
	}
	idx.reset()
	return idx, nil
}

func (idx *Index) reset() {
	idx.norm = Normalizer{IgnoreCase: idx.config.IgnoreCase}
	idx.store = newDocStore()
	idx.levels = newLevelIndex(idx.config.IndexAmount)
}

// Config returns the active configuration.
func (idx *Index) Config() Config { return idx.config }

// Configure merges opts into the configuration.
//
// Settings that change how text is indexed cannot be changed while documents
// are stored: existing entries would not match the new policy. Such a change
// fails with ErrUnsupported; Drop the index (or Remove every document) first.
func (idx *Index) Configure(opts Options) error {
	next := opts.apply(idx.config)
	if err := next.Validate(); err != nil {
		return err
	}
	if next == idx.config {
		return nil
	}
	if idx.store.live > 0 {
		return fmt.Errorf("%w: reconfiguring an index holding %d documents", ErrUnsupported, idx.store.live)
	}

	idx.config = next
	idx.norm = Normalizer{IgnoreCase: next.IgnoreCase}
	if idx.levels.depth() != next.IndexAmount {
		idx.levels = newLevelIndex(next.IndexAmount)
	}
	idx.logger.Debug("index reconfigured",
		slog.Int("index_amount", next.IndexAmount),
		slog.Bool("ignore_case", next.IgnoreCase),
		slog.Bool("only_prefix", next.OnlyPrefix))
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// INDEXING
// ═══════════════════════════════════════════════════════════════════════════════

// Add stores doc and indexes every primitive leaf it contains. Fields for
// which filter returns false are neither indexed nor considered when
// verifying search hits. The returned slot id identifies the document for
// Remove and Get.
//
// All shingles are computed before anything is stored, so a failing Add
// leaves the index untouched.
func (idx *Index) Add(doc Value, filter Filter) (int, error) {
	if !doc.IsPrimitive() && !doc.IsComposite() {
		return 0, fmt.Errorf("%w: cannot index a %s document", ErrInvalidArgument, doc.Kind())
	}
	if uint64(idx.store.next) > math.MaxUint32 {
		return 0, ErrIndexFull
	}

	shingles, err := idx.shingles(doc, filter)
	if err != nil {
		return 0, err
	}

	id := idx.store.alloc(doc, filter)
	idx.levels.register(shingles, uint32(id))

	idx.logger.Debug("indexed document",
		slog.Int("slot", id),
		slog.String("kind", doc.Kind().String()),
		slog.Int("levels", len(shingles)))
	return id, nil
}

// AddAny converts x with FromAny and adds it.
func (idx *Index) AddAny(x any, filter Filter) (int, error) {
	doc, err := FromAny(x)
	if err != nil {
		return 0, err
	}
	return idx.Add(doc, filter)
}

// Remove deletes the document in slot id and every index entry pointing to
// it. Entries left without documents are dropped. Removing a slot that holds
// no document fails with ErrNotFound.
func (idx *Index) Remove(id int) error {
	s, ok := idx.store.get(id)
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrNotFound, id)
	}

	shingles, err := idx.shingles(s.doc, s.filter)
	if err != nil {
		return err
	}

	idx.levels.unregister(shingles, uint32(id))
	idx.store.release(id)

	idx.logger.Debug("removed document", slog.Int("slot", id))
	return nil
}

// Drop removes every document and rebuilds empty level maps.
func (idx *Index) Drop() {
	idx.reset()
	idx.logger.Debug("index dropped", slog.Int("index_amount", idx.config.IndexAmount))
}

// shingles collects the shingles of every leaf of doc, merged per level.
// Result index i holds the unique shingles of level i+1.
func (idx *Index) shingles(doc Value, filter Filter) ([][]string, error) {
	var (
		merged [][]string
		seen   []map[string]struct{}
		cutErr error
	)

	Walk(doc, VisitorFunc(func(_ string, leaf Value) bool {
		levels, err := shingleSet(idx.norm.Normalize(leaf), idx.config.IndexAmount, idx.config.OnlyPrefix)
		if err != nil {
			cutErr = err
			return false
		}
		for i, parts := range levels {
			if i == len(merged) {
				merged = append(merged, nil)
				seen = append(seen, make(map[string]struct{}, len(parts)))
			}
			for _, p := range parts {
				if _, dup := seen[i][p]; dup {
					continue
				}
				seen[i][p] = struct{}{}
				merged[i] = append(merged[i], p)
			}
		}
		return true
	}), filter)

	if cutErr != nil {
		return nil, cutErr
	}
	return merged, nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// INSPECTION
// ═══════════════════════════════════════════════════════════════════════════════

// Get returns the document stored in slot id.
func (idx *Index) Get(id int) (Value, bool) {
	s, ok := idx.store.get(id)
	return s.doc, ok
}

// Len returns the number of stored documents.
func (idx *Index) Len() int { return idx.store.live }

// FreeSlots returns the ids released by Remove, in release order.
func (idx *Index) FreeSlots() []int { return idx.store.freeSlots() }

// Postings returns the slot ids registered under shingle at level, in the
// order they were added.
func (idx *Index) Postings(level int, shingle string) []int {
	bm := idx.levels.lookup(level, shingle)
	if bm == nil {
		return nil
	}
	return toInts(bm.ToArray())
}

// Stats summarizes the contents of an index.
type Stats struct {
	Documents int   // Stored documents
	Allocated int   // Slot ids handed out so far
	FreeSlots int   // Slot ids released by Remove
	Terms     []int // Distinct shingles per level, index 0 is level 1
}

// Stats returns counters describing the index.
func (idx *Index) Stats() Stats {
	terms := make([]int, idx.levels.depth())
	for i := range terms {
		terms[i] = idx.levels.terms(i + 1)
	}
	return Stats{
		Documents: idx.store.live,
		Allocated: idx.store.next,
		FreeSlots: len(idx.store.free),
		Terms:     terms,
	}
}

func toInts(ids []uint32) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
