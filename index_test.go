package fulltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, opts ...Option) *Index {
	t.Helper()
	idx, err := New(opts...)
	require.NoError(t, err)
	return idx
}

func intp(n int) *int    { return &n }
func boolp(b bool) *bool { return &b }

// ═══════════════════════════════════════════════════════════════════════════════
// INDEX CREATION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestNew_Defaults(t *testing.T) {
	idx := newTestIndex(t)

	assert.Equal(t, DefaultConfig(), idx.Config())
	assert.Equal(t, 0, idx.Len())

	stats := idx.Stats()
	assert.Len(t, stats.Terms, 12)
	assert.Equal(t, 0, stats.Allocated)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(WithConfig(Config{IndexAmount: 0}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_WithOptions(t *testing.T) {
	idx := newTestIndex(t, WithOptions(Options{IndexAmount: intp(3), OnlyPrefix: boolp(true)}))

	cfg := idx.Config()
	assert.Equal(t, 3, cfg.IndexAmount)
	assert.True(t, cfg.IgnoreCase)
	assert.True(t, cfg.OnlyPrefix)
	assert.Len(t, idx.Stats().Terms, 3)
}

func TestIndexes_AreIndependent(t *testing.T) {
	a := newTestIndex(t)
	b := newTestIndex(t)

	_, err := a.Add(String("hello"), nil)
	require.NoError(t, err)

	assert.Len(t, a.SearchText("hello"), 1)
	assert.Empty(t, b.SearchText("hello"))
}

// ═══════════════════════════════════════════════════════════════════════════════
// ADD TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestAdd_AllocatesMonotonicSlots(t *testing.T) {
	idx := newTestIndex(t)

	for want := 0; want < 5; want++ {
		id, err := idx.Add(String("doc"), nil)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	require.NoError(t, idx.Remove(2))
	id, err := idx.Add(String("doc"), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, id, "freed slots are not reused")
	assert.Equal(t, []int{2}, idx.FreeSlots())
}

func TestAdd_RegistersEveryLevel(t *testing.T) {
	idx := newTestIndex(t, WithOptions(Options{IndexAmount: intp(3)}))

	id, err := idx.Add(String("Simpler"), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{id}, idx.Postings(1, "s"))
	assert.Equal(t, []int{id}, idx.Postings(2, "im"))
	assert.Equal(t, []int{id}, idx.Postings(3, "ler"))
	assert.Nil(t, idx.Postings(3, "Sim"), "text is case-folded before shingling")
	assert.Nil(t, idx.Postings(4, "simp"), "no level beyond index_amount")
	assert.Equal(t, []int{7, 6, 5}, idx.Stats().Terms)
}

func TestAdd_StopsAtTextLength(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Add(String("ab"), nil)
	require.NoError(t, err)

	terms := idx.Stats().Terms
	assert.Equal(t, 2, terms[0])
	assert.Equal(t, 1, terms[1])
	for level := 3; level <= 12; level++ {
		assert.Zero(t, terms[level-1], "level %d", level)
	}
}

func TestAdd_NoDuplicateIDsPerShingle(t *testing.T) {
	idx := newTestIndex(t, WithOptions(Options{IndexAmount: intp(2)}))

	a, err := idx.Add(String("aaaa"), nil)
	require.NoError(t, err)
	b, err := idx.Add(Array(String("aa"), String("aaa")), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{a, b}, idx.Postings(1, "a"))
	assert.Equal(t, []int{a, b}, idx.Postings(2, "aa"))
}

func TestAdd_Primitives(t *testing.T) {
	idx := newTestIndex(t)

	n, err := idx.Add(Number(1234), nil)
	require.NoError(t, err)
	b, err := idx.Add(Bool(true), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{n}, idx.Postings(2, "23"))
	assert.Equal(t, []int{b}, idx.Postings(4, "true"))
}

func TestAdd_RejectsNull(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Add(Null(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, idx.Stats().Allocated)
}

func TestAdd_Filter(t *testing.T) {
	idx := newTestIndex(t)
	doc := Object(Field{"user", Object(
		Field{"name", String("Alice")},
		Field{"age", Number(30)},
	)})

	_, err := idx.Add(doc, func(key string, _ Value) bool { return key != "age" })
	require.NoError(t, err)

	assert.Nil(t, idx.Postings(2, "30"))
	assert.NotNil(t, idx.Postings(5, "alice"))
}

func TestAddAny(t *testing.T) {
	idx := newTestIndex(t)

	id, err := idx.AddAny(map[string]any{"title": "Go in Action"}, nil)
	require.NoError(t, err)

	doc, ok := idx.Get(id)
	require.True(t, ok)
	assert.Equal(t, KindObject, doc.Kind())

	_, err = idx.AddAny(make(chan int), nil)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

// ═══════════════════════════════════════════════════════════════════════════════
// REMOVE TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestRemove_DeletesEmptyEntries(t *testing.T) {
	idx := newTestIndex(t, WithOptions(Options{IndexAmount: intp(3)}))

	keep, err := idx.Add(String("xyzzy"), nil)
	require.NoError(t, err)
	gone, err := idx.Add(String("xyz"), nil)
	require.NoError(t, err)

	require.NoError(t, idx.Remove(keep))

	assert.Equal(t, []int{gone}, idx.Postings(3, "xyz"))
	assert.Nil(t, idx.Postings(3, "yzz"))
	assert.Nil(t, idx.Postings(2, "zy"))

	require.NoError(t, idx.Remove(gone))

	assert.Nil(t, idx.Postings(3, "xyz"))
	assert.Equal(t, []int{0, 0, 0}, idx.Stats().Terms)
	assert.Equal(t, 0, idx.Len())
}

func TestRemove_NotFound(t *testing.T) {
	idx := newTestIndex(t)

	assert.ErrorIs(t, idx.Remove(0), ErrNotFound)
	assert.ErrorIs(t, idx.Remove(-1), ErrNotFound)

	id, err := idx.Add(String("once"), nil)
	require.NoError(t, err)
	require.NoError(t, idx.Remove(id))
	assert.ErrorIs(t, idx.Remove(id), ErrNotFound)
}

func TestRemove_Composite(t *testing.T) {
	idx := newTestIndex(t)

	doc := Object(
		Field{"Name", String("Alice")},
		Field{"Tags", Array(String("Admin"), Number(7), Bool(false))},
	)
	id, err := idx.Add(doc, nil)
	require.NoError(t, err)
	other, err := idx.Add(String("alien"), nil)
	require.NoError(t, err)

	require.NoError(t, idx.Remove(id))

	_, ok := idx.Get(id)
	assert.False(t, ok)
	assert.Empty(t, idx.SearchText("admin"))
	assert.Empty(t, idx.SearchText("7"))
	assert.Empty(t, idx.SearchText("false"))
	assert.Equal(t, []int{other}, idx.Postings(2, "al"))
}

func TestRemove_UsesFilterFromAdd(t *testing.T) {
	idx := newTestIndex(t)
	filter := func(key string, _ Value) bool { return key != "secret" }

	kept, err := idx.Add(String("hunter2"), nil)
	require.NoError(t, err)
	id, err := idx.Add(Object(Field{"secret", String("hunter2")}, Field{"name", String("bob")}), filter)
	require.NoError(t, err)

	require.NoError(t, idx.Remove(id))

	assert.Equal(t, []int{kept}, idx.Postings(7, "hunter2"))
	assert.Nil(t, idx.Postings(3, "bob"))
}

func TestRemove_RoundTrip(t *testing.T) {
	texts := []string{"hello", "simpler", "Straße", "a somewhat longer sentence", "42"}

	for _, text := range texts {
		idx := newTestIndex(t, WithOptions(Options{IndexAmount: intp(3)}))
		id, err := idx.Add(String(text), nil)
		require.NoError(t, err)
		require.NoError(t, idx.Remove(id))

		runes := []rune(text)
		for i := 0; i < len(runes); i++ {
			for j := i + 1; j <= len(runes); j++ {
				assert.Empty(t, idx.SearchText(string(runes[i:j])), "%q after removing %q", string(runes[i:j]), text)
			}
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// DROP AND CONFIGURE TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestDrop(t *testing.T) {
	idx := newTestIndex(t, WithOptions(Options{IndexAmount: intp(4)}))

	for _, s := range []string{"one", "two", "three"} {
		_, err := idx.Add(String(s), nil)
		require.NoError(t, err)
	}
	require.NoError(t, idx.Remove(1))

	idx.Drop()

	stats := idx.Stats()
	assert.Equal(t, Stats{Terms: []int{0, 0, 0, 0}}, stats)
	assert.Empty(t, idx.FreeSlots())
	assert.Empty(t, idx.SearchText("one"))

	id, err := idx.Add(String("again"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestConfigure(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Configure(Options{IndexAmount: intp(3)}))
	assert.Len(t, idx.Stats().Terms, 3)

	require.NoError(t, idx.Configure(Options{IgnoreCase: boolp(false)}))
	assert.Equal(t, Config{IndexAmount: 3, IgnoreCase: false}, idx.Config())

	_, err := idx.Add(String("Hello"), nil)
	require.NoError(t, err)
	assert.Len(t, idx.SearchText("Hello"), 1)
	assert.Empty(t, idx.SearchText("hello"))
}

func TestConfigure_RejectsChangeWithData(t *testing.T) {
	idx := newTestIndex(t)
	id, err := idx.Add(String("hello"), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, idx.Configure(Options{IndexAmount: intp(3)}), ErrUnsupported)
	assert.ErrorIs(t, idx.Configure(Options{IgnoreCase: boolp(false)}), ErrUnsupported)
	assert.ErrorIs(t, idx.Configure(Options{OnlyPrefix: boolp(true)}), ErrUnsupported)
	assert.Equal(t, DefaultConfig(), idx.Config())

	// Re-applying the current values is not a change.
	assert.NoError(t, idx.Configure(Options{IndexAmount: intp(12), IgnoreCase: boolp(true)}))

	// Once the index is empty again the depth may change.
	require.NoError(t, idx.Remove(id))
	assert.NoError(t, idx.Configure(Options{IndexAmount: intp(3)}))
}

func TestConfigure_InvalidIndexAmount(t *testing.T) {
	idx := newTestIndex(t)

	assert.ErrorIs(t, idx.Configure(Options{IndexAmount: intp(0)}), ErrInvalidArgument)
	assert.ErrorIs(t, idx.Configure(Options{IndexAmount: intp(-4)}), ErrInvalidArgument)
	assert.Equal(t, 12, idx.Config().IndexAmount)
}
