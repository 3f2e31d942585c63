package fulltext

import (
	"strconv"
	"strings"
)

// Filter decides whether the field key of container gets indexed. Returning
// false skips the field together with everything below it. A nil Filter
// accepts every field.
type Filter func(key string, container Value) bool

// Visitor receives the primitive leaves of a document.
type Visitor interface {
	// Visit is called once per leaf. Returning false stops the walk.
	Visit(key string, leaf Value) bool
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(key string, leaf Value) bool

// Visit calls f(key, leaf).
func (f VisitorFunc) Visit(key string, leaf Value) bool { return f(key, leaf) }

// Leaf is a primitive value together with the path leading to it.
type Leaf struct {
	Path  []string
	Value Value
}

// Key returns the last path element, "" for a primitive document.
func (l Leaf) Key() string {
	if len(l.Path) == 0 {
		return ""
	}
	return l.Path[len(l.Path)-1]
}

// String joins the path with dots.
func (l Leaf) String() string { return strings.Join(l.Path, ".") }

// Walk visits every primitive leaf of v in natural order: object fields in
// insertion order, array elements by index (their key is the decimal index).
// Null values are skipped. The filter is applied at every depth. A primitive
// v is itself the only leaf and is visited under the key "".
//
// Walk reports whether it ran to completion, false if the visitor stopped it.
func Walk(v Value, visitor Visitor, filter Filter) bool {
	if v.IsPrimitive() {
		return visitor.Visit("", v)
	}
	return walk(nil, v, func(path []string, leaf Value) bool {
		return visitor.Visit(path[len(path)-1], leaf)
	}, filter)
}

// Leaves returns every leaf Walk would visit, with full paths.
func Leaves(v Value, filter Filter) []Leaf {
	if v.IsPrimitive() {
		return []Leaf{{Value: v}}
	}
	var leaves []Leaf
	walk(nil, v, func(path []string, leaf Value) bool {
		leaves = append(leaves, Leaf{Path: append([]string(nil), path...), Value: leaf})
		return true
	}, filter)
	return leaves
}

func walk(path []string, container Value, visit func([]string, Value) bool, filter Filter) bool {
	step := func(key string, child Value) bool {
		if filter != nil && !filter(key, container) {
			return true
		}
		switch {
		case child.IsPrimitive():
			return visit(append(path, key), child)
		case child.IsComposite():
			return walk(append(path, key), child, visit, filter)
		default:
			return true
		}
	}

	switch container.Kind() {
	case KindObject:
		for _, f := range container.Fields() {
			if !step(f.Key, f.Value) {
				return false
			}
		}
	case KindArray:
		for i, item := range container.Items() {
			if !step(strconv.Itoa(i), item) {
				return false
			}
		}
	}
	return true
}

// containsText reports whether any leaf of v, normalized by n, contains
// query. It stops at the first match.
func containsText(v Value, query string, n Normalizer, filter Filter) bool {
	found := false
	Walk(v, VisitorFunc(func(_ string, leaf Value) bool {
		if strings.Contains(n.Normalize(leaf), query) {
			found = true
			return false
		}
		return true
	}), filter)
	return found
}
