// Package tree implements the nested configuration document the theme
// engine operates on: a recursive mapping from string keys to scalars,
// lists, or further mappings, addressed by explicit key paths.
package tree

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Node is one level of a nested configuration document. Values are
// scalars (string, bool, number), lists ([]any) or nested Nodes.
// The alias keeps Node interchangeable with what encoding/json and
// yaml.v3 produce for objects.
type Node = map[string]any

// AsNode reports whether v is a mapping and returns it as a Node.
func AsNode(v any) (Node, bool) {
	n, ok := v.(map[string]any)
	return n, ok
}

// Get walks path down from n and returns the value found there, or def
// when any path segment is absent or a non-mapping is hit before the
// final segment. An empty path yields def; callers wanting the whole
// node already have it.
func Get(n Node, path []string, def any) any {
	if len(path) == 0 {
		return def
	}
	cur := n
	for _, key := range path[:len(path)-1] {
		next, ok := AsNode(cur[key])
		if !ok {
			return def
		}
		cur = next
	}
	v, ok := cur[path[len(path)-1]]
	if !ok {
		return def
	}
	return v
}

// GetNode is Get for mapping-valued paths; absent or non-mapping
// values yield nil.
func GetNode(n Node, path []string) Node {
	sub, ok := AsNode(Get(n, path, nil))
	if !ok {
		return nil
	}
	return sub
}

// Set stores value at path under n, creating intermediate mappings as
// needed. An intermediate that exists but is not a mapping is replaced
// by one. An empty path is a no-op.
func Set(n Node, path []string, value any) {
	if len(path) == 0 {
		return
	}
	cur := n
	for _, key := range path[:len(path)-1] {
		next, ok := AsNode(cur[key])
		if !ok {
			next = Node{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// Remove deletes the value at path, pruning nothing else.
func Remove(n Node, path []string) {
	if len(path) == 0 {
		return
	}
	cur := n
	for _, key := range path[:len(path)-1] {
		next, ok := AsNode(cur[key])
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, path[len(path)-1])
}

// Merge deep-merges incoming onto base and returns a new combined
// node. Mappings merge recursively; any other incoming value, lists
// included, replaces the base value wholesale. Neither input is
// mutated.
func Merge(base, incoming Node) Node {
	out := make(Node, len(base)+len(incoming))
	for k, v := range base {
		out[k] = Clone(v)
	}
	for k, v := range incoming {
		bn, bok := AsNode(out[k])
		in, iok := AsNode(v)
		if bok && iok {
			out[k] = Merge(bn, in)
			continue
		}
		out[k] = Clone(v)
	}
	return out
}

// Clone deep-copies mapping and list values; scalars are returned
// as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(Node, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// Intersect filters n down to the keys schema permits and returns the
// result as a new node. A key present in schema at all is permission to
// keep the value at that level; only when the schema value is itself a
// mapping does filtering recurse, and then a non-mapping input value or
// an emptied subtree is dropped. Intersect is idempotent for a fixed
// schema.
func Intersect(n, schema Node) Node {
	out := Node{}
	for key, sv := range schema {
		v, ok := n[key]
		if !ok {
			continue
		}
		sub, subIsNode := AsNode(sv)
		if !subIsNode {
			out[key] = v
			continue
		}
		vn, vIsNode := AsNode(v)
		if !vIsNode {
			continue
		}
		kept := Intersect(vn, sub)
		if len(kept) == 0 {
			continue
		}
		out[key] = kept
	}
	return out
}

// Flatten turns a nested mapping into a flat mapping whose keys are the
// nested key paths joined with token, each segment converted by
// KebabCase. Non-mapping values become the leaves; mappings containing
// only mappings contribute no leaf of their own.
func Flatten(n Node, prefix, token string) map[string]any {
	out := map[string]any{}
	flattenInto(out, n, prefix, token)
	return out
}

func flattenInto(out map[string]any, n Node, prefix, token string) {
	for key, v := range n {
		name := prefix + KebabCase(key)
		if sub, ok := AsNode(v); ok {
			flattenInto(out, sub, name+token, token)
			continue
		}
		out[name] = v
	}
}

// KebabCase converts a camelCase key segment to kebab-case and replaces
// slashes with hyphens, so "fontFamily" becomes "font-family" and
// "core/group" becomes "core-group".
func KebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		case r == '/':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ScalarString renders a scalar leaf as CSS-ready text. Mappings and
// lists have no scalar form and yield "".
func ScalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
