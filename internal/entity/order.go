package entity

import (
	"cmp"
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// Value classes in ascending sort order. Values of different classes order
// by class; a missing field sorts before everything.
const (
	classMissing = iota
	classBool
	classNumber
	classTime
	classString
	classOther
)

// sortKey is a record value reduced to something orderable.
type sortKey struct {
	class int
	num   float64
	t     time.Time
	s     string
}

// sortRecords orders recs in place by field key; a leading "-" reverses the
// order. The sort is stable so equal keys keep stored order.
func sortRecords(recs []types.Record, key string) {
	desc := strings.HasPrefix(key, "-")
	field := strings.TrimPrefix(key, "-")
	if field == "" {
		return
	}
	slices.SortStableFunc(recs, func(a, b types.Record) int {
		c := compareKeys(keyOf(a[field]), keyOf(b[field]))
		if desc {
			return -c
		}
		return c
	})
}

func keyOf(v any) sortKey {
	if v == nil {
		return sortKey{class: classMissing}
	}
	if n, ok := toFloat(v); ok {
		return sortKey{class: classNumber, num: n}
	}
	switch x := v.(type) {
	case bool:
		k := sortKey{class: classBool}
		if x {
			k.num = 1
		}
		return k
	case string:
		if t, err := types.ParseTime(x); err == nil {
			return sortKey{class: classTime, t: t}
		}
		return sortKey{class: classString, s: x}
	case time.Time:
		return sortKey{class: classTime, t: x}
	default:
		return sortKey{class: classOther}
	}
}

func compareKeys(a, b sortKey) int {
	if a.class != b.class {
		return cmp.Compare(a.class, b.class)
	}
	switch a.class {
	case classBool, classNumber:
		return cmp.Compare(a.num, b.num)
	case classTime:
		return a.t.Compare(b.t)
	case classString:
		return strings.Compare(a.s, b.s)
	default:
		return 0
	}
}

// matches reports whether r holds an equal value for every key of query.
func matches(r, query types.Record) bool {
	for k, want := range query {
		got, ok := r[k]
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

// equalValues compares two field values exactly. Numbers compare by value
// regardless of Go type so an int query matches a decoded float64.
func equalValues(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	if _, ok := toFloat(b); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
