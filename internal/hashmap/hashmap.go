// Package hashmap is a string-keyed hash map with separate chaining.
//
// Every bucket stores its first entry inline and links further entries in an
// overflow chain. The bucket count is a power of two; when the load factor
// reaches the configured threshold the bucket array doubles and every entry
// is rehashed.
package hashmap

import (
	"errors"
	"math/bits"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MinLoadFactor is the smallest accepted growth threshold.
const MinLoadFactor = 0.75

var (
	// ErrNoBuckets is returned by New for a zero bucket count.
	ErrNoBuckets = errors.New("hashmap: zero buckets")
	// ErrLoadFactor is returned by New when the threshold is below MinLoadFactor.
	ErrLoadFactor = errors.New("hashmap: load factor below 0.75")
)

type entry[V any] struct {
	key   string
	value V
	next  *entry[V]
	used  bool
}

// Map maps strings to values of type V. The zero value is not usable; call New.
type Map[V any] struct {
	buckets   []entry[V]
	count     int
	threshold float64
	release   func(V)
}

// Option configures a Map.
type Option[V any] func(*Map[V])

// OwnValues makes the map call release on every value it drops: replaced,
// removed or left over at Free. Maps holding arena handles must not use it.
func OwnValues[V any](release func(V)) Option[V] {
	return func(m *Map[V]) { m.release = release }
}

// New creates a map with at least buckets buckets (rounded up to a power of
// two) that grows once count/buckets reaches loadFactor.
func New[V any](buckets int, loadFactor float64, opts ...Option[V]) (*Map[V], error) {
	if buckets <= 0 {
		return nil, ErrNoBuckets
	}
	if loadFactor < MinLoadFactor {
		return nil, ErrLoadFactor
	}
	m := &Map[V]{
		buckets:   make([]entry[V], roundPow2(buckets)),
		threshold: loadFactor,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func roundPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (m *Map[V]) index(key string, n int) int {
	return int(xxhash.Sum64String(key) & uint64(n-1))
}

func (m *Map[V]) find(key string) *entry[V] {
	e := &m.buckets[m.index(key, len(m.buckets))]
	if !e.used {
		return nil
	}
	for ; e != nil; e = e.next {
		if e.key == key {
			return e
		}
	}
	return nil
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Exists reports whether key is present.
func (m *Map[V]) Exists(key string) bool {
	return m.find(key) != nil
}

// Insert stores value under key and reports whether an existing value was
// replaced. The key is cloned so callers may reuse their buffer.
func (m *Map[V]) Insert(key string, value V) bool {
	if e := m.find(key); e != nil {
		if m.release != nil {
			m.release(e.value)
		}
		e.value = value
		return true
	}
	place(m.buckets, m.index(key, len(m.buckets)), strings.Clone(key), value)
	m.count++
	if float64(m.count)/float64(len(m.buckets)) >= m.threshold {
		m.grow()
	}
	return false
}

func place[V any](buckets []entry[V], i int, key string, value V) {
	head := &buckets[i]
	if !head.used {
		*head = entry[V]{key: key, value: value, used: true}
		return
	}
	head.next = &entry[V]{key: key, value: value, next: head.next, used: true}
}

func (m *Map[V]) grow() {
	next := make([]entry[V], len(m.buckets)*2)
	for i := range m.buckets {
		if !m.buckets[i].used {
			continue
		}
		for e := &m.buckets[i]; e != nil; e = e.next {
			place(next, m.index(e.key, len(next)), e.key, e.value)
		}
	}
	m.buckets = next
}

// Remove deletes key and reports whether it was present.
func (m *Map[V]) Remove(key string) bool {
	head := &m.buckets[m.index(key, len(m.buckets))]
	if !head.used {
		return false
	}
	var dropped V
	switch {
	case head.key == key:
		dropped = head.value
		if head.next != nil {
			*head = *head.next
		} else {
			*head = entry[V]{}
		}
	default:
		prev := head
		for prev.next != nil && prev.next.key != key {
			prev = prev.next
		}
		if prev.next == nil {
			return false
		}
		dropped = prev.next.value
		prev.next = prev.next.next
	}
	if m.release != nil {
		m.release(dropped)
	}
	m.count--
	return true
}

// Len returns the number of keys.
func (m *Map[V]) Len() int { return m.count }

// Buckets returns the current bucket count.
func (m *Map[V]) Buckets() int { return len(m.buckets) }

// Range calls fn for every entry in bucket order until fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for i := range m.buckets {
		if !m.buckets[i].used {
			continue
		}
		for e := &m.buckets[i]; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Free drops every entry, releasing owned values, and leaves the map empty
// with its current bucket count.
func (m *Map[V]) Free() {
	if m.release != nil {
		m.Range(func(_ string, v V) bool {
			m.release(v)
			return true
		})
	}
	clear(m.buckets)
	m.count = 0
}
