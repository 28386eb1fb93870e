package pipeline

import (
	"cmp"
	"context"
	"slices"
)

// Grouping is one group produced by GroupBy: a key and its members in
// source order.
type Grouping[K comparable, T any] struct {
	Key   K
	Items []T
}

// OrderBy sorts values ascending by key. The sort is stable: values with
// equal keys keep their source order. The source is buffered on first pull
// and sorted as a private copy.
func OrderBy[T any, K cmp.Ordered](p *Pipeline[T], key func(T) K) *Pipeline[T] {
	return OrderByFunc(p, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
}

// OrderByDescending sorts values descending by key, stable on ties.
func OrderByDescending[T any, K cmp.Ordered](p *Pipeline[T], key func(T) K) *Pipeline[T] {
	return OrderByFunc(p, func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	})
}

// OrderByFunc sorts values with compare, which returns a negative number
// when a sorts before b. Use it for keys that are not cmp.Ordered.
func OrderByFunc[T any](p *Pipeline[T], compare func(a, b T) int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &bufferIter[T, T]{
				source: p.create(ctx),
				build: func(items []T) []T {
					slices.SortStableFunc(items, compare)
					return items
				},
			}
		},
	}
}

// GroupBy partitions values by key. Groups are yielded in the order their
// key first appears; members keep source order.
func GroupBy[T any, K comparable](p *Pipeline[T], key func(T) K) *Pipeline[Grouping[K, T]] {
	return &Pipeline[Grouping[K, T]]{
		create: func(ctx context.Context) Iterator[Grouping[K, T]] {
			return &bufferIter[T, Grouping[K, T]]{
				source: p.create(ctx),
				build: func(items []T) []Grouping[K, T] {
					index := make(map[K]int)
					var groups []Grouping[K, T]
					for _, item := range items {
						k := key(item)
						i, ok := index[k]
						if !ok {
							i = len(groups)
							index[k] = i
							groups = append(groups, Grouping[K, T]{Key: k})
						}
						groups[i].Items = append(groups[i].Items, item)
					}
					return groups
				},
			}
		},
	}
}

// Take yields at most n values, then stops pulling from the source.
func Take[T any](p *Pipeline[T], n int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeIter[T]{source: p.create(ctx), remaining: n}
		},
	}
}

// Skip discards the first n values.
func Skip[T any](p *Pipeline[T], n int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &skipIter[T]{source: p.create(ctx), skip: n}
		},
	}
}

// First pulls a single value. ok is false when the pipeline is empty.
func First[T any](ctx context.Context, p *Pipeline[T]) (val T, ok bool, err error) {
	iter := p.create(ctx)
	defer iter.Close()
	return iter.Next(ctx)
}

// --- Iterator implementations ---

// bufferIter drains its source on the first pull, transforms the buffered
// values with build, then yields the result.
type bufferIter[T, O any] struct {
	source Iterator[T]
	build  func([]T) []O
	out    []O
	index  int
	filled bool
}

func (it *bufferIter[T, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	if !it.filled {
		var items []T
		for {
			val, ok, err := it.source.Next(ctx)
			if err != nil {
				var zero O
				return zero, false, err
			}
			if !ok {
				break
			}
			items = append(items, val)
		}
		it.out = it.build(items)
		it.filled = true
	}
	if it.index >= len(it.out) {
		var zero O
		return zero, false, nil
	}
	val := it.out[it.index]
	it.index++
	return val, true, nil
}

func (it *bufferIter[T, O]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type skipIter[T any] struct {
	source Iterator[T]
	skip   int
}

func (it *skipIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.skip > 0 {
		_, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		it.skip--
	}
	return it.source.Next(ctx)
}

func (it *skipIter[T]) Close() error { return it.source.Close() }
