package pipeline

import "context"

// Iterator yields values one at a time. Next returns (zero, false, nil)
// once the sequence is exhausted.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// Pipeline is a lazy query over a sequence. Each run builds a fresh chain
// of iterators, so the same Pipeline can be collected repeatedly.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// From wraps an existing Iterator. The resulting pipeline can only be run once.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(context.Context) Iterator[T] { return iter },
	}
}

// FromSlice reads items in order. The slice is never modified.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(context.Context) Iterator[T] { return &sliceIter[T]{items: items} },
	}
}

// Collect runs p to completion. On error it returns the values pulled so far.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	iter := p.create(ctx)
	defer iter.Close()

	var out []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil || !ok {
			return out, err
		}
		out = append(out, val)
	}
}

// Iter starts a run and hands back its iterator. The caller closes it.
func (p *Pipeline[T]) Iter(ctx context.Context) Iterator[T] {
	return p.create(ctx)
}

// sliceIter checks the context before every value so a canceled run stops
// at the source.
type sliceIter[T any] struct {
	items []T
	pos   int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.pos == len(it.items) {
		return zero, false, nil
	}
	it.pos++
	return it.items[it.pos-1], true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
