package handler

import (
	"context"

	"github.com/flowmesh/dataflow/pkg/types"
)

// SyncFunc produces all of a firing's items in one synchronous call.
type SyncFunc func(args map[string]types.Value) ([]types.Item, error)

// OneShotFunc produces all of a firing's items after suspending (I/O,
// sleep, an awaited call) but still returns them as one batch.
type OneShotFunc func(ctx context.Context, args map[string]types.Value) ([]types.Item, error)

// StreamFunc incrementally produces items via yield, which the scheduler
// routes as soon as each call returns. yield blocks if the consumer has
// not yet asked for the next item, providing natural backpressure.
type StreamFunc func(ctx context.Context, args map[string]types.Value, yield func(types.Item) error) error

// sliceSequence replays a pre-computed batch of items.
type sliceSequence struct {
	items []types.Item
	pos   int
}

func (s *sliceSequence) Next(ctx context.Context) (types.Item, bool, error) {
	if s.pos >= len(s.items) {
		return types.Item{}, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

// FromSync adapts spec.md §4.3 shape 3 ("synchronous") to a Handler.
func FromSync(fn SyncFunc) types.Handler {
	return func(ctx context.Context, args map[string]types.Value) (types.Sequence, error) {
		items, err := fn(args)
		if err != nil {
			return nil, err
		}
		return &sliceSequence{items: items}, nil
	}
}

// FromOneShot adapts spec.md §4.3 shape 2 ("one-shot asynchronous") to a
// Handler. The only difference from FromSync is that fn is free to
// suspend on ctx before returning its batch; both end up enumerated
// after completion rather than routed incrementally.
func FromOneShot(fn OneShotFunc) types.Handler {
	return func(ctx context.Context, args map[string]types.Value) (types.Sequence, error) {
		items, err := fn(ctx, args)
		if err != nil {
			return nil, err
		}
		return &sliceSequence{items: items}, nil
	}
}

// streamItem carries one yielded item or a terminal error/completion
// signal across the channel a streamSequence reads from.
type streamItem struct {
	item types.Item
	err  error
	done bool
}

// streamSequence drives a StreamFunc on a background goroutine and
// exposes its yields one at a time through Next, so the scheduler can
// route each item as it arrives (spec.md §4.2.3 "invoke the handler,
// streaming its (branch, value) items").
type streamSequence struct {
	ch chan streamItem
}

func (s *streamSequence) Next(ctx context.Context) (types.Item, bool, error) {
	select {
	case si, ok := <-s.ch:
		if !ok || si.done {
			return types.Item{}, false, nil
		}
		if si.err != nil {
			return types.Item{}, false, si.err
		}
		return si.item, true, nil
	case <-ctx.Done():
		return types.Item{}, false, ctx.Err()
	}
}

// FromStream adapts spec.md §4.3 shape 1 ("streaming producer") to a
// Handler. fn runs on its own goroutine; each yield call is relayed
// through an unbuffered channel so production naturally blocks until
// the scheduler has consumed the previous item.
func FromStream(fn StreamFunc) types.Handler {
	return func(ctx context.Context, args map[string]types.Value) (types.Sequence, error) {
		ch := make(chan streamItem)
		go func() {
			defer close(ch)
			yield := func(item types.Item) error {
				select {
				case ch <- streamItem{item: item}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err := fn(ctx, args, yield); err != nil {
				select {
				case ch <- streamItem{err: err}:
				case <-ctx.Done():
				}
			}
		}()
		return &streamSequence{ch: ch}, nil
	}
}
