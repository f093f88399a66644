package handler

import "github.com/flowmesh/dataflow/pkg/types"

// LegacyKind tags a LegacyItem the way core/executor.py's three-element
// yields did ("DATA" or "EVENT").
type LegacyKind string

const (
	LegacyData  LegacyKind = "DATA"
	LegacyEvent LegacyKind = "EVENT"
)

// LegacyItem is the three-element (branch, value, kind) tuple spec.md
// §4.3 says is "accepted for backward compatibility" with the tag
// discarded. By default FromLegacyTriple discards the tag exactly as
// spec.md states — the item is routed like any two-element item. With
// WithEventTag, EVENT items are dropped from the returned Sequence, so
// they are neither routed downstream nor reported to observers.
type LegacyItem struct {
	Branch string
	Value  types.Value
	Kind   LegacyKind
}

// LegacyOptions configures FromLegacyTriple's handling of the kind tag.
type LegacyOptions struct {
	// HonorEventTag, when true, drops EVENT-tagged items from the
	// returned Sequence instead of routing them — an opt-in extension
	// of the original Python semantics, not spec.md's default.
	HonorEventTag bool
}

// WithEventTag enables the Python original's DATA/EVENT routing
// distinction instead of spec.md's default (discard tag, route as data).
func WithEventTag() LegacyOptions {
	return LegacyOptions{HonorEventTag: true}
}

// LegacySyncFunc is the three-element analogue of SyncFunc.
type LegacySyncFunc func(args map[string]types.Value) ([]LegacyItem, error)

// FromLegacyTriple adapts a handler yielding (branch, value, kind)
// triples to a Handler, per spec.md §4.3.
func FromLegacyTriple(fn LegacySyncFunc, opts ...LegacyOptions) types.Handler {
	var opt LegacyOptions
	for _, o := range opts {
		opt = o
	}
	return FromSync(func(args map[string]types.Value) ([]types.Item, error) {
		triples, err := fn(args)
		if err != nil {
			return nil, err
		}
		items := make([]types.Item, 0, len(triples))
		for _, t := range triples {
			if opt.HonorEventTag && t.Kind == LegacyEvent {
				continue
			}
			items = append(items, types.Item{Branch: t.Branch, Value: t.Value})
		}
		return items, nil
	})
}
