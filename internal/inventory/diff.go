package inventory

import "sort"

// ChangeKind 区分三类库存变化。
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	AmountChanged
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case AmountChanged:
		return "amount_changed"
	default:
		return "unknown"
	}
}

// Change 描述两份快照之间检测到的一处差异。只在内存中流转，从不落盘。
type Change struct {
	Kind    ChangeKind
	AssetID string
	Name    string
	// Amount 对 Added 取现库存数量，对 Removed 取旧库存数量。
	Amount    int64
	OldAmount int64 // 仅 AmountChanged
	NewAmount int64 // 仅 AmountChanged
}

// Diff compares the previous snapshot against the current one and returns the
// detected changes, grouped Added → Removed → AmountChanged and sorted by
// asset ID inside each group so the output is deterministic.
func Diff(prev, curr *Snapshot) []Change {
	var added, removed, changed []Change

	for id, it := range items(curr) {
		old, ok := items(prev)[id]
		if !ok {
			added = append(added, Change{
				Kind:    Added,
				AssetID: id,
				Name:    curr.ItemName(it),
				Amount:  it.Amount,
			})
			continue
		}
		if old.Amount != it.Amount {
			changed = append(changed, Change{
				Kind:      AmountChanged,
				AssetID:   id,
				Name:      curr.ItemName(it),
				OldAmount: old.Amount,
				NewAmount: it.Amount,
			})
		}
	}

	for id, it := range items(prev) {
		if _, ok := items(curr)[id]; !ok {
			removed = append(removed, Change{
				Kind:    Removed,
				AssetID: id,
				Name:    prev.ItemName(it),
				Amount:  it.Amount,
			})
		}
	}

	sortByAsset(added)
	sortByAsset(removed)
	sortByAsset(changed)

	out := make([]Change, 0, len(added)+len(removed)+len(changed))
	out = append(out, added...)
	out = append(out, removed...)
	out = append(out, changed...)
	return out
}

func sortByAsset(cs []Change) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].AssetID < cs[j].AssetID })
}

func items(s *Snapshot) map[string]Item {
	if s == nil {
		return nil
	}
	return s.Items
}
