package fastadapter

import "sort"

// ExpandExtensionKey is the registration key of the expand extension.
const ExpandExtensionKey = "expand"

// Payloads attached to the header change notification emitted when an item's
// expansion state flips, so hosts can redraw the indicator without a full
// re-bind.
const (
	PayloadExpanded  = "expanded"
	PayloadCollapsed = "collapsed"
)

// ExpandExtensionFactory registers an [ExpandExtension] with a composer.
var ExpandExtensionFactory = ExtensionFactory{
	Key: ExpandExtensionKey,
	New: func(composer *Composer) Extension {
		return &ExpandExtension{composer: composer}
	},
}

// ExpandExtensionOf returns the expand extension registered with the
// composer, or nil.
func ExpandExtensionOf(composer *Composer) *ExpandExtension {
	extension, _ := composer.Extension(ExpandExtensionKey).(*ExpandExtension)
	return extension
}

// ExpandExtension materializes and removes the children of expandable items
// in the owning adapter's backing list. Expansion state lives on the items
// themselves; collapsing a parent hides its descendants but does not reset
// their expanded flags, so re-expanding the parent restores the same visible
// shape (remembered expansion).
type ExpandExtension struct {
	ExtensionBase

	composer *Composer

	// onlyOne keeps at most one item expanded per sibling level.
	onlyOne bool
}

// SetOnlyOneExpanded enforces that expanding an item first collapses its
// expanded siblings on the same level.
func (x *ExpandExtension) SetOnlyOneExpanded(onlyOne bool) *ExpandExtension {
	x.onlyOne = onlyOne
	return x
}

// IsOnlyOneExpanded returns whether the one-section-at-a-time policy is on.
func (x *ExpandExtension) IsOnlyOneExpanded() bool {
	return x.onlyOne
}

// Click toggles auto-expanding items.
func (x *ExpandExtension) Click(item Item, position int) bool {
	expandable, ok := AsExpandable(item)
	if !ok || !expandable.IsAutoExpanding() || len(expandable.SubItems()) == 0 {
		return false
	}
	x.Toggle(position)
	return true
}

// Expand materializes the children of the expandable item at the given
// global position, immediately after it. Descendants that were expanded
// before a previous collapse are re-revealed recursively. Unresolvable
// positions, non-expandable items, already expanded items and items without
// children are silent no-ops.
func (x *ExpandExtension) Expand(position int) {
	info, ok := x.composer.RelativeInfo(position)
	if !ok || info.Item == nil {
		return
	}
	expandable, ok := AsExpandable(info.Item)
	if !ok || expandable.IsExpanded() || len(SubItemsOf(expandable)) == 0 {
		return
	}

	if x.onlyOne {
		siblings := x.ExpandedItemsSameLevel(position)
		sort.Sort(sort.Reverse(sort.IntSlice(siblings)))
		for _, sibling := range siblings {
			x.Collapse(sibling)
		}
		// Collapsing a sibling above may have shifted our position.
		position = x.composer.Position(expandable.Identifier())
		if position < 0 {
			return
		}
		info, ok = x.composer.RelativeInfo(position)
		if !ok {
			return
		}
	}

	mutable, ok := AsMutableAdapter(info.Adapter)
	if !ok {
		return
	}
	mutable.InsertItems(info.Position+1, flattenVisible(expandable))
	expandable.SetExpanded(true)
	x.composer.NotifyAdapterItemRangeChanged(position, 1, PayloadExpanded)
}

// Collapse removes the contiguous run of structurally present descendants of
// the expanded item at the given global position, including the descendants
// of nested expanded children, in one range removal. Only the item's own
// expanded flag is reset; descendants keep theirs.
func (x *ExpandExtension) Collapse(position int) {
	info, ok := x.composer.RelativeInfo(position)
	if !ok || info.Item == nil {
		return
	}
	expandable, ok := AsExpandable(info.Item)
	if !ok || !expandable.IsExpanded() {
		return
	}
	mutable, ok := AsMutableAdapter(info.Adapter)
	if !ok {
		return
	}
	count := countVisibleDescendants(expandable)
	if count > 0 {
		mutable.RemoveItemRange(info.Position+1, count)
	}
	expandable.SetExpanded(false)
	x.composer.NotifyAdapterItemRangeChanged(position, 1, PayloadCollapsed)
}

// Toggle expands a collapsed item and collapses an expanded one.
func (x *ExpandExtension) Toggle(position int) {
	item := x.composer.Item(position)
	if item == nil {
		return
	}
	if expandable, ok := AsExpandable(item); ok {
		if expandable.IsExpanded() {
			x.Collapse(position)
		} else {
			x.Expand(position)
		}
	}
}

// ExpandAll expands every expandable item, root to leaf. Each pass walks in
// reverse index order so insertions land above already processed indices;
// passes repeat until newly revealed children are expanded too.
func (x *ExpandExtension) ExpandAll() {
	for {
		changed := false
		for position := x.composer.ItemCount() - 1; position >= 0; position-- {
			item := x.composer.Item(position)
			if item == nil {
				continue
			}
			expandable, ok := AsExpandable(item)
			if !ok || expandable.IsExpanded() || len(expandable.SubItems()) == 0 {
				continue
			}
			x.Expand(position)
			changed = true
		}
		if !changed {
			return
		}
	}
}

// CollapseAll collapses every expanded item. Positions are recomputed each
// pass since every collapse shifts the positions after it.
func (x *ExpandExtension) CollapseAll() {
	for {
		positions := x.ExpandedItems()
		if len(positions) == 0 {
			return
		}
		x.Collapse(positions[len(positions)-1])
	}
}

// ExpandedItems returns the global positions of the currently visible
// expanded items, in ascending order.
func (x *ExpandExtension) ExpandedItems() []int {
	var positions []int
	count := x.composer.ItemCount()
	for position := 0; position < count; position++ {
		if expandable, ok := AsExpandable(x.composer.Item(position)); ok && expandable.IsExpanded() {
			positions = append(positions, position)
		}
	}
	return positions
}

// ExpandedItemsCount sums the sub item list sizes of every expanded item with
// a visible position in [fromPosition, toPosition). It lets callers reason
// about the flattened size without walking the whole adapter.
func (x *ExpandExtension) ExpandedItemsCount(fromPosition, toPosition int) int {
	count := 0
	for position := fromPosition; position < toPosition; position++ {
		if expandable, ok := AsExpandable(x.composer.Item(position)); ok && expandable.IsExpanded() {
			count += len(expandable.SubItems())
		}
	}
	return count
}

// ExpandedItemsSameLevel returns the global positions of expanded items that
// share the item's parent (or are root level if it has none), excluding the
// item itself. It backs the only-one-expanded policy.
func (x *ExpandExtension) ExpandedItemsSameLevel(position int) []int {
	item := x.composer.Item(position)
	if item == nil {
		return nil
	}
	level := parentOf(item)
	var positions []int
	count := x.composer.ItemCount()
	for p := 0; p < count; p++ {
		if p == position {
			continue
		}
		other := x.composer.Item(p)
		expandable, ok := AsExpandable(other)
		if !ok || !expandable.IsExpanded() {
			continue
		}
		if parentOf(other) == level {
			positions = append(positions, p)
		}
	}
	return positions
}

func parentOf(item Item) Expandable {
	if sub, ok := AsSubItem(item); ok {
		return sub.Parent()
	}
	return nil
}

// flattenVisible returns the visible sequence an expanded parent contributes:
// each direct child followed by, when that child is itself flagged expanded,
// its own visible sequence.
func flattenVisible(parent Expandable) []Item {
	var items []Item
	for _, sub := range SubItemsOf(parent) {
		items = append(items, sub)
		if expandable, ok := AsExpandable(sub); ok && expandable.IsExpanded() {
			items = append(items, flattenVisible(expandable)...)
		}
	}
	return items
}

// countVisibleDescendants counts the structurally present descendants of an
// expanded parent, descending through nested expanded children.
func countVisibleDescendants(parent Expandable) int {
	count := 0
	for _, sub := range SubItemsOf(parent) {
		count++
		if expandable, ok := AsExpandable(sub); ok && expandable.IsExpanded() {
			count += countVisibleDescendants(expandable)
		}
	}
	return count
}

// bundleKeyExpanded suffixes the bundle prefix for persisted expansion.
const bundleKeyExpanded = "bundle_expanded"

// SaveInstanceState writes the identifiers of every item flagged expanded,
// including hidden ones remembering their shape, into the bundle.
func (x *ExpandExtension) SaveInstanceState(bundle *Bundle, prefix string) {
	var ids []int64
	x.composer.EachItem(func(item Item) {
		if expandable, ok := AsExpandable(item); ok && expandable.IsExpanded() {
			ids = append(ids, item.Identifier())
		}
	})
	bundle.PutIDs(prefix+bundleKeyExpanded, ids)
}

// RestoreInstanceState re-expands every saved identifier. Visible items are
// expanded pass by pass, since expanding a parent is what reveals its
// children; identifiers that never become visible get their remembered flag
// set directly.
func (x *ExpandExtension) RestoreInstanceState(bundle *Bundle, prefix string) {
	ids := bundle.IDs(prefix + bundleKeyExpanded)
	if len(ids) == 0 {
		return
	}
	saved := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		saved[id] = struct{}{}
	}
	for {
		changed := false
		for position := 0; position < x.composer.ItemCount(); position++ {
			expandable, ok := AsExpandable(x.composer.Item(position))
			if !ok || expandable.IsExpanded() {
				continue
			}
			if _, want := saved[expandable.Identifier()]; want {
				x.Expand(position)
				if expandable.IsExpanded() {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	x.composer.EachItem(func(item Item) {
		expandable, ok := AsExpandable(item)
		if !ok || expandable.IsExpanded() || len(expandable.SubItems()) == 0 {
			return
		}
		if _, want := saved[expandable.Identifier()]; !want {
			return
		}
		// Still hidden under a collapsed ancestor: remember the shape.
		if x.composer.Position(expandable.Identifier()) < 0 {
			expandable.SetExpanded(true)
		}
	})
}
