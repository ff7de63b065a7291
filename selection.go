package fastadapter

import "sort"

// SelectExtensionKey is the registration key of the select extension.
const SelectExtensionKey = "select"

// SelectExtensionFactory registers a [SelectExtension] with a composer.
var SelectExtensionFactory = ExtensionFactory{
	Key: SelectExtensionKey,
	New: func(composer *Composer) Extension {
		return &SelectExtension{
			composer:         composer,
			allowDeselection: true,
		}
	},
}

// SelectExtensionOf returns the select extension registered with the
// composer, or nil.
func SelectExtensionOf(composer *Composer) *SelectExtension {
	extension, _ := composer.Extension(SelectExtensionKey).(*SelectExtension)
	return extension
}

// SelectExtension tracks selection state. There is no separate selection set;
// the selected flag lives on each item, so selection survives structural
// changes for free and collapsed sub items keep their state.
type SelectExtension struct {
	ExtensionBase

	composer *Composer

	// selectable gates whether clicks toggle selection at all. Programmatic
	// selection always works.
	selectable           bool
	multiSelect          bool
	selectOnLongClick    bool
	allowDeselection     bool
	selectWithItemUpdate bool

	listener func(item Item, selected bool)
}

// SetSelectable enables or disables selection toggling through clicks.
func (x *SelectExtension) SetSelectable(selectable bool) *SelectExtension {
	x.selectable = selectable
	return x
}

// SetMultiSelect enables selecting more than one item at a time. While
// disabled, selecting an item first deselects every previously selected item.
func (x *SelectExtension) SetMultiSelect(multiSelect bool) *SelectExtension {
	x.multiSelect = multiSelect
	return x
}

// SetSelectOnLongClick moves selection toggling from clicks to long clicks.
func (x *SelectExtension) SetSelectOnLongClick(selectOnLongClick bool) *SelectExtension {
	x.selectOnLongClick = selectOnLongClick
	return x
}

// SetAllowDeselection controls whether clicking an already selected item
// deselects it. While disabled such a click is a no-op. Enabled by default.
func (x *SelectExtension) SetAllowDeselection(allowDeselection bool) *SelectExtension {
	x.allowDeselection = allowDeselection
	return x
}

// SetSelectWithItemUpdate controls whether selection changes dispatch a
// change notification through the composer, causing the host to re-bind and
// animate the item. While disabled only the selected flag and the listener
// fire, for hosts that toggle the visual state directly.
func (x *SelectExtension) SetSelectWithItemUpdate(selectWithItemUpdate bool) *SelectExtension {
	x.selectWithItemUpdate = selectWithItemUpdate
	return x
}

// SetSelectionListener sets a callback fired for every selection change.
func (x *SelectExtension) SetSelectionListener(listener func(item Item, selected bool)) *SelectExtension {
	x.listener = listener
	return x
}

// Click implements the selection toggling policy for clicks.
func (x *SelectExtension) Click(item Item, position int) bool {
	if !x.selectable || x.selectOnLongClick {
		return false
	}
	return x.handleSelection(item, position)
}

// LongClick implements the selection toggling policy for long clicks.
func (x *SelectExtension) LongClick(item Item, position int) bool {
	if !x.selectable || !x.selectOnLongClick {
		return false
	}
	return x.handleSelection(item, position)
}

func (x *SelectExtension) handleSelection(item Item, position int) bool {
	if !item.IsSelectable() {
		return false
	}
	if item.IsSelected() {
		if !x.allowDeselection {
			return false
		}
		x.Deselect(position)
		return true
	}
	x.Select(position, true, true)
	return true
}

// Select selects the item at the given global position. When
// considerSelectableFlag is set, items flagged not selectable are skipped.
// Unresolvable positions are a no-op. While multi select is disabled, any
// prior selection is deselected first, excluding the item itself so it does
// not flicker through a deselected state.
func (x *SelectExtension) Select(position int, fireEvent, considerSelectableFlag bool) {
	info, ok := x.composer.RelativeInfo(position)
	if !ok || info.Item == nil {
		return
	}
	x.selectItem(info.Item, position, fireEvent, considerSelectableFlag)
}

func (x *SelectExtension) selectItem(item Item, position int, fireEvent, considerSelectableFlag bool) {
	if considerSelectableFlag && !item.IsSelectable() {
		return
	}
	if !x.multiSelect {
		x.deselectAllExcept(item, fireEvent)
	}
	if item.IsSelected() {
		return
	}
	item.SetSelected(true)
	x.notifyChanged(position)
	if fireEvent && x.listener != nil {
		x.listener(item, true)
	}
}

// Deselect deselects the item at the given global position.
func (x *SelectExtension) Deselect(position int) {
	item := x.composer.Item(position)
	if item == nil || !item.IsSelected() {
		return
	}
	item.SetSelected(false)
	x.notifyChanged(position)
	if x.listener != nil {
		x.listener(item, false)
	}
}

// Toggle flips the selection state of the item at the given global position.
func (x *SelectExtension) Toggle(position int) {
	item := x.composer.Item(position)
	if item == nil {
		return
	}
	if item.IsSelected() {
		x.Deselect(position)
	} else {
		x.Select(position, true, true)
	}
}

// SelectByIdentifier selects the item with the given identifier, wherever it
// lives in the item graph, including collapsed sub items.
func (x *SelectExtension) SelectByIdentifier(identifier int64, fireEvent, considerSelectableFlag bool) {
	if position := x.composer.Position(identifier); position >= 0 {
		x.Select(position, fireEvent, considerSelectableFlag)
		return
	}
	x.composer.EachItem(func(item Item) {
		if item.Identifier() != identifier {
			return
		}
		x.selectItem(item, -1, fireEvent, considerSelectableFlag)
	})
}

// SelectAll selects every item reachable through the full recursive item
// graph, including collapsed sub items.
func (x *SelectExtension) SelectAll(considerSelectableFlag bool) {
	x.composer.EachItem(func(item Item) {
		if considerSelectableFlag && !item.IsSelectable() {
			return
		}
		if item.IsSelected() {
			return
		}
		item.SetSelected(true)
		if x.listener != nil {
			x.listener(item, true)
		}
	})
	if x.selectWithItemUpdate {
		x.composer.NotifyAdapterDataSetChanged()
	}
}

// DeselectAll deselects every item reachable through the full recursive item
// graph.
func (x *SelectExtension) DeselectAll() {
	x.composer.EachItem(func(item Item) {
		if !item.IsSelected() {
			return
		}
		item.SetSelected(false)
		if x.listener != nil {
			x.listener(item, false)
		}
	})
	if x.selectWithItemUpdate {
		x.composer.NotifyAdapterDataSetChanged()
	}
}

// deselectAllExcept enforces the single select invariant by clearing the full
// recursive selection set, leaving except untouched.
func (x *SelectExtension) deselectAllExcept(except Item, fireEvent bool) {
	var cleared []Item
	x.composer.EachItem(func(item Item) {
		if item == except || !item.IsSelected() {
			return
		}
		item.SetSelected(false)
		cleared = append(cleared, item)
	})
	for _, item := range cleared {
		if position := x.composer.Position(item.Identifier()); position >= 0 {
			x.notifyChanged(position)
		}
		if fireEvent && x.listener != nil {
			x.listener(item, false)
		}
	}
}

// SelectedItems returns every selected item in the full recursive item
// graph, including collapsed sub items.
func (x *SelectExtension) SelectedItems() []Item {
	var selected []Item
	x.composer.EachItem(func(item Item) {
		if item.IsSelected() {
			selected = append(selected, item)
		}
	})
	return selected
}

// Selections returns the global positions of the currently visible selected
// items, in ascending order.
func (x *SelectExtension) Selections() []int {
	var positions []int
	count := x.composer.ItemCount()
	for position := 0; position < count; position++ {
		if item := x.composer.Item(position); item != nil && item.IsSelected() {
			positions = append(positions, position)
		}
	}
	return positions
}

// DeleteAllSelectedItems removes every selected item. Visible items are
// removed position-based in descending order so earlier removals cannot
// invalidate later positions; an expanded parent takes its materialized run
// of descendants with it, keeping the backing list flattened. Selected sub
// items are detached directly from their parent's sub item list, no position
// needed. Returns the deleted items.
func (x *SelectExtension) DeleteAllSelectedItems() []Item {
	var deleted []Item

	// Visible selected items, removed back to front.
	positions := x.Selections()
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))
	for _, position := range positions {
		info, ok := x.composer.RelativeInfo(position)
		if !ok || info.Item == nil {
			continue
		}
		if sub, okSub := AsSubItem(info.Item); okSub {
			if parent := sub.Parent(); parent != nil {
				detachSubItem(parent, info.Item)
			}
		}
		if mutable, okMutable := AsMutableAdapter(info.Adapter); okMutable {
			count := 1
			if expandable, okExp := AsExpandable(info.Item); okExp && expandable.IsExpanded() {
				count += countVisibleDescendants(expandable)
				expandable.SetExpanded(false)
			}
			deleted = append(deleted, info.Item)
			mutable.RemoveItemRange(info.Position, count)
		}
	}

	// Hidden selected sub items, detached from their in-memory parents.
	type detach struct {
		parent Expandable
		item   Item
	}
	var detaches []detach
	x.composer.EachItem(func(item Item) {
		expandable, ok := AsExpandable(item)
		if !ok {
			return
		}
		// A visible expanded parent's children occupy adapter slots and were
		// handled by the position-based pass above.
		if expandable.IsExpanded() && x.composer.Position(expandable.Identifier()) >= 0 {
			return
		}
		for _, sub := range SubItemsOf(expandable) {
			if sub.IsSelected() {
				detaches = append(detaches, detach{parent: expandable, item: sub})
			}
		}
	})
	for _, d := range detaches {
		if detachSubItem(d.parent, d.item) {
			deleted = append(deleted, d.item)
		}
	}
	return deleted
}

func detachSubItem(parent Expandable, item Item) bool {
	subItems := parent.SubItems()
	for i, sub := range subItems {
		if sub == item {
			parent.SetSubItems(append(subItems[:i:i], subItems[i+1:]...))
			return true
		}
	}
	return false
}

func (x *SelectExtension) notifyChanged(position int) {
	if x.selectWithItemUpdate && position >= 0 {
		x.composer.NotifyAdapterItemRangeChanged(position, 1, nil)
	}
}

// bundleKeySelections suffixes the bundle prefix for persisted selections.
const bundleKeySelections = "bundle_selections"

// SaveInstanceState writes the identifiers of every selected item, including
// collapsed sub items, into the bundle.
func (x *SelectExtension) SaveInstanceState(bundle *Bundle, prefix string) {
	var ids []int64
	for _, item := range x.SelectedItems() {
		ids = append(ids, item.Identifier())
	}
	bundle.PutIDs(prefix+bundleKeySelections, ids)
}

// RestoreInstanceState re-selects every item whose identifier was saved.
func (x *SelectExtension) RestoreInstanceState(bundle *Bundle, prefix string) {
	ids := bundle.IDs(prefix + bundleKeySelections)
	if len(ids) == 0 {
		return
	}
	saved := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		saved[id] = struct{}{}
	}
	x.composer.EachItem(func(item Item) {
		if _, ok := saved[item.Identifier()]; ok {
			item.SetSelected(true)
		}
	})
}
