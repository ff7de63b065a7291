package fastadapter

import "sort"

// sharedIDDistributor backs all adapters that don't set their own
// distributor. A single decreasing counter keeps generated identifiers unique
// across every adapter of the process.
var sharedIDDistributor = NewIDDistributor()

// ModelAdapter is an adapter that represents models of an arbitrary type as
// items. An interceptor function maps each model to its item; models mapped to
// nil are skipped. The adapter owns its backing [ItemList] and relays the
// list's change events to its composer, which translates the local positions
// into global ones.
type ModelAdapter[M any] struct {
	list      *ItemList
	intercept func(model M) Item

	order    int
	composer *Composer

	idDistribution bool
	distributor    *IDDistributor

	less func(a, b Item) bool
}

// NewModelAdapter returns an empty model adapter using the given interceptor.
func NewModelAdapter[M any](intercept func(model M) Item) *ModelAdapter[M] {
	a := &ModelAdapter[M]{}
	a.init(intercept)
	return a
}

func (a *ModelAdapter[M]) init(intercept func(model M) Item) {
	a.list = NewItemList().SetObserver(a)
	a.intercept = intercept
	a.order = -1
	a.idDistribution = true
}

// SetIDDistribution toggles automatic identifier assignment for items added
// to this adapter. Enabled by default.
func (a *ModelAdapter[M]) SetIDDistribution(enabled bool) *ModelAdapter[M] {
	a.idDistribution = enabled
	return a
}

// SetIDDistributor replaces the distributor used for automatic identifier
// assignment. All adapters share one distributor unless overridden.
func (a *ModelAdapter[M]) SetIDDistributor(distributor *IDDistributor) *ModelAdapter[M] {
	a.distributor = distributor
	return a
}

// SetComparator sets an item ordering that the diff engine applies to new
// lists during its prepare step. Set to nil to keep lists unsorted.
func (a *ModelAdapter[M]) SetComparator(less func(a, b Item) bool) *ModelAdapter[M] {
	a.less = less
	return a
}

// Order returns the order key assigned by the composer, or -1 while
// unregistered.
func (a *ModelAdapter[M]) Order() int {
	return a.order
}

// SetOrder is called by the composer when the registration table changes.
func (a *ModelAdapter[M]) SetOrder(order int) {
	a.order = order
}

// Composer returns the composer this adapter is registered with, or nil.
func (a *ModelAdapter[M]) Composer() *Composer {
	return a.composer
}

// SetComposer is called by the composer at registration time.
func (a *ModelAdapter[M]) SetComposer(composer *Composer) {
	a.composer = composer
}

// Count returns the number of items currently held by this adapter.
func (a *ModelAdapter[M]) Count() int {
	return a.list.Len()
}

// Item returns the item at the given local position, or nil if out of range.
func (a *ModelAdapter[M]) Item(position int) Item {
	return a.list.Get(position)
}

// Items returns the adapter's current items in order. The returned slice is
// the backing slice; do not mutate it directly.
func (a *ModelAdapter[M]) Items() []Item {
	return a.list.Items()
}

// ItemList returns the backing list of this adapter.
func (a *ModelAdapter[M]) ItemList() *ItemList {
	return a.list
}

// Position returns the local position of the item with the given identifier,
// or -1 if this adapter does not hold it.
func (a *ModelAdapter[M]) Position(identifier int64) int {
	for i, item := range a.list.Items() {
		if item.Identifier() == identifier {
			return i
		}
	}
	return -1
}

// Add appends the given models to this adapter.
func (a *ModelAdapter[M]) Add(models ...M) *ModelAdapter[M] {
	a.list.Add(a.interceptAll(models)...)
	return a
}

// AddAt inserts the given models at a local position.
func (a *ModelAdapter[M]) AddAt(position int, models ...M) *ModelAdapter[M] {
	a.list.AddAt(position, a.interceptAll(models)...)
	return a
}

// SetAt replaces the model at a local position.
func (a *ModelAdapter[M]) SetAt(position int, model M) *ModelAdapter[M] {
	if item := a.interceptOne(model); item != nil {
		a.list.Set(position, item, nil)
	}
	return a
}

// Set replaces the whole content of this adapter, emitting a single reset
// notification.
func (a *ModelAdapter[M]) Set(models []M) *ModelAdapter[M] {
	items := a.interceptAll(models)
	if a.composer != nil {
		a.composer.notifySet(items, true)
	}
	a.list.SetNewList(items, true)
	return a
}

// Move moves a model between two local positions.
func (a *ModelAdapter[M]) Move(fromPosition, toPosition int) *ModelAdapter[M] {
	a.list.Move(fromPosition, toPosition)
	return a
}

// Remove removes the model at a local position.
func (a *ModelAdapter[M]) Remove(position int) *ModelAdapter[M] {
	a.list.Remove(position)
	return a
}

// RemoveRange removes count models starting at a local position.
func (a *ModelAdapter[M]) RemoveRange(position, count int) *ModelAdapter[M] {
	a.list.RemoveRange(position, count)
	return a
}

// Clear removes all models from this adapter.
func (a *ModelAdapter[M]) Clear() *ModelAdapter[M] {
	a.list.Clear()
	return a
}

// InsertItems inserts already-built items at a local position. Used by the
// expand extension to materialize children.
func (a *ModelAdapter[M]) InsertItems(position int, items []Item) {
	a.prepareItems(items)
	a.list.AddAt(position, items...)
}

// RemoveItemRange removes count items starting at a local position. Used by
// the expand extension to hide children.
func (a *ModelAdapter[M]) RemoveItemRange(position, count int) {
	a.list.RemoveRange(position, count)
}

// MoveItem moves an item between two local positions. Used by the drag
// extension.
func (a *ModelAdapter[M]) MoveItem(fromPosition, toPosition int) {
	a.list.Move(fromPosition, toPosition)
}

func (a *ModelAdapter[M]) interceptOne(model M) Item {
	item := a.intercept(model)
	if item == nil {
		return nil
	}
	a.prepareItems([]Item{item})
	return item
}

func (a *ModelAdapter[M]) interceptAll(models []M) []Item {
	items := make([]Item, 0, len(models))
	for _, model := range models {
		if item := a.intercept(model); item != nil {
			items = append(items, item)
		}
	}
	a.prepareItems(items)
	return items
}

// prepareItems runs id distribution and type registration over items about to
// enter the backing list.
func (a *ModelAdapter[M]) prepareItems(items []Item) {
	if a.idDistribution {
		distributor := a.distributor
		if distributor == nil {
			distributor = sharedIDDistributor
		}
		distributor.CheckAll(items)
	}
	if a.composer != nil {
		for _, item := range items {
			a.composer.RegisterTypeInstance(item)
		}
	}
}

// sortNewItems applies the configured comparator to a new list before it is
// diffed against the current one.
func (a *ModelAdapter[M]) sortNewItems(items []Item) {
	if a.less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return a.less(items[i], items[j])
	})
}

// OnInserted implements [ListObserver], relaying the local event globally.
func (a *ModelAdapter[M]) OnInserted(position, count int) {
	if a.composer != nil {
		a.composer.relayInserted(a, position, count)
	}
}

// OnRemoved implements [ListObserver], relaying the local event globally.
func (a *ModelAdapter[M]) OnRemoved(position, count int) {
	if a.composer != nil {
		a.composer.relayRemoved(a, position, count)
	}
}

// OnMoved implements [ListObserver], relaying the local event globally.
func (a *ModelAdapter[M]) OnMoved(fromPosition, toPosition int) {
	if a.composer != nil {
		a.composer.relayMoved(a, fromPosition, toPosition)
	}
}

// OnChanged implements [ListObserver], relaying the local event globally.
func (a *ModelAdapter[M]) OnChanged(position, count int, payload any) {
	if a.composer != nil {
		a.composer.relayChanged(a, position, count, payload)
	}
}

// OnReset implements [ListObserver], relaying the local event globally.
func (a *ModelAdapter[M]) OnReset() {
	if a.composer != nil {
		a.composer.relayReset(a)
	}
}
