package fastadapter

// Adapter is one independently-owned slice of the global item sequence
// presented by a [Composer]. Many adapters can be registered with one
// composer; their order keys determine the global sequencing.
type Adapter interface {
	// Order returns the order key of this adapter within its composer. The
	// composer assigns it at registration time; it equals the adapter's index
	// in the registration table.
	Order() int
	// SetOrder is called by the composer when the registration table changes.
	SetOrder(order int)

	// Count returns the number of items currently held by this adapter.
	Count() int
	// Item returns the item at the given local position, or nil if the
	// position is out of range.
	Item(position int) Item
	// Items returns the adapter's current items in order.
	Items() []Item

	// Composer returns the composer this adapter is registered with, or nil.
	Composer() *Composer
	// SetComposer is called by the composer at registration time.
	SetComposer(composer *Composer)
}

// MutableAdapter is the capability of adapters whose backing list can be
// mutated in item space. The expand and drag extensions require it to
// materialize children and to move items.
type MutableAdapter interface {
	Adapter

	// InsertItems inserts items at the given local position.
	InsertItems(position int, items []Item)
	// RemoveItemRange removes count items starting at the given local
	// position.
	RemoveItemRange(position, count int)
	// MoveItem moves an item between two local positions.
	MoveItem(fromPosition, toPosition int)
}

// AsMutableAdapter probes adapter for the mutable capability.
func AsMutableAdapter(adapter Adapter) (MutableAdapter, bool) {
	m, ok := adapter.(MutableAdapter)
	return m, ok && m != nil
}

// ItemAdapter is a flat list adapter whose models are the items themselves.
// It is the default adapter for most lists.
type ItemAdapter struct {
	ModelAdapter[Item]
}

// NewItemAdapter returns an empty item adapter.
func NewItemAdapter() *ItemAdapter {
	a := &ItemAdapter{}
	a.init(func(item Item) Item { return item })
	return a
}
