package fastadapter

// ListObserver receives the granular change events emitted by an [ItemList].
// All positions are local to the list.
type ListObserver interface {
	OnInserted(position, count int)
	OnRemoved(position, count int)
	OnMoved(fromPosition, toPosition int)
	OnChanged(position, count int, payload any)
	OnReset()
}

// ItemList is the ordered, mutable backing sequence of items owned by exactly
// one adapter. Its order always matches what is currently represented for that
// adapter's slice of the global sequence; expanded children occupy contiguous
// positions immediately after their parent.
//
// Every mutation reports a single granular event to the observer before the
// mutating call returns. Out-of-range positions are tolerated as no-ops.
type ItemList struct {
	items    []Item
	observer ListObserver
}

// NewItemList returns an empty item list.
func NewItemList() *ItemList {
	return &ItemList{}
}

// SetObserver sets the observer receiving this list's change events.
func (l *ItemList) SetObserver(observer ListObserver) *ItemList {
	l.observer = observer
	return l
}

// Len returns the number of items in the list.
func (l *ItemList) Len() int {
	return len(l.items)
}

// Get returns the item at the given position, or nil if the position is out
// of range.
func (l *ItemList) Get(position int) Item {
	if position < 0 || position >= len(l.items) {
		return nil
	}
	return l.items[position]
}

// Items returns the backing slice. Callers must not mutate it directly; use
// the list operations so change events are emitted.
func (l *ItemList) Items() []Item {
	return l.items
}

// Add appends items to the end of the list.
func (l *ItemList) Add(items ...Item) {
	l.AddAt(len(l.items), items...)
}

// AddAt inserts items at the given position. Positions outside [0, Len] are
// ignored.
func (l *ItemList) AddAt(position int, items ...Item) {
	if len(items) == 0 || position < 0 || position > len(l.items) {
		return
	}
	l.items = append(l.items, make([]Item, len(items))...)
	copy(l.items[position+len(items):], l.items[position:])
	copy(l.items[position:], items)
	if l.observer != nil {
		l.observer.OnInserted(position, len(items))
	}
}

// Set replaces the item at the given position, reporting a change event with
// the given payload.
func (l *ItemList) Set(position int, item Item, payload any) {
	if position < 0 || position >= len(l.items) {
		return
	}
	l.items[position] = item
	if l.observer != nil {
		l.observer.OnChanged(position, 1, payload)
	}
}

// Move moves the item at fromPosition to toPosition.
func (l *ItemList) Move(fromPosition, toPosition int) {
	size := len(l.items)
	if fromPosition < 0 || fromPosition >= size || toPosition < 0 || toPosition >= size || fromPosition == toPosition {
		return
	}
	item := l.items[fromPosition]
	if fromPosition < toPosition {
		copy(l.items[fromPosition:], l.items[fromPosition+1:toPosition+1])
	} else {
		copy(l.items[toPosition+1:], l.items[toPosition:fromPosition])
	}
	l.items[toPosition] = item
	if l.observer != nil {
		l.observer.OnMoved(fromPosition, toPosition)
	}
}

// Remove removes the item at the given position.
func (l *ItemList) Remove(position int) {
	l.RemoveRange(position, 1)
}

// RemoveRange removes count items starting at the given position. The count
// is clamped to the end of the list.
func (l *ItemList) RemoveRange(position, count int) {
	if position < 0 || position >= len(l.items) || count <= 0 {
		return
	}
	if position+count > len(l.items) {
		count = len(l.items) - position
	}
	l.items = append(l.items[:position], l.items[position+count:]...)
	if l.observer != nil {
		l.observer.OnRemoved(position, count)
	}
}

// Clear removes all items from the list.
func (l *ItemList) Clear() {
	count := len(l.items)
	if count == 0 {
		return
	}
	l.items = l.items[:0]
	if l.observer != nil {
		l.observer.OnRemoved(0, count)
	}
}

// SetNewList replaces the whole list content. When notify is true a reset
// event is emitted; when false the swap is silent, which the diff engine uses
// to replace the list in the same logical instant as dispatching its edit
// script.
func (l *ItemList) SetNewList(items []Item, notify bool) {
	l.items = append(l.items[:0:0], items...)
	if notify && l.observer != nil {
		l.observer.OnReset()
	}
}
