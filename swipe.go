package fastadapter

// SwipeExtensionKey is the registration key of the swipe extension.
const SwipeExtensionKey = "swipe"

// SwipeExtensionFactory registers a [SwipeExtension] with a composer.
var SwipeExtensionFactory = ExtensionFactory{
	Key: SwipeExtensionKey,
	New: func(composer *Composer) Extension {
		return &SwipeExtension{
			composer: composer,
			swiped:   map[int64]SwipeDirection{},
		}
	},
}

// SwipeExtensionOf returns the swipe extension registered with the composer,
// or nil.
func SwipeExtensionOf(composer *Composer) *SwipeExtension {
	extension, _ := composer.Extension(SwipeExtensionKey).(*SwipeExtension)
	return extension
}

// SwipeDirection tells which way an item was swiped out.
type SwipeDirection int

const (
	SwipeLeft SwipeDirection = iota
	SwipeRight
)

// SwipeExtension tracks the swiped-out state of items by identifier. The
// swipe gesture itself is recognized by the host; the extension owns the
// state bookkeeping and the change notification that lets the host render
// the swiped (e.g. undo) representation.
type SwipeExtension struct {
	ExtensionBase

	composer *Composer
	swiped   map[int64]SwipeDirection

	listener func(item Item, position int, direction SwipeDirection)
}

// SetSwipeListener sets a callback fired when an item is swiped out.
func (x *SwipeExtension) SetSwipeListener(listener func(item Item, position int, direction SwipeDirection)) *SwipeExtension {
	x.listener = listener
	return x
}

// ItemSwiped marks the item at the given global position as swiped out.
// Unresolvable positions and items without the swipeable capability are
// silent no-ops.
func (x *SwipeExtension) ItemSwiped(position int, direction SwipeDirection) {
	item := x.composer.Item(position)
	if item == nil {
		return
	}
	swipeable, ok := AsSwipeable(item)
	if !ok || !swipeable.IsSwipeable() {
		return
	}
	x.swiped[item.Identifier()] = direction
	x.composer.NotifyAdapterItemRangeChanged(position, 1, nil)
	if x.listener != nil {
		x.listener(item, position, direction)
	}
}

// ClearSwiped unmarks the item at the given global position, typically after
// an undo.
func (x *SwipeExtension) ClearSwiped(position int) {
	item := x.composer.Item(position)
	if item == nil {
		return
	}
	if _, ok := x.swiped[item.Identifier()]; !ok {
		return
	}
	delete(x.swiped, item.Identifier())
	x.composer.NotifyAdapterItemRangeChanged(position, 1, nil)
}

// IsSwiped returns whether the item is currently marked swiped out, and in
// which direction.
func (x *SwipeExtension) IsSwiped(item Item) (SwipeDirection, bool) {
	direction, ok := x.swiped[item.Identifier()]
	return direction, ok
}

// NotifyAdapterDataSetChanged drops all swiped state; a full reset means the
// identifiers can no longer be trusted to be present.
func (x *SwipeExtension) NotifyAdapterDataSetChanged() {
	clear(x.swiped)
}
