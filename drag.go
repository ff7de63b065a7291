package fastadapter

// DragExtensionKey is the registration key of the drag extension.
const DragExtensionKey = "drag"

// DragExtensionFactory registers a [DragExtension] with a composer.
var DragExtensionFactory = ExtensionFactory{
	Key: DragExtensionKey,
	New: func(composer *Composer) Extension {
		return &DragExtension{composer: composer}
	},
}

// DragExtensionOf returns the drag extension registered with the composer,
// or nil.
func DragExtensionOf(composer *Composer) *DragExtension {
	extension, _ := composer.Extension(DragExtensionKey).(*DragExtension)
	return extension
}

// DragExtension moves items within the global position space in response to
// drag gestures recognized by the host. Gesture recognition itself is the
// host's concern; this extension owns only the position bookkeeping. Moves
// never cross adapter boundaries.
type DragExtension struct {
	ExtensionBase

	composer *Composer
	enabled  bool

	dropListener func(fromPosition, toPosition int)
}

// SetDragEnabled toggles the extension as a whole. Individual items opt in
// through the draggable capability.
func (x *DragExtension) SetDragEnabled(enabled bool) *DragExtension {
	x.enabled = enabled
	return x
}

// IsDragEnabled returns whether the extension handles moves at all.
func (x *DragExtension) IsDragEnabled() bool {
	return x.enabled
}

// SetDropListener sets a callback fired when a drag sequence settles.
func (x *DragExtension) SetDropListener(listener func(fromPosition, toPosition int)) *DragExtension {
	x.dropListener = listener
	return x
}

// ItemTouchOnMove moves the item at fromPosition to toPosition, both global.
// The move is refused when the extension is disabled, either position does
// not resolve, the positions belong to different adapters, the dragged item
// lacks the draggable capability, or the adapter is not mutable. Returns
// whether the move was performed.
func (x *DragExtension) ItemTouchOnMove(fromPosition, toPosition int) bool {
	if !x.enabled {
		return false
	}
	from, okFrom := x.composer.RelativeInfo(fromPosition)
	to, okTo := x.composer.RelativeInfo(toPosition)
	if !okFrom || !okTo || from.Item == nil || to.Item == nil {
		return false
	}
	if from.Adapter != to.Adapter {
		return false
	}
	draggable, ok := AsDraggable(from.Item)
	if !ok || !draggable.IsDraggable() {
		return false
	}
	mutable, ok := AsMutableAdapter(from.Adapter)
	if !ok {
		return false
	}
	mutable.MoveItem(from.Position, to.Position)
	return true
}

// ItemTouchDropped reports the end of a drag sequence to the drop listener.
func (x *DragExtension) ItemTouchDropped(fromPosition, toPosition int) {
	if x.dropListener != nil {
		x.dropListener(fromPosition, toPosition)
	}
}
