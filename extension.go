package fastadapter

// Extension is a pluggable behavior module observing and mutating the shared
// item and position space of a composer. Extensions are created once per
// composer, receive every UI event and every structural notification in
// registration order, and are torn down with the composer.
//
// The consumed results of the event methods are advisory: a consuming
// extension does not stop the dispatch to later extensions.
type Extension interface {
	// Click is invoked for a click on the given item at a global position.
	Click(item Item, position int) bool
	// LongClick is invoked for a long click on the given item at a global
	// position.
	LongClick(item Item, position int) bool
	// Touch is invoked for a raw touch event on the given item at a global
	// position.
	Touch(item Item, position int, event any) bool

	// Set is invoked when an adapter's content is replaced wholesale.
	Set(items []Item, resetFilter bool)
	// PerformFiltering is invoked when a filter constraint is applied.
	PerformFiltering(constraint string)

	// The notify family mirrors the structural notifications relayed through
	// the composer; positions are global.
	NotifyAdapterDataSetChanged()
	NotifyAdapterItemRangeInserted(position, count int)
	NotifyAdapterItemRangeRemoved(position, count int)
	NotifyAdapterItemMoved(fromPosition, toPosition int)
	NotifyAdapterItemRangeChanged(position, count int, payload any)
}

// StateSaver is the optional capability of extensions that persist state
// across process recreation, keyed by item identifiers in a [Bundle].
type StateSaver interface {
	SaveInstanceState(bundle *Bundle, prefix string)
	RestoreInstanceState(bundle *Bundle, prefix string)
}

// ExtensionBase is a no-op implementation of [Extension] meant to be embedded
// by extensions that only care about a subset of the contract.
type ExtensionBase struct{}

func (ExtensionBase) Click(item Item, position int) bool                          { return false }
func (ExtensionBase) LongClick(item Item, position int) bool                      { return false }
func (ExtensionBase) Touch(item Item, position int, event any) bool               { return false }
func (ExtensionBase) Set(items []Item, resetFilter bool)                          {}
func (ExtensionBase) PerformFiltering(constraint string)                          {}
func (ExtensionBase) NotifyAdapterDataSetChanged()                                {}
func (ExtensionBase) NotifyAdapterItemRangeInserted(position, count int)          {}
func (ExtensionBase) NotifyAdapterItemRangeRemoved(position, count int)           {}
func (ExtensionBase) NotifyAdapterItemMoved(fromPosition, toPosition int)         {}
func (ExtensionBase) NotifyAdapterItemRangeChanged(position, count int, p any)    {}
