package fastadapter

import "fmt"

// Notifier is the notification sink supplied by the host list widget. The
// composer forwards every structural change, translated into global
// positions, as exactly one call on this interface.
type Notifier interface {
	ItemsInserted(position, count int)
	ItemsRemoved(position, count int)
	ItemMoved(fromPosition, toPosition int)
	ItemsChanged(position, count int, payload any)
	DataSetChanged()
}

// RelativeInfo resolves a global position into the owning adapter, the local
// position within it, and the item found there. It is the canonical reverse
// mapping primitive; all position-dependent operations build on it.
type RelativeInfo struct {
	Adapter  Adapter
	Item     Item
	Position int
}

// ClickListener is notified of a (long) click on an item. Returning true
// marks the event consumed; consumption is advisory and does not stop the
// dispatch to later listeners.
type ClickListener func(item Item, adapter Adapter, position int) bool

// TouchListener is notified of a raw touch event on an item.
type TouchListener func(item Item, adapter Adapter, position int, event any) bool

// Composer presents the items of any number of registered adapters as a
// single contiguous index space [0, ItemCount). It translates between global
// and local positions, relays every adapter's structural notifications to the
// bound host notifier, and dispatches UI events to the registered extensions
// in registration order.
//
// A composer and its extensions live for the lifetime of the bound host
// widget and are driven entirely by a single thread; see the package
// documentation for the threading contract.
type Composer struct {
	// adapters is ordered by order key; an adapter's order key equals its
	// index here, maintained on every registration change.
	adapters []Adapter

	notifier  Notifier
	typeCache *TypeInstanceCache

	extensions    []Extension
	extensionKeys map[string]Extension

	// prefix[i] is the number of items owned by adapters before index i.
	// Rebuilt lazily; any registration change or relayed mutation
	// invalidates it.
	prefix      []int
	prefixTotal int
	prefixValid bool

	preClick      ClickListener
	click         ClickListener
	preLongClick  ClickListener
	longClick     ClickListener
	touchListener TouchListener
}

// ExtensionFactory creates an extension bound to a composer. Factories are
// resolved at composer construction, in the order given, so each composer
// owns its extension instances and the dispatch order is explicit.
type ExtensionFactory struct {
	Key string
	New func(composer *Composer) Extension
}

// NewComposer returns a composer with the given extensions registered in
// order.
func NewComposer(factories ...ExtensionFactory) *Composer {
	c := &Composer{
		typeCache:     NewTypeInstanceCache(),
		extensionKeys: map[string]Extension{},
	}
	for _, factory := range factories {
		c.RegisterExtension(factory.Key, factory.New(c))
	}
	return c
}

// SetNotifier binds the host widget's notification sink.
func (c *Composer) SetNotifier(notifier Notifier) *Composer {
	c.notifier = notifier
	return c
}

// AddAdapter registers an adapter at the end of the registration table,
// assigning it the next order key.
func (c *Composer) AddAdapter(adapter Adapter) *Composer {
	return c.AddAdapterAt(len(c.adapters), adapter)
}

// AddAdapterAt registers an adapter at the given index of the registration
// table. The order keys of all following adapters shift up by one.
func (c *Composer) AddAdapterAt(index int, adapter Adapter) *Composer {
	if index < 0 || index > len(c.adapters) {
		return c
	}
	c.adapters = append(c.adapters, nil)
	copy(c.adapters[index+1:], c.adapters[index:])
	c.adapters[index] = adapter
	adapter.SetComposer(c)
	c.reassignOrders()
	c.invalidateCounts()
	for _, item := range adapter.Items() {
		c.RegisterTypeInstance(item)
	}
	return c
}

// RemoveAdapter unregisters the adapter with the given order key.
func (c *Composer) RemoveAdapter(order int) *Composer {
	if order < 0 || order >= len(c.adapters) {
		return c
	}
	removed := c.adapters[order]
	c.adapters = append(c.adapters[:order], c.adapters[order+1:]...)
	removed.SetComposer(nil)
	removed.SetOrder(-1)
	c.reassignOrders()
	c.invalidateCounts()
	return c
}

// Adapter returns the adapter with the given order key, or nil.
func (c *Composer) Adapter(order int) Adapter {
	if order < 0 || order >= len(c.adapters) {
		return nil
	}
	return c.adapters[order]
}

// AdapterCount returns the number of registered adapters.
func (c *Composer) AdapterCount() int {
	return len(c.adapters)
}

func (c *Composer) reassignOrders() {
	for i, adapter := range c.adapters {
		adapter.SetOrder(i)
	}
}

// invalidateCounts drops the cached prefix sums. A stale cache is a
// correctness bug, so every registration change and every relayed structural
// notification goes through here.
func (c *Composer) invalidateCounts() {
	c.prefixValid = false
}

func (c *Composer) cacheCounts() {
	if c.prefixValid {
		return
	}
	c.prefix = c.prefix[:0]
	total := 0
	for _, adapter := range c.adapters {
		c.prefix = append(c.prefix, total)
		total += adapter.Count()
	}
	c.prefixTotal = total
	c.prefixValid = true
}

// ItemCount returns the total number of items across all registered
// adapters.
func (c *Composer) ItemCount() int {
	c.cacheCounts()
	return c.prefixTotal
}

// PreItemCount returns the number of items owned by adapters with a lower
// order key. Extensions and the diff engine use it to translate between
// local and global positions.
func (c *Composer) PreItemCount(order int) int {
	c.cacheCounts()
	if order < 0 || order >= len(c.prefix) {
		return c.prefixTotal
	}
	return c.prefix[order]
}

// Item returns the item at the given global position, or nil if the position
// is out of range. This is the hot path lookup; it never panics.
func (c *Composer) Item(position int) Item {
	info, ok := c.RelativeInfo(position)
	if !ok {
		return nil
	}
	return info.Item
}

// RelativeInfo resolves a global position into its owning adapter and local
// position. The second return value is false when the position is out of
// range.
func (c *Composer) RelativeInfo(position int) (RelativeInfo, bool) {
	if position < 0 {
		return RelativeInfo{}, false
	}
	c.cacheCounts()
	if position >= c.prefixTotal {
		return RelativeInfo{}, false
	}
	// The prefix sums are monotonic; walk to the last adapter whose prefix
	// is <= position. The adapter count is small, so a linear walk beats
	// maintaining a search structure.
	for i := len(c.adapters) - 1; i >= 0; i-- {
		if c.prefix[i] <= position {
			adapter := c.adapters[i]
			local := position - c.prefix[i]
			return RelativeInfo{
				Adapter:  adapter,
				Item:     adapter.Item(local),
				Position: local,
			}, true
		}
	}
	return RelativeInfo{}, false
}

// GlobalPosition translates an adapter-local position into the global index
// space.
func (c *Composer) GlobalPosition(adapter Adapter, position int) int {
	return c.PreItemCount(adapter.Order()) + position
}

// Position returns the global position of the item with the given
// identifier, or -1 if no registered adapter holds it in its backing list.
func (c *Composer) Position(identifier int64) int {
	offset := 0
	for _, adapter := range c.adapters {
		for i, item := range adapter.Items() {
			if item.Identifier() == identifier {
				return offset + i
			}
		}
		offset += adapter.Count()
	}
	return -1
}

// EachItem visits every item owned by the registered adapters in order,
// descending into sub items even while they are hidden under a collapsed
// ancestor.
func (c *Composer) EachItem(visit func(item Item)) {
	for _, adapter := range c.adapters {
		for _, item := range adapter.Items() {
			eachItemRecursive(item, true, visit)
		}
	}
}

// visible tells whether item occupies an adapter slot. Children of a visible
// expanded item hold slots of their own and are visited through those; a
// hidden item's children are never materialized, so its subtree is walked
// even when the item still carries a remembered expanded flag.
func eachItemRecursive(item Item, visible bool, visit func(item Item)) {
	visit(item)
	expandable, ok := AsExpandable(item)
	if !ok {
		return
	}
	if visible && expandable.IsExpanded() {
		return
	}
	for _, sub := range SubItemsOf(expandable) {
		eachItemRecursive(sub, false, visit)
	}
}

// RegisterExtension appends an extension under the given key. Registration
// order is dispatch order. Registering the same key twice panics; that is a
// programming defect, not a runtime condition.
func (c *Composer) RegisterExtension(key string, extension Extension) *Composer {
	if _, exists := c.extensionKeys[key]; exists {
		panic(fmt.Sprintf("fastadapter: extension %q registered twice", key))
	}
	c.extensionKeys[key] = extension
	c.extensions = append(c.extensions, extension)
	return c
}

// Extension returns the extension registered under the given key, or nil.
func (c *Composer) Extension(key string) Extension {
	return c.extensionKeys[key]
}

// RegisterTypeInstance stores item as the representative instance for its
// type, returning false if the type was already registered.
func (c *Composer) RegisterTypeInstance(item Item) bool {
	return c.typeCache.Register(item)
}

// TypeInstance returns the representative item registered for the given
// type. It panics for unregistered types; see [TypeInstanceCache.Get].
func (c *Composer) TypeInstance(typeID int) Item {
	return c.typeCache.Get(typeID)
}

// CreateViewHolder creates a view holder for the given item type through the
// representative item's view providing capability. Calling this with no
// registered adapters, or for a type whose representative cannot provide
// views, is a configuration error and panics.
func (c *Composer) CreateViewHolder(typeID int) any {
	if len(c.adapters) == 0 {
		panic("fastadapter: CreateViewHolder called with no registered adapters")
	}
	item := c.typeCache.Get(typeID)
	provider, ok := AsViewProviding(item)
	if !ok {
		panic(fmt.Sprintf("fastadapter: item type %d cannot provide views", typeID))
	}
	return provider.CreateViewHolder()
}

// BindView binds the item at the given global position to the holder.
// Unresolvable positions are a no-op.
func (c *Composer) BindView(position int, holder any, payloads ...any) {
	item := c.Item(position)
	if item == nil {
		return
	}
	if provider, ok := AsViewProviding(item); ok {
		provider.BindView(holder, payloads)
	}
}

// UnbindView releases the given item from the holder.
func (c *Composer) UnbindView(item Item, holder any) {
	if item == nil {
		return
	}
	if provider, ok := AsViewProviding(item); ok {
		provider.UnbindView(holder)
	}
}

// SetOnPreClickListener sets the listener invoked before any extension sees a
// click.
func (c *Composer) SetOnPreClickListener(listener ClickListener) *Composer {
	c.preClick = listener
	return c
}

// SetOnClickListener sets the listener invoked after the extensions saw a
// click.
func (c *Composer) SetOnClickListener(listener ClickListener) *Composer {
	c.click = listener
	return c
}

// SetOnPreLongClickListener sets the listener invoked before any extension
// sees a long click.
func (c *Composer) SetOnPreLongClickListener(listener ClickListener) *Composer {
	c.preLongClick = listener
	return c
}

// SetOnLongClickListener sets the listener invoked after the extensions saw a
// long click.
func (c *Composer) SetOnLongClickListener(listener ClickListener) *Composer {
	c.longClick = listener
	return c
}

// SetOnTouchListener sets the listener invoked after the extensions saw a
// touch event.
func (c *Composer) SetOnTouchListener(listener TouchListener) *Composer {
	c.touchListener = listener
	return c
}

// Click dispatches a click at the given global position: pre listener first,
// then every extension in registration order, then the click listener.
// Consumption is advisory; every stage runs regardless. Returns whether any
// stage consumed the event. Unresolvable positions and disabled items are
// ignored.
func (c *Composer) Click(position int) bool {
	info, ok := c.RelativeInfo(position)
	if !ok || info.Item == nil || !info.Item.IsEnabled() {
		return false
	}
	consumed := false
	if c.preClick != nil && c.preClick(info.Item, info.Adapter, position) {
		consumed = true
	}
	for _, extension := range c.extensions {
		if extension.Click(info.Item, position) {
			consumed = true
		}
	}
	if c.click != nil && c.click(info.Item, info.Adapter, position) {
		consumed = true
	}
	return consumed
}

// LongClick dispatches a long click at the given global position, in the same
// order as [Composer.Click].
func (c *Composer) LongClick(position int) bool {
	info, ok := c.RelativeInfo(position)
	if !ok || info.Item == nil || !info.Item.IsEnabled() {
		return false
	}
	consumed := false
	if c.preLongClick != nil && c.preLongClick(info.Item, info.Adapter, position) {
		consumed = true
	}
	for _, extension := range c.extensions {
		if extension.LongClick(info.Item, position) {
			consumed = true
		}
	}
	if c.longClick != nil && c.longClick(info.Item, info.Adapter, position) {
		consumed = true
	}
	return consumed
}

// Touch dispatches a raw touch event at the given global position to every
// extension and then to the touch listener. Unresolvable positions and
// disabled items are ignored, as for [Composer.Click].
func (c *Composer) Touch(position int, event any) bool {
	info, ok := c.RelativeInfo(position)
	if !ok || info.Item == nil || !info.Item.IsEnabled() {
		return false
	}
	consumed := false
	for _, extension := range c.extensions {
		if extension.Touch(info.Item, position, event) {
			consumed = true
		}
	}
	if c.touchListener != nil && c.touchListener(info.Item, info.Adapter, position, event) {
		consumed = true
	}
	return consumed
}

// SaveInstanceState lets every state-saving extension write its state into
// the bundle under the given key prefix.
func (c *Composer) SaveInstanceState(bundle *Bundle, prefix string) {
	for _, extension := range c.extensions {
		if saver, ok := extension.(StateSaver); ok {
			saver.SaveInstanceState(bundle, prefix)
		}
	}
}

// RestoreInstanceState lets every state-saving extension restore its state
// from the bundle under the given key prefix.
func (c *Composer) RestoreInstanceState(bundle *Bundle, prefix string) {
	for _, extension := range c.extensions {
		if saver, ok := extension.(StateSaver); ok {
			saver.RestoreInstanceState(bundle, prefix)
		}
	}
}

// relayInserted translates an adapter-local insertion into global
// coordinates. The backing list has already mutated when this runs, so the
// count cache is stale by definition.
func (c *Composer) relayInserted(adapter Adapter, position, count int) {
	c.invalidateCounts()
	c.NotifyAdapterItemRangeInserted(c.GlobalPosition(adapter, position), count)
}

func (c *Composer) relayRemoved(adapter Adapter, position, count int) {
	c.invalidateCounts()
	c.NotifyAdapterItemRangeRemoved(c.GlobalPosition(adapter, position), count)
}

func (c *Composer) relayMoved(adapter Adapter, fromPosition, toPosition int) {
	c.invalidateCounts()
	pre := c.PreItemCount(adapter.Order())
	c.NotifyAdapterItemMoved(pre+fromPosition, pre+toPosition)
}

func (c *Composer) relayChanged(adapter Adapter, position, count int, payload any) {
	c.NotifyAdapterItemRangeChanged(c.GlobalPosition(adapter, position), count, payload)
}

// notifySet informs the extensions that an adapter's content was replaced
// wholesale, before the reset notification goes out.
func (c *Composer) notifySet(items []Item, resetFilter bool) {
	for _, extension := range c.extensions {
		extension.Set(items, resetFilter)
	}
}

func (c *Composer) relayReset(adapter Adapter) {
	c.invalidateCounts()
	c.NotifyAdapterDataSetChanged()
}

// NotifyAdapterItemRangeInserted forwards an insertion in global coordinates
// to every extension and then to the host notifier.
func (c *Composer) NotifyAdapterItemRangeInserted(position, count int) {
	c.invalidateCounts()
	for _, extension := range c.extensions {
		extension.NotifyAdapterItemRangeInserted(position, count)
	}
	if c.notifier != nil {
		c.notifier.ItemsInserted(position, count)
	}
}

// NotifyAdapterItemRangeRemoved forwards a removal in global coordinates to
// every extension and then to the host notifier.
func (c *Composer) NotifyAdapterItemRangeRemoved(position, count int) {
	c.invalidateCounts()
	for _, extension := range c.extensions {
		extension.NotifyAdapterItemRangeRemoved(position, count)
	}
	if c.notifier != nil {
		c.notifier.ItemsRemoved(position, count)
	}
}

// NotifyAdapterItemMoved forwards a move in global coordinates to every
// extension and then to the host notifier.
func (c *Composer) NotifyAdapterItemMoved(fromPosition, toPosition int) {
	c.invalidateCounts()
	for _, extension := range c.extensions {
		extension.NotifyAdapterItemMoved(fromPosition, toPosition)
	}
	if c.notifier != nil {
		c.notifier.ItemMoved(fromPosition, toPosition)
	}
}

// NotifyAdapterItemRangeChanged forwards a content change in global
// coordinates to every extension and then to the host notifier.
func (c *Composer) NotifyAdapterItemRangeChanged(position, count int, payload any) {
	for _, extension := range c.extensions {
		extension.NotifyAdapterItemRangeChanged(position, count, payload)
	}
	if c.notifier != nil {
		c.notifier.ItemsChanged(position, count, payload)
	}
}

// NotifyAdapterDataSetChanged forwards a full reset to every extension and
// then to the host notifier.
func (c *Composer) NotifyAdapterDataSetChanged() {
	c.invalidateCounts()
	for _, extension := range c.extensions {
		extension.NotifyAdapterDataSetChanged()
	}
	if c.notifier != nil {
		c.notifier.DataSetChanged()
	}
}
