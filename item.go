package fastadapter

// UnassignedID is the sentinel identifier of an item that has not been
// assigned a stable identity yet. The ID distributor replaces it with a
// generated identifier when distribution is enabled.
const UnassignedID int64 = -1

// Item is an opaque content unit managed by the adapters. Two items with the
// same identifier are considered the same logical entity across adds, removes
// and moves; the diff engine and selection persistence rely on this.
//
// Optional behavior is modeled as capabilities: an item that can own children
// additionally implements [Expandable], an item that knows its parent
// implements [SubItem], and so on. Use the As* helpers to probe for a
// capability instead of asserting concrete types.
type Item interface {
	// Identifier returns the stable 64-bit identity of this item, or
	// [UnassignedID] if none was assigned.
	Identifier() int64
	// SetIdentifier assigns the stable identity of this item.
	SetIdentifier(identifier int64)

	// Type returns the type discriminator of this item. It must be globally
	// unique per visual shape as it selects the view holder factory.
	Type() int

	IsEnabled() bool
	IsSelectable() bool
	IsSelected() bool
	SetSelected(selected bool)

	// Tag returns the arbitrary payload attached to this item, if any.
	Tag() any
	SetTag(tag any)
}

// Expandable is the capability of items that own a hidden sequence of child
// items. The children are materialized in the owning adapter's backing list
// only while the item is expanded; while collapsed they exist only in the
// item's own sub item list.
type Expandable interface {
	Item

	IsExpanded() bool
	SetExpanded(expanded bool)

	// SubItems returns the direct children of this item. May be nil or empty.
	SubItems() []Item
	SetSubItems(subItems []Item)

	// IsAutoExpanding reports whether a click on this item toggles its
	// expansion state.
	IsAutoExpanding() bool
}

// SubItem is the capability of items that carry a back-reference to the
// expandable item owning them. The parent reference is a pure navigation
// relation, never an ownership relation; it is wired lazily whenever a parent's
// sub items are read through [SubItemsOf].
type SubItem interface {
	Item

	Parent() Expandable
	SetParent(parent Expandable)
}

// Draggable is the capability of items that may be moved by the drag
// extension.
type Draggable interface {
	Item

	IsDraggable() bool
}

// Swipeable is the capability of items that may be dismissed by the swipe
// extension.
type Swipeable interface {
	Item

	IsSwipeable() bool
}

// ViewProviding is the capability of items that know how to create and bind
// the view holder for their type. The holder is an opaque handle owned by the
// host widget.
type ViewProviding interface {
	Item

	// CreateViewHolder returns a new, unbound view holder for this item type.
	CreateViewHolder() any
	// BindView binds this item's content to the given view holder.
	BindView(holder any, payloads []any)
	// UnbindView releases the item's content from the given view holder.
	UnbindView(holder any)
}

// AsExpandable probes item for the expandable capability.
func AsExpandable(item Item) (Expandable, bool) {
	e, ok := item.(Expandable)
	return e, ok && e != nil
}

// AsSubItem probes item for the sub item capability.
func AsSubItem(item Item) (SubItem, bool) {
	s, ok := item.(SubItem)
	return s, ok && s != nil
}

// AsDraggable probes item for the draggable capability.
func AsDraggable(item Item) (Draggable, bool) {
	d, ok := item.(Draggable)
	return d, ok && d != nil
}

// AsSwipeable probes item for the swipeable capability.
func AsSwipeable(item Item) (Swipeable, bool) {
	s, ok := item.(Swipeable)
	return s, ok && s != nil
}

// AsViewProviding probes item for the view providing capability.
func AsViewProviding(item Item) (ViewProviding, bool) {
	v, ok := item.(ViewProviding)
	return v, ok && v != nil
}

// SubItemsOf returns the direct children of parent, wiring each child's parent
// back-reference before returning. All structural code reads children through
// this helper so the back-references stay consistent without the parents ever
// owning their children twice.
func SubItemsOf(parent Expandable) []Item {
	subItems := parent.SubItems()
	for _, sub := range subItems {
		if s, ok := AsSubItem(sub); ok {
			s.SetParent(parent)
		}
	}
	return subItems
}

// ItemBase is a ready-made implementation of [Item] meant to be embedded in
// application item types.
type ItemBase struct {
	identifier int64
	typeID     int
	enabled    bool
	selectable bool
	selected   bool
	tag        any
}

// NewItemBase returns an item base for the given type discriminator. The item
// starts enabled, selectable, deselected and without an identifier.
func NewItemBase(typeID int) *ItemBase {
	return &ItemBase{
		identifier: UnassignedID,
		typeID:     typeID,
		enabled:    true,
		selectable: true,
	}
}

// Identifier returns the stable identity of this item.
func (i *ItemBase) Identifier() int64 {
	return i.identifier
}

// SetIdentifier assigns the stable identity of this item.
func (i *ItemBase) SetIdentifier(identifier int64) {
	i.identifier = identifier
}

// Type returns the type discriminator of this item.
func (i *ItemBase) Type() int {
	return i.typeID
}

// IsEnabled returns whether this item reacts to events.
func (i *ItemBase) IsEnabled() bool {
	return i.enabled
}

// SetEnabled sets whether this item reacts to events.
func (i *ItemBase) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsSelectable returns whether this item may be selected.
func (i *ItemBase) IsSelectable() bool {
	return i.selectable
}

// SetSelectable sets whether this item may be selected.
func (i *ItemBase) SetSelectable(selectable bool) {
	i.selectable = selectable
}

// IsSelected returns whether this item is currently selected.
func (i *ItemBase) IsSelected() bool {
	return i.selected
}

// SetSelected sets the selected flag. Application code normally goes through
// the select extension instead, which enforces the selection policies.
func (i *ItemBase) SetSelected(selected bool) {
	i.selected = selected
}

// Tag returns the arbitrary payload attached to this item.
func (i *ItemBase) Tag() any {
	return i.tag
}

// SetTag attaches an arbitrary payload to this item.
func (i *ItemBase) SetTag(tag any) {
	i.tag = tag
}

// ExpandableBase is a ready-made implementation of [Item], [Expandable] and
// [SubItem] meant to be embedded in application item types that form trees.
type ExpandableBase struct {
	ItemBase

	expanded      bool
	autoExpanding bool
	subItems      []Item
	parent        Expandable
}

// NewExpandableBase returns an expandable item base for the given type
// discriminator. The item starts collapsed and auto-expanding.
func NewExpandableBase(typeID int) *ExpandableBase {
	return &ExpandableBase{
		ItemBase:      *NewItemBase(typeID),
		autoExpanding: true,
	}
}

// IsExpanded returns whether this item's children are currently materialized
// in the owning adapter's backing list.
func (e *ExpandableBase) IsExpanded() bool {
	return e.expanded
}

// SetExpanded sets the expanded flag. Application code normally goes through
// the expand extension instead, which materializes or removes the children.
func (e *ExpandableBase) SetExpanded(expanded bool) {
	e.expanded = expanded
}

// SubItems returns the direct children of this item.
func (e *ExpandableBase) SubItems() []Item {
	return e.subItems
}

// SetSubItems replaces the direct children of this item. The caller must not
// do this while the item is expanded; collapse it first.
func (e *ExpandableBase) SetSubItems(subItems []Item) {
	e.subItems = subItems
}

// IsAutoExpanding reports whether a click toggles this item's expansion.
func (e *ExpandableBase) IsAutoExpanding() bool {
	return e.autoExpanding
}

// SetAutoExpanding sets whether a click toggles this item's expansion.
func (e *ExpandableBase) SetAutoExpanding(autoExpanding bool) {
	e.autoExpanding = autoExpanding
}

// Parent returns the expandable item owning this one, or nil for root items
// or when the back-reference has not been wired yet.
func (e *ExpandableBase) Parent() Expandable {
	return e.parent
}

// SetParent wires the parent back-reference.
func (e *ExpandableBase) SetParent(parent Expandable) {
	e.parent = parent
}
