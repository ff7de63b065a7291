package fastadapter

import "testing"

// testItem is a plain selectable item used throughout the tests.
type testItem struct {
	*ItemBase
	label string
}

func newTestItem(id int64) *testItem {
	i := &testItem{ItemBase: NewItemBase(1)}
	i.SetIdentifier(id)
	return i
}

func testItems(ids ...int64) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = newTestItem(id)
	}
	return items
}

// testExpandable is a tree-forming item. It carries the expandable and sub
// item capabilities through its embedded base.
type testExpandable struct {
	*ExpandableBase
}

func newTestExpandable(id int64, subItems ...Item) *testExpandable {
	e := &testExpandable{ExpandableBase: NewExpandableBase(2)}
	e.SetIdentifier(id)
	e.SetSubItems(subItems)
	return e
}

// testDraggable opts in or out of the drag extension per instance.
type testDraggable struct {
	*ItemBase
	draggable bool
}

func newTestDraggable(id int64, draggable bool) *testDraggable {
	d := &testDraggable{ItemBase: NewItemBase(3), draggable: draggable}
	d.SetIdentifier(id)
	return d
}

func (d *testDraggable) IsDraggable() bool {
	return d.draggable
}

// testSwipeable opts in or out of the swipe extension per instance.
type testSwipeable struct {
	*ItemBase
	swipeable bool
}

func newTestSwipeable(id int64, swipeable bool) *testSwipeable {
	s := &testSwipeable{ItemBase: NewItemBase(4), swipeable: swipeable}
	s.SetIdentifier(id)
	return s
}

func (s *testSwipeable) IsSwipeable() bool {
	return s.swipeable
}

// testHolder is an opaque view holder handle.
type testHolder struct {
	bound Item
}

// testViewItem provides view holders for its type.
type testViewItem struct {
	*ItemBase
}

func newTestViewItem(id int64) *testViewItem {
	v := &testViewItem{ItemBase: NewItemBase(5)}
	v.SetIdentifier(id)
	return v
}

func (v *testViewItem) CreateViewHolder() any {
	return &testHolder{}
}

func (v *testViewItem) BindView(holder any, payloads []any) {
	if h, ok := holder.(*testHolder); ok {
		h.bound = v
	}
}

func (v *testViewItem) UnbindView(holder any) {
	if h, ok := holder.(*testHolder); ok {
		h.bound = nil
	}
}

// notifyEvent is one recorded host notification.
type notifyEvent struct {
	kind     string
	position int
	count    int
	from     int
	to       int
	payload  any
}

// recorder captures every host notification in dispatch order.
type recorder struct {
	events []notifyEvent
}

func (r *recorder) ItemsInserted(position, count int) {
	r.events = append(r.events, notifyEvent{kind: "insert", position: position, count: count})
}

func (r *recorder) ItemsRemoved(position, count int) {
	r.events = append(r.events, notifyEvent{kind: "remove", position: position, count: count})
}

func (r *recorder) ItemMoved(fromPosition, toPosition int) {
	r.events = append(r.events, notifyEvent{kind: "move", from: fromPosition, to: toPosition})
}

func (r *recorder) ItemsChanged(position, count int, payload any) {
	r.events = append(r.events, notifyEvent{kind: "change", position: position, count: count, payload: payload})
}

func (r *recorder) DataSetChanged() {
	r.events = append(r.events, notifyEvent{kind: "reset"})
}

func (r *recorder) reset() {
	r.events = nil
}

func (r *recorder) kinds() []string {
	kinds := make([]string, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.kind
	}
	return kinds
}

// newTestSetup wires a composer with one item adapter and a recording
// notifier.
func newTestSetup(t *testing.T, factories ...ExtensionFactory) (*Composer, *ItemAdapter, *recorder) {
	t.Helper()
	composer := NewComposer(factories...)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	rec := &recorder{}
	composer.SetNotifier(rec)
	return composer, adapter, rec
}

// identifiers collects the identifier of every item currently held by the
// adapter, in order.
func identifiers(adapter Adapter) []int64 {
	items := adapter.Items()
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.Identifier()
	}
	return ids
}
