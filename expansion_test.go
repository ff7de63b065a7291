package fastadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTreeSetup builds a composer with rootCount expandable roots, each owning
// subCount plain children. Root n gets identifier n*100, its children
// n*100+1 and up.
func newTreeSetup(t *testing.T, rootCount, subCount int) (*Composer, *ItemAdapter, *ExpandExtension) {
	t.Helper()
	composer := NewComposer(ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	for n := 1; n <= rootCount; n++ {
		subItems := make([]Item, subCount)
		for s := 0; s < subCount; s++ {
			subItems[s] = newTestItem(int64(n*100 + s + 1))
		}
		adapter.Add(newTestExpandable(int64(n*100), subItems...))
	}
	return composer, adapter, ExpandExtensionOf(composer)
}

func TestExpandMaterializesChildren(t *testing.T) {
	composer, adapter, expand := newTreeSetup(t, 3, 2)
	require.Equal(t, 3, composer.ItemCount())

	expand.Expand(1)
	assert.Equal(t, []int64{100, 200, 201, 202, 300}, identifiers(adapter))
	assert.Equal(t, 5, composer.ItemCount())

	parent, _ := AsExpandable(composer.Item(1))
	assert.True(t, parent.IsExpanded())

	// Positions after the parent shifted by its child count.
	assert.Equal(t, 4, composer.Position(300))
}

func TestCollapseRestoresShape(t *testing.T) {
	composer, adapter, expand := newTreeSetup(t, 3, 2)

	expand.Expand(1)
	expand.Collapse(1)
	assert.Equal(t, []int64{100, 200, 300}, identifiers(adapter))
	assert.Equal(t, 3, composer.ItemCount())

	parent, _ := AsExpandable(composer.Item(1))
	assert.False(t, parent.IsExpanded())
	assert.Len(t, parent.SubItems(), 2, "children stay on the parent")
}

func TestExpandNoOps(t *testing.T) {
	composer, adapter, expand := newTreeSetup(t, 1, 1)
	adapter.Add(newTestItem(9), newTestExpandable(10))

	expand.Expand(1)
	assert.Equal(t, 3, composer.ItemCount(), "plain items don't expand")
	expand.Expand(2)
	assert.Equal(t, 3, composer.ItemCount(), "childless expandables don't expand")
	expand.Expand(99)
	assert.Equal(t, 3, composer.ItemCount())
	expand.Collapse(0)
	assert.Equal(t, 3, composer.ItemCount(), "collapsed items don't collapse again")

	expand.Expand(0)
	require.Equal(t, 4, composer.ItemCount())
	expand.Expand(0)
	assert.Equal(t, 4, composer.ItemCount(), "expanded items don't expand again")
}

func TestCollapseRemembersNestedExpansion(t *testing.T) {
	grandchild := newTestItem(111)
	child := newTestExpandable(110, grandchild)
	root := newTestExpandable(100, child, newTestItem(120))

	composer := NewComposer(ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	adapter.Add(root)
	expand := ExpandExtensionOf(composer)

	expand.Expand(0)
	expand.Expand(1)
	require.Equal(t, []int64{100, 110, 111, 120}, identifiers(adapter))

	// Collapsing the root hides everything but only resets the root's flag.
	expand.Collapse(0)
	require.Equal(t, []int64{100}, identifiers(adapter))
	assert.True(t, child.IsExpanded())

	// Re-expanding restores the previous shape, grandchild included.
	expand.Expand(0)
	assert.Equal(t, []int64{100, 110, 111, 120}, identifiers(adapter))
}

func TestToggleFlipsExpansion(t *testing.T) {
	composer, _, expand := newTreeSetup(t, 1, 2)

	expand.Toggle(0)
	assert.Equal(t, 3, composer.ItemCount())
	expand.Toggle(0)
	assert.Equal(t, 1, composer.ItemCount())
}

func TestClickTogglesAutoExpandingItems(t *testing.T) {
	composer, adapter, _ := newTreeSetup(t, 1, 2)

	assert.True(t, composer.Click(0))
	assert.Equal(t, 3, composer.ItemCount())
	assert.True(t, composer.Click(0))
	assert.Equal(t, 1, composer.ItemCount())

	manual, _ := AsExpandable(adapter.Item(0))
	manual.(*testExpandable).SetAutoExpanding(false)
	assert.False(t, composer.Click(0))
	assert.Equal(t, 1, composer.ItemCount())
}

func TestExpansionChangePayloads(t *testing.T) {
	composer, _, expand := newTreeSetup(t, 1, 1)
	rec := &recorder{}
	composer.SetNotifier(rec)

	expand.Expand(0)
	require.Equal(t, []notifyEvent{
		{kind: "insert", position: 1, count: 1},
		{kind: "change", position: 0, count: 1, payload: PayloadExpanded},
	}, rec.events)

	rec.reset()
	expand.Collapse(0)
	require.Equal(t, []notifyEvent{
		{kind: "remove", position: 1, count: 1},
		{kind: "change", position: 0, count: 1, payload: PayloadCollapsed},
	}, rec.events)
}

func TestExpandAllAndCollapseAll(t *testing.T) {
	grandchild := newTestExpandable(111, newTestItem(112))
	child := newTestExpandable(110, grandchild)
	root := newTestExpandable(100, child)

	composer := NewComposer(ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	adapter.Add(root, newTestExpandable(200, newTestItem(201)))
	expand := ExpandExtensionOf(composer)

	expand.ExpandAll()
	assert.Equal(t, []int64{100, 110, 111, 112, 200, 201}, identifiers(adapter))

	expand.CollapseAll()
	assert.Equal(t, []int64{100, 200}, identifiers(adapter))
	assert.Empty(t, expand.ExpandedItems())

	// CollapseAll resets every flag, nested ones included.
	assert.False(t, child.IsExpanded())
	assert.False(t, grandchild.IsExpanded())
}

func TestExpandedItemsBookkeeping(t *testing.T) {
	composer, _, expand := newTreeSetup(t, 3, 2)

	expand.Expand(2)
	expand.Expand(0)
	assert.Equal(t, []int{0, 4}, expand.ExpandedItems())

	assert.Equal(t, 2, expand.ExpandedItemsCount(0, 1))
	assert.Equal(t, 4, expand.ExpandedItemsCount(0, composer.ItemCount()))
}

func TestOnlyOneExpandedCollapsesSiblings(t *testing.T) {
	composer, adapter, expand := newTreeSetup(t, 3, 2)
	expand.SetOnlyOneExpanded(true)
	require.True(t, expand.IsOnlyOneExpanded())

	expand.Expand(0)
	require.Equal(t, []int64{100, 101, 102, 200, 300}, identifiers(adapter))

	// Expanding a sibling collapses the first, and the newly expanded item's
	// children land after its shifted position.
	expand.Expand(4)
	assert.Equal(t, []int64{100, 200, 300, 301, 302}, identifiers(adapter))

	parent, _ := AsExpandable(composer.Item(0))
	assert.False(t, parent.IsExpanded())
}

func TestOnlyOneExpandedIgnoresOtherLevels(t *testing.T) {
	child := newTestExpandable(110, newTestItem(111))
	root := newTestExpandable(100, child)

	composer := NewComposer(ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	adapter.Add(root, newTestExpandable(200, newTestItem(201)))
	expand := ExpandExtensionOf(composer).SetOnlyOneExpanded(true)

	expand.Expand(0)
	expand.Expand(1)
	assert.Equal(t, []int64{100, 110, 111, 200}, identifiers(adapter))
	assert.True(t, root.IsExpanded(), "a child expanding never collapses its parent")
}

func TestExpandedItemsSameLevel(t *testing.T) {
	_, _, expand := newTreeSetup(t, 3, 1)

	expand.Expand(0)
	expand.Expand(2)
	assert.Equal(t, []int{0}, expand.ExpandedItemsSameLevel(2))
	assert.Equal(t, []int{2}, expand.ExpandedItemsSameLevel(0))
}

func TestExpandOneOfManySections(t *testing.T) {
	composer, _, expand := newTreeSetup(t, 10, 1)
	require.Equal(t, 10, composer.ItemCount())

	expand.Expand(4)
	assert.Equal(t, 11, composer.ItemCount())
	assert.Equal(t, int64(501), composer.Item(5).Identifier())
	assert.Equal(t, int64(600), composer.Item(6).Identifier())
	assert.Equal(t, 9, composer.Position(900))

	expand.Collapse(4)
	assert.Equal(t, 10, composer.ItemCount())
	assert.Equal(t, int64(600), composer.Item(5).Identifier())
	assert.Equal(t, 8, composer.Position(900))
}
