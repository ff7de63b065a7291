package fastadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelectSetup(t *testing.T) (*Composer, *ItemAdapter, *SelectExtension) {
	t.Helper()
	composer := NewComposer(SelectExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	return composer, adapter, SelectExtensionOf(composer)
}

func selectedIDs(sel *SelectExtension) []int64 {
	items := sel.SelectedItems()
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.Identifier()
	}
	return ids
}

func TestSingleSelectIsExclusive(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	adapter.Add(testItems(1, 2, 3)...)

	sel.Select(0, false, true)
	sel.Select(2, false, true)

	assert.Equal(t, []int64{3}, selectedIDs(sel))
	assert.Equal(t, []int{2}, sel.Selections())
	assert.False(t, adapter.Item(0).IsSelected())
}

func TestMultiSelectAccumulates(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	sel.SetMultiSelect(true)
	adapter.Add(testItems(1, 2, 3)...)

	sel.Select(0, false, true)
	sel.Select(2, false, true)

	assert.Equal(t, []int64{1, 3}, selectedIDs(sel))
	assert.Equal(t, []int{0, 2}, sel.Selections())
}

func TestSelectRespectsSelectableFlag(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	locked := newTestItem(1)
	locked.SetSelectable(false)
	adapter.Add(locked)

	sel.Select(0, false, true)
	assert.Empty(t, sel.Selections())

	// Forcing past the flag is an explicit caller decision.
	sel.Select(0, false, false)
	assert.Equal(t, []int{0}, sel.Selections())
}

func TestClickTogglesSelection(t *testing.T) {
	composer, adapter, sel := newSelectSetup(t)
	sel.SetSelectable(true)
	adapter.Add(testItems(1, 2)...)

	assert.True(t, composer.Click(0))
	assert.Equal(t, []int{0}, sel.Selections())

	assert.True(t, composer.Click(0))
	assert.Empty(t, sel.Selections())
}

func TestClickIgnoredWhileNotSelectable(t *testing.T) {
	composer, adapter, sel := newSelectSetup(t)
	adapter.Add(testItems(1)...)

	assert.False(t, composer.Click(0))
	assert.Empty(t, sel.Selections())
}

func TestSelectOnLongClick(t *testing.T) {
	composer, adapter, sel := newSelectSetup(t)
	sel.SetSelectable(true).SetSelectOnLongClick(true)
	adapter.Add(testItems(1)...)

	assert.False(t, composer.Click(0))
	assert.Empty(t, sel.Selections())

	assert.True(t, composer.LongClick(0))
	assert.Equal(t, []int{0}, sel.Selections())
}

func TestDisallowDeselection(t *testing.T) {
	composer, adapter, sel := newSelectSetup(t)
	sel.SetSelectable(true).SetAllowDeselection(false)
	adapter.Add(testItems(1)...)

	assert.True(t, composer.Click(0))
	require.Equal(t, []int{0}, sel.Selections())

	// Clicking the selected item again keeps it selected.
	assert.False(t, composer.Click(0))
	assert.Equal(t, []int{0}, sel.Selections())
}

func TestToggleSelection(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	adapter.Add(testItems(1)...)

	sel.Toggle(0)
	assert.Equal(t, []int{0}, sel.Selections())
	sel.Toggle(0)
	assert.Empty(t, sel.Selections())
}

func TestSelectionListener(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	adapter.Add(testItems(1, 2)...)

	var log []string
	sel.SetSelectionListener(func(item Item, selected bool) {
		state := "off"
		if selected {
			state = "on"
		}
		log = append(log, state)
	})

	sel.Select(0, true, true)
	sel.Select(1, true, true)
	sel.Deselect(1)

	// The second select deselects item one first under single select.
	assert.Equal(t, []string{"on", "off", "on", "off"}, log)
}

func TestSelectWithItemUpdateNotifies(t *testing.T) {
	composer, adapter, sel := newSelectSetup(t)
	sel.SetSelectWithItemUpdate(true)
	adapter.Add(testItems(1, 2)...)
	rec := &recorder{}
	composer.SetNotifier(rec)

	sel.Select(1, false, true)
	require.Equal(t, []notifyEvent{{kind: "change", position: 1, count: 1}}, rec.events)

	rec.reset()
	sel.Deselect(1)
	require.Equal(t, []notifyEvent{{kind: "change", position: 1, count: 1}}, rec.events)
}

func TestSelectByIdentifierReachesHiddenItems(t *testing.T) {
	composer := NewComposer(SelectExtensionFactory, ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	sel := SelectExtensionOf(composer)

	hidden := newTestItem(11)
	adapter.Add(newTestExpandable(1, hidden), newTestItem(2))

	sel.SetMultiSelect(true)
	sel.SelectByIdentifier(2, false, true)
	sel.SelectByIdentifier(11, false, true)

	assert.True(t, hidden.IsSelected())
	assert.Equal(t, []int64{11, 2}, selectedIDs(sel))
	// Only the visible selection has a position.
	assert.Equal(t, []int{1}, sel.Selections())

	// Expanding reveals the hidden selection.
	ExpandExtensionOf(composer).Expand(0)
	assert.Equal(t, []int{1, 2}, sel.Selections())
}

func TestSelectAllAndDeselectAll(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	sel.SetMultiSelect(true)
	locked := newTestItem(3)
	locked.SetSelectable(false)
	adapter.Add(newTestExpandable(1, newTestItem(11)), newTestItem(2), locked)

	sel.SelectAll(true)
	assert.Equal(t, []int64{1, 11, 2}, selectedIDs(sel), "collapsed sub items select too")

	sel.DeselectAll()
	assert.Empty(t, sel.SelectedItems())
}

func TestSelectionReachesRememberedSubtrees(t *testing.T) {
	composer := NewComposer(SelectExtensionFactory, ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	sel := SelectExtensionOf(composer)

	grandchild := newTestItem(111)
	child := newTestExpandable(110, grandchild)
	root := newTestExpandable(100, child)
	adapter.Add(root, newTestItem(200))

	// Collapsing the root hides the child while it remembers being expanded.
	expand := ExpandExtensionOf(composer)
	expand.Expand(0)
	expand.Expand(1)
	expand.Collapse(0)
	require.True(t, child.IsExpanded())

	sel.SetMultiSelect(true)
	sel.SelectAll(false)
	assert.True(t, grandchild.IsSelected())
	assert.Equal(t, []int64{100, 110, 111, 200}, selectedIDs(sel))

	sel.DeselectAll()
	assert.False(t, grandchild.IsSelected())
	assert.Empty(t, sel.SelectedItems())

	sel.SelectByIdentifier(111, false, true)
	assert.True(t, grandchild.IsSelected())

	// Single select clears the hidden selection too.
	sel.SetMultiSelect(false)
	sel.Select(1, false, true)
	assert.Equal(t, []int64{200}, selectedIDs(sel))
}

func TestDeleteAllSelectedItems(t *testing.T) {
	_, adapter, sel := newSelectSetup(t)
	sel.SetMultiSelect(true)

	hidden := newTestItem(11)
	parent := newTestExpandable(1, hidden, newTestItem(12))
	adapter.Add(parent, newTestItem(2), newTestItem(3))

	sel.Select(1, false, true)
	hidden.SetSelected(true)

	deleted := sel.DeleteAllSelectedItems()

	ids := make([]int64, len(deleted))
	for i, item := range deleted {
		ids[i] = item.Identifier()
	}
	assert.ElementsMatch(t, []int64{2, 11}, ids)
	assert.Equal(t, []int64{1, 3}, identifiers(adapter))

	subIDs := make([]int64, 0, len(parent.SubItems()))
	for _, sub := range parent.SubItems() {
		subIDs = append(subIDs, sub.Identifier())
	}
	assert.Equal(t, []int64{12}, subIDs)
}

func TestDeleteSelectedExpandedParentRemovesSubtree(t *testing.T) {
	composer := NewComposer(SelectExtensionFactory, ExpandExtensionFactory)
	adapter := NewItemAdapter()
	composer.AddAdapter(adapter)
	sel := SelectExtensionOf(composer)

	parent := newTestExpandable(100, newTestItem(101), newTestItem(102))
	adapter.Add(parent, newTestItem(200))
	ExpandExtensionOf(composer).Expand(0)
	require.Equal(t, []int64{100, 101, 102, 200}, identifiers(adapter))

	sel.Select(0, false, true)
	deleted := sel.DeleteAllSelectedItems()

	// The parent takes its materialized children with it.
	require.Len(t, deleted, 1)
	assert.Equal(t, int64(100), deleted[0].Identifier())
	assert.Equal(t, []int64{200}, identifiers(adapter))
	assert.False(t, parent.IsExpanded())
	assert.Len(t, parent.SubItems(), 2)
}
