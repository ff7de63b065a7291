package fastadapter

import "slices"

// DiffCallback customizes how the diff engine compares items.
type DiffCallback interface {
	// AreItemsTheSame reports whether two items represent the same logical
	// entity.
	AreItemsTheSame(oldItem, newItem Item) bool
	// AreContentsTheSame reports whether two matching items display the same
	// content; a false result produces a change notification.
	AreContentsTheSame(oldItem, newItem Item) bool
	// ChangePayload returns an optional payload describing what changed
	// between two matching items.
	ChangePayload(oldItem Item, oldPosition int, newItem Item, newPosition int) any
}

// DefaultDiffCallback matches items by identifier and contents by reference.
type DefaultDiffCallback struct{}

func (DefaultDiffCallback) AreItemsTheSame(oldItem, newItem Item) bool {
	return oldItem.Identifier() == newItem.Identifier()
}

func (DefaultDiffCallback) AreContentsTheSame(oldItem, newItem Item) bool {
	return oldItem == newItem
}

func (DefaultDiffCallback) ChangePayload(oldItem Item, oldPosition int, newItem Item, newPosition int) any {
	return nil
}

// DiffOpKind discriminates the operations of an edit script.
type DiffOpKind int

const (
	DiffRemove DiffOpKind = iota
	DiffInsert
	DiffMove
	DiffChange
)

// DiffOp is one operation of an edit script. Positions are local to the
// diffed adapter; the replay translates them into global coordinates.
type DiffOp struct {
	Kind         DiffOpKind
	Position     int
	Count        int
	FromPosition int
	ToPosition   int
	Payload      any
}

// DiffResult is the edit script transforming an adapter's snapshot into a new
// list, together with that list. Apply it with [ApplyDiff].
type DiffResult struct {
	ops      []DiffOp
	newItems []Item
}

// Ops returns the operations of the edit script in dispatch order.
func (r DiffResult) Ops() []DiffOp {
	return r.ops
}

// IsEmpty reports whether the script contains no operations, i.e. both
// snapshots were identical.
func (r DiffResult) IsEmpty() bool {
	return len(r.ops) == 0
}

// CalculateDiff computes the edit script between the adapter's current items
// and newItems using the default callback, with move detection enabled.
func CalculateDiff(adapter *ItemAdapter, newItems []Item) DiffResult {
	return CalculateDiffWith(adapter, newItems, DefaultDiffCallback{}, true)
}

// CalculateDiffWith computes a minimal edit script between the adapter's
// current items and newItems.
//
// The prepare step runs first: missing identifiers are distributed, all
// expanded items are collapsed (tree diffing is not supported; a flattened
// tree would corrupt the position assumptions), and the adapter's comparator,
// if set, sorts the new list. The adapter is not modified beyond the
// collapse; call [ApplyDiff] to apply the result.
func CalculateDiffWith(adapter *ItemAdapter, newItems []Item, callback DiffCallback, detectMoves bool) DiffResult {
	prepared := append([]Item(nil), newItems...)
	if adapter.idDistribution {
		distributor := adapter.distributor
		if distributor == nil {
			distributor = sharedIDDistributor
		}
		distributor.CheckAll(prepared)
	}
	if composer := adapter.Composer(); composer != nil {
		if expand := ExpandExtensionOf(composer); expand != nil {
			expand.CollapseAll()
		}
	}
	adapter.sortNewItems(prepared)
	snapshot := append([]Item(nil), adapter.Items()...)

	return DiffResult{
		ops:      calculateOps(snapshot, prepared, callback, detectMoves),
		newItems: prepared,
	}
}

// ApplyDiff replaces the adapter's backing list with the result's new items
// and replays the edit script through the composer. The swap is silent and
// happens before the first notification, so an observer reading item data
// during dispatch sees the new list consistently (swap then notify).
func ApplyDiff(adapter *ItemAdapter, result DiffResult) {
	adapter.ItemList().SetNewList(result.newItems, false)
	composer := adapter.Composer()
	if composer == nil {
		return
	}
	composer.invalidateCounts()
	pre := composer.PreItemCount(adapter.Order())
	for _, op := range result.ops {
		switch op.Kind {
		case DiffChange:
			composer.NotifyAdapterItemRangeChanged(pre+op.Position, op.Count, op.Payload)
		case DiffRemove:
			composer.NotifyAdapterItemRangeRemoved(pre+op.Position, op.Count)
		case DiffInsert:
			composer.NotifyAdapterItemRangeInserted(pre+op.Position, op.Count)
		case DiffMove:
			composer.NotifyAdapterItemMoved(pre+op.FromPosition, pre+op.ToPosition)
		}
	}
}

// PerformDiff calculates and applies the diff in one step.
func PerformDiff(adapter *ItemAdapter, newItems []Item) DiffResult {
	result := CalculateDiff(adapter, newItems)
	ApplyDiff(adapter, result)
	return result
}

// calculateOps builds the dispatch script: content changes first (old
// coordinate frame), then removals from the end of the old list, then
// insertions and moves walking the new list front to back, then content
// changes of moved items (new coordinate frame). A host that mirrors counts
// by applying the operations in order never sees an out-of-range position.
func calculateOps(old, new []Item, callback DiffCallback, detectMoves bool) []DiffOp {
	pairs := myersMatch(len(old), len(new), func(i, j int) bool {
		return callback.AreItemsTheSame(old[i], new[j])
	})

	matchedOld := make(map[int]int, len(pairs)) // old index -> new index
	matchedNew := make(map[int]int, len(pairs)) // new index -> old index
	for _, pair := range pairs {
		matchedOld[pair[0]] = pair[1]
		matchedNew[pair[1]] = pair[0]
	}

	var ops []DiffOp

	// Content changes of matched pairs, positions in the old frame.
	for _, pair := range pairs {
		i, j := pair[0], pair[1]
		if !callback.AreContentsTheSame(old[i], new[j]) {
			ops = append(ops, DiffOp{
				Kind:     DiffChange,
				Position: i,
				Count:    1,
				Payload:  callback.ChangePayload(old[i], i, new[j], j),
			})
		}
	}

	var deleted, inserted []int
	for i := range old {
		if _, ok := matchedOld[i]; !ok {
			deleted = append(deleted, i)
		}
	}
	for j := range new {
		if _, ok := matchedNew[j]; !ok {
			inserted = append(inserted, j)
		}
	}

	// Optional move detection: pair a removed and an inserted occurrence of
	// the same logical entity and keep it alive as a move.
	movedOldToNew := map[int]int{}
	movedNewToOld := map[int]int{}
	if detectMoves {
		usedInsert := map[int]bool{}
		for _, i := range deleted {
			for _, j := range inserted {
				if usedInsert[j] || !callback.AreItemsTheSame(old[i], new[j]) {
					continue
				}
				usedInsert[j] = true
				movedOldToNew[i] = j
				movedNewToOld[j] = i
				break
			}
		}
	}

	// Removals, grouped and dispatched from the end so earlier removals
	// cannot shift the positions of later ones. Moved items stay in place
	// for now.
	var removed []int
	for _, i := range deleted {
		if _, moved := movedOldToNew[i]; !moved {
			removed = append(removed, i)
		}
	}
	for i := len(removed) - 1; i >= 0; i-- {
		end := removed[i]
		start := end
		for i > 0 && removed[i-1] == start-1 {
			i--
			start--
		}
		ops = append(ops, DiffOp{Kind: DiffRemove, Position: start, Count: end - start + 1})
	}

	// Insertions and moves, simulated against a working copy of the
	// surviving old indices so every emitted position matches what a
	// count-mirroring host sees at that point of the dispatch.
	work := make([]int, 0, len(old))
	for i := range old {
		_, isMatched := matchedOld[i]
		_, isMoved := movedOldToNew[i]
		if isMatched || isMoved {
			work = append(work, i)
		}
	}
	insertStart, insertCount := -1, 0
	flush := func() {
		if insertCount > 0 {
			ops = append(ops, DiffOp{Kind: DiffInsert, Position: insertStart, Count: insertCount})
			insertCount = 0
		}
	}
	for j := range new {
		i, isMatched := matchedNew[j]
		if !isMatched {
			if movedI, isMoved := movedNewToOld[j]; isMoved {
				i = movedI
			} else {
				if insertCount == 0 {
					insertStart = j
				}
				insertCount++
				work = slices.Insert(work, j, -1)
				continue
			}
		}
		flush()
		from := slices.Index(work, i)
		if from != j {
			ops = append(ops, DiffOp{Kind: DiffMove, FromPosition: from, ToPosition: j})
			work = slices.Delete(work, from, from+1)
			work = slices.Insert(work, j, i)
		}
	}
	flush()

	// Content changes of moved pairs, positions in the new frame.
	for _, pair := range pairsSorted(movedNewToOld) {
		j, i := pair[0], pair[1]
		if !callback.AreContentsTheSame(old[i], new[j]) {
			ops = append(ops, DiffOp{
				Kind:     DiffChange,
				Position: j,
				Count:    1,
				Payload:  callback.ChangePayload(old[i], i, new[j], j),
			})
		}
	}

	return ops
}

func pairsSorted(m map[int]int) [][2]int {
	pairs := make([][2]int, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, [2]int{k, v})
	}
	slices.SortFunc(pairs, func(a, b [2]int) int { return a[0] - b[0] })
	return pairs
}

// myersMatch runs the greedy Myers shortest edit script search and returns
// the matched (oldIndex, newIndex) pairs of the longest common subsequence,
// in ascending order.
func myersMatch(n, m int, same func(i, j int) bool) [][2]int {
	if n == 0 || m == 0 {
		return nil
	}
	max := n + m
	offset := max
	v := make([]int, 2*max+2)
	var trace [][]int

	found := -1
search:
	for d := 0; d <= max; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && same(x, y) {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				found = d
				break search
			}
		}
	}

	var pairs [][2]int
	x, y := n, m
	for d := found; d >= 0 && (x > 0 || y > 0); d-- {
		vd := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			pairs = append(pairs, [2]int{x - 1, y - 1})
			x--
			y--
		}
		if d > 0 {
			x, y = prevX, prevY
		}
	}
	slices.Reverse(pairs)
	return pairs
}
