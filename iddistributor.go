package fastadapter

import "sync/atomic"

// IDDistributor assigns identifiers to items that still carry the
// [UnassignedID] sentinel. Generated identifiers are negative and strictly
// decreasing, so they never collide with user-assigned non-negative ids and
// never repeat within a process.
type IDDistributor struct {
	next atomic.Int64
}

// NewIDDistributor returns a distributor whose first generated identifier is
// −2, leaving the −1 sentinel untouched.
func NewIDDistributor() *IDDistributor {
	d := &IDDistributor{}
	d.next.Store(UnassignedID)
	return d
}

// Check assigns an identifier to item if it has none and returns the item.
func (d *IDDistributor) Check(item Item) Item {
	if item != nil && item.Identifier() == UnassignedID {
		item.SetIdentifier(d.next.Add(-1))
	}
	return item
}

// CheckAll assigns identifiers to every item in items that has none.
func (d *IDDistributor) CheckAll(items []Item) {
	for _, item := range items {
		d.Check(item)
	}
}
