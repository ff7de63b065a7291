package fastadapter

import "fmt"

// TypeInstanceCache maps a type discriminator to the first item instance seen
// for it. The representative instance supplies the view holder factory for
// its whole type, so one instance per type is all the host ever needs.
type TypeInstanceCache struct {
	instances map[int]Item
}

// NewTypeInstanceCache returns an empty cache.
func NewTypeInstanceCache() *TypeInstanceCache {
	return &TypeInstanceCache{instances: map[int]Item{}}
}

// Register stores item as the representative instance for its type. Returns
// false if the type was already registered; duplicate registration is not an
// error, only reported.
func (c *TypeInstanceCache) Register(item Item) bool {
	if item == nil {
		return false
	}
	if _, exists := c.instances[item.Type()]; exists {
		return false
	}
	c.instances[item.Type()] = item
	return true
}

// Get returns the representative item for the given type. An unregistered
// type reaching the view factory is a programming defect, so Get panics
// rather than returning nil.
func (c *TypeInstanceCache) Get(typeID int) Item {
	item, ok := c.instances[typeID]
	if !ok {
		panic(fmt.Sprintf("fastadapter: no item instance registered for type %d", typeID))
	}
	return item
}

// Clear drops all registered instances.
func (c *TypeInstanceCache) Clear() {
	clear(c.instances)
}
