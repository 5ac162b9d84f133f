package cart

import (
	"slices"

	"github.com/angelmondragon/ridegear-backend/internal/catalog"
)

// Item is a cart line: the product fields flattened plus the chosen quantity and
// size. Identity is (ID, Size); the empty size is its own variant.
type Item struct {
	catalog.Product
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
}

// LineTotal is price times quantity.
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

func (i Item) sameVariant(productID int, size string) bool {
	return i.ID == productID && i.Size == size
}

// Snapshot is an immutable view of a cart handed to subscribers.
type Snapshot struct {
	Items []Item
	Count int
	Total int64
}

func total(items []Item) int64 {
	var sum int64
	for _, item := range items {
		sum += item.LineTotal()
	}
	return sum
}

func count(items []Item) int {
	sum := 0
	for _, item := range items {
		sum += item.Quantity
	}
	return sum
}

// cloneItems deep-copies the lines, including the product's slice and pointer
// fields, so snapshots never share memory with the store.
func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		if item.Sizes != nil {
			item.Sizes = slices.Clone(item.Sizes)
		}
		if item.OriginalPrice != nil {
			original := *item.OriginalPrice
			item.OriginalPrice = &original
		}
		out[i] = item
	}
	return out
}
