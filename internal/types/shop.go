package types

// Item is a catalog record. Items are never physically removed; Deleted is a
// soft-delete flag and the id is never reused.
type Item struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Deleted bool    `json:"deleted"`
}

// CartItem is a cart line. Name and Available are snapshots taken when the
// line was appended; Available is never refreshed afterwards. Price and
// quantity totals come from joining against the live catalog instead.
type CartItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Available bool   `json:"available"`
}

// Cart holds lines in insertion order. Price and Quantity are derived on
// every read and only count lines whose item still exists and is not deleted.
type Cart struct {
	ID       int64      `json:"id"`
	Items    []CartItem `json:"items"`
	Price    float64    `json:"price"`
	Quantity int64      `json:"quantity"`
}
