package pagination

// Cursor tracks the next page a view will request and whether the
// collection may hold more items.
type Cursor struct {
	Page    int  `json:"page"`
	HasMore bool `json:"has_more"`
}

func NewCursor() Cursor {
	return Cursor{Page: 0, HasMore: true}
}

// Advance records a successful fetch of received items against the
// expected batch size. The page only moves forward on a full batch; a
// short batch marks the end of the collection.
func (c Cursor) Advance(received, expected int) Cursor {
	if received >= expected {
		return Cursor{Page: c.Page + 1, HasMore: true}
	}
	return Cursor{Page: c.Page, HasMore: false}
}
