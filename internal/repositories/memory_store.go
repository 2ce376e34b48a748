package repositories

// NewMemoryStore returns a Store whose collections live in process memory.
// Each collection has its own lock.
func NewMemoryStore() *Store {
	return &Store{
		Driver:     "memory",
		Products:   NewMemoryProductRepository(),
		Categories: NewMemoryCategoryRepository(),
		Cart:       NewMemoryCartRepository(),
		Orders:     NewMemoryOrderRepository(),
		Reviews:    NewMemoryReviewRepository(),
	}
}

// orderedRows keeps rows keyed by id and remembers insertion order.
// It does no locking of its own; the owning repository holds the lock.
type orderedRows[T any] struct {
	byID map[string]T
	ids  []string
}

func newOrderedRows[T any]() *orderedRows[T] {
	return &orderedRows[T]{byID: make(map[string]T)}
}

func (o *orderedRows[T]) get(id string) (T, bool) {
	row, ok := o.byID[id]
	return row, ok
}

func (o *orderedRows[T]) has(id string) bool {
	_, ok := o.byID[id]
	return ok
}

// put inserts or replaces. Replacing keeps the original position.
func (o *orderedRows[T]) put(id string, row T) {
	if _, ok := o.byID[id]; !ok {
		o.ids = append(o.ids, id)
	}
	o.byID[id] = row
}

func (o *orderedRows[T]) remove(id string) bool {
	if _, ok := o.byID[id]; !ok {
		return false
	}
	delete(o.byID, id)
	for i, existing := range o.ids {
		if existing == id {
			o.ids = append(o.ids[:i], o.ids[i+1:]...)
			break
		}
	}
	return true
}

// filter returns matching rows in insertion order. A nil keep matches everything.
func (o *orderedRows[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0, len(o.ids))
	for _, id := range o.ids {
		row := o.byID[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}
