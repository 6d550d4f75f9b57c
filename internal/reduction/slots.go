package reduction

// Slots gives every worker a private cell for its local result. Workers
// write only their own index, so no lock is needed; the coordinator folds the
// cells after the join, in worker order, which makes floating-point sums
// reproducible for a given partition.
type Slots[R any] struct {
	values []R
	filled []bool
}

// NewSlots allocates one cell per worker.
func NewSlots[R any](workers int) *Slots[R] {
	return &Slots[R]{
		values: make([]R, workers),
		filled: make([]bool, workers),
	}
}

// Store records the local result of worker id. Each id must be stored by a
// single goroutine.
func (s *Slots[R]) Store(id int, local R) {
	s.values[id] = local
	s.filled[id] = true
}

// Fold combines every stored cell into a fresh identity, in worker order,
// and returns the result with the number of cells folded. It must only be
// called after all writers have been joined.
func (s *Slots[R]) Fold(c Combiner[R]) (R, int) {
	acc := c.Identity()
	folded := 0
	for id, ok := range s.filled {
		if !ok {
			continue
		}
		c.Combine(&acc, s.values[id], id)
		folded++
	}
	return acc, folded
}
