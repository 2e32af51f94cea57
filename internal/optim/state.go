package optim

import (
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

// paramState is the per-parameter mutable state owned exclusively by the
// update engine. Accumulators are allocated once, shaped to the parameter,
// and only mutated in place afterwards.
type paramState struct {
	expAvg      *tensor.Tensor // first moment
	expAvgSq    *tensor.Tensor // second moment
	maxExpAvgSq *tensor.Tensor // running max of second moment, AMS-bound only
	fill        float64        // construction-time accumulator fill, restored by reset
}

// stateStore is an arena of per-parameter state indexed by the integer
// handles assigned at registration. Entries are created lazily on the first
// step that sees a gradient for the parameter and live until Reset or store
// destruction; there is no eviction.
type stateStore struct {
	entries []*paramState
}

func newStateStore(n int) *stateStore {
	return &stateStore{entries: make([]*paramState, n)}
}

// getOrCreate returns the state for handle, creating it on first use with
// first/second moment accumulators filled with fill (zero for EMA variants,
// the initial-accumulator constant for Yogi) and a max accumulator when
// amsBound is set.
func (s *stateStore) getOrCreate(handle int, shape tensor.Shape, fill float64, amsBound bool) *paramState {
	if st := s.entries[handle]; st != nil {
		return st
	}
	st := &paramState{
		expAvg:   tensor.Full(shape, fill),
		expAvgSq: tensor.Full(shape, fill),
		fill:     fill,
	}
	if amsBound {
		st.maxExpAvgSq = tensor.Zeros(shape)
	}
	s.entries[handle] = st
	return st
}

// reset restores every existing accumulator to its construction-time fill,
// in place. Accumulator identity is preserved.
func (s *stateStore) reset() {
	for _, st := range s.entries {
		if st == nil {
			continue
		}
		st.expAvg.Fill(st.fill)
		st.expAvgSq.Fill(st.fill)
		if st.maxExpAvgSq != nil {
			st.maxExpAvgSq.Fill(0)
		}
	}
}
