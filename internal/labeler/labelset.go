package labeler

// LabelSet is a set of label names that remembers insertion order.
type LabelSet struct {
	order []string
	index map[string]struct{}
}

func NewLabelSet(names ...string) *LabelSet {
	s := &LabelSet{index: make(map[string]struct{})}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name unless it is already present.
func (s *LabelSet) Add(name string) {
	if _, ok := s.index[name]; ok {
		return
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *LabelSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Retain drops every label not listed in keep. Survivors keep their order.
func (s *LabelSet) Retain(keep ...string) {
	allowed := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		allowed[k] = struct{}{}
	}

	kept := s.order[:0]
	for _, name := range s.order {
		if _, ok := allowed[name]; ok {
			kept = append(kept, name)
			continue
		}
		delete(s.index, name)
	}
	s.order = kept
}

func (s *LabelSet) Len() int {
	return len(s.order)
}

// List returns a copy of the labels in insertion order.
func (s *LabelSet) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
