package task

// Precedence decides which record survives when a persisted task and a
// default task share an id.
type Precedence int

const (
	PreferPersisted Precedence = iota
	PreferDefaults
)

// Merge returns every persisted task followed by every default whose id is
// not persisted. A duplicated persisted id keeps its first position and its
// last value. Inputs are not modified; the result holds the same pointers.
func Merge(persisted, defaults []*Task, precedence Precedence) []*Task {
	order := make([]string, 0, len(persisted)+len(defaults))
	byID := make(map[string]*Task, len(persisted)+len(defaults))
	for _, t := range persisted {
		if t == nil {
			continue
		}
		if _, ok := byID[t.ID]; !ok {
			order = append(order, t.ID)
		}
		byID[t.ID] = t
	}
	for _, t := range defaults {
		if t == nil {
			continue
		}
		if _, ok := byID[t.ID]; !ok {
			order = append(order, t.ID)
			byID[t.ID] = t
			continue
		}
		if precedence == PreferDefaults {
			byID[t.ID] = t
		}
	}

	out := make([]*Task, len(order))
	for i, id := range order {
		out[i] = byID[id]
	}
	return out
}

func Index(tasks []*Task) map[string]*Task {
	m := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

func Find(tasks []*Task, id string) (*Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
