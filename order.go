package hll

// ByEstimate orders a slice of Sketch by estimated cardinality (ascending).
// Gives a total ordering purely off Len(), expressed as a sort.Interface --
// the idiomatic Go shape for "sort a slice by a derived key" -- rather than
// a wrapper type.
type ByEstimate []Sketch

func (b ByEstimate) Len() int           { return len(b) }
func (b ByEstimate) Less(i, j int) bool { return b[i].Len() < b[j].Len() }
func (b ByEstimate) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
