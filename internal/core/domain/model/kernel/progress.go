package kernel

// Progress is a read-only snapshot of how many children of a parent order have completed.
type Progress struct {
	Total     int
	Completed int
}

func NewProgress(total, completed int) Progress {
	return Progress{Total: total, Completed: completed}
}

// Percent is completed/total*100. An empty set of children is 0%, never NaN.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// IsComplete never reports a parent without children as complete.
func (p Progress) IsComplete() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// Add merges the counts of another snapshot, e.g. one per workstation order kind.
func (p Progress) Add(other Progress) Progress {
	return Progress{Total: p.Total + other.Total, Completed: p.Completed + other.Completed}
}
