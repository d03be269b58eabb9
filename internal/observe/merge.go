package observe

// Range is a half-open [From, To) span in document coordinates.
type Range struct {
	From int
	To   int
}

// None is the no-range sentinel.
var None = Range{From: -1, To: -1}

// Empty reports whether the range is the no-range sentinel.
func (r Range) Empty() bool { return r.From < 0 }

// Merge reduces ranges to the minimal span covering all of them:
// min(From) to max(To). Sentinel ranges are skipped; an input with no
// real ranges yields None. The result does not depend on input order.
func Merge(ranges []Range) Range {
	merged := None
	for _, r := range ranges {
		if r.Empty() {
			continue
		}
		if merged.Empty() {
			merged = r
			continue
		}
		if r.From < merged.From {
			merged.From = r.From
		}
		if r.To > merged.To {
			merged.To = r.To
		}
	}
	return merged
}
