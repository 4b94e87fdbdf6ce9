package kdtree

// insertionCutoff is the range length below which selectNth sorts instead of
// partitioning.
const insertionCutoff = 12

// selectNth reorders points[start:end] (and the matching ids) so that
// points[k] holds the element that would be there if the range were sorted
// along axis, no element before k is greater and no element after k is
// smaller. Runs in expected linear time and is deterministic for a given
// input order.
func (b *builder[S, P, I]) selectNth(start, end, k, axis int) {
	lo, hi := start, end-1
	for hi > lo {
		if hi-lo < insertionCutoff {
			b.insertionSort(lo, hi+1, axis)
			return
		}
		pivot := b.medianOfThree(lo, lo+(hi-lo)/2, hi, axis)

		// [lo,lt) < pivot, [lt,gt] == pivot, (gt,hi] > pivot
		lt, i, gt := lo, lo, hi
		for i <= gt {
			v := b.points[i].Coord(axis)
			switch {
			case v < pivot:
				b.swap(lt, i)
				lt++
				i++
			case v > pivot:
				b.swap(i, gt)
				gt--
			default:
				i++
			}
		}

		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return
		}
	}
}

func (b *builder[S, P, I]) medianOfThree(i, j, k, axis int) S {
	x, y, z := b.points[i].Coord(axis), b.points[j].Coord(axis), b.points[k].Coord(axis)
	if x > y {
		x, y = y, x
	}
	if y > z {
		y = z
	}
	if x > y {
		y = x
	}
	return y
}

func (b *builder[S, P, I]) insertionSort(start, end, axis int) {
	for i := start + 1; i < end; i++ {
		for j := i; j > start && b.points[j].Coord(axis) < b.points[j-1].Coord(axis); j-- {
			b.swap(j, j-1)
		}
	}
}

func (b *builder[S, P, I]) swap(i, j int) {
	b.points[i], b.points[j] = b.points[j], b.points[i]
	b.ids[i], b.ids[j] = b.ids[j], b.ids[i]
}
