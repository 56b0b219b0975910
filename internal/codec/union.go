package codec

// Union holds the result of a sign discriminated list. Exactly one of Pos and NonPos was read;
// IsPos says which.
type Union[A, B any] struct {
	IsPos  bool
	Pos    []A
	NonPos []B
}

// Signed reads an int16 count. A count greater than zero is followed by that many elements
// decoded by pos. Otherwise it is followed by -count elements decoded by nonPos, so a count of
// zero always selects nonPos.
func Signed[A, B any](r *Reader, pos Func[A], nonPos Func[B]) (Union[A, B], error) {
	n, err := I16(r)
	if err != nil {
		return Union[A, B]{}, err
	}

	if n > 0 {
		items, err := list(r, int(n), pos)
		if err != nil {
			return Union[A, B]{}, err
		}
		return Union[A, B]{IsPos: true, Pos: items}, nil
	}

	items, err := list(r, -int(n), nonPos)
	if err != nil {
		return Union[A, B]{}, err
	}
	return Union[A, B]{NonPos: items}, nil
}
