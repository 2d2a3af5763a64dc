package series

// startSign returns the sign of term n: +1 for even n, -1 for odd n.
func startSign[F Float](n uint64) F {
	if n&1 == 0 {
		return 1
	}
	return -1
}

// Sum returns the partial sum of the signed reciprocals of odd numbers over
// the assignment, accumulated in F with the given policy. The sign of the
// first term comes from the parity of a.Start; it flips between consecutive
// terms only when the stride is odd.
func Sum[F Float](a Assignment, policy SummationPolicy) F {
	if policy == Kahan {
		return sumKahan[F](a)
	}
	return sumNaive[F](a)
}

func sumNaive[F Float](a Assignment) F {
	var acc F
	sign := startSign[F](a.Start)
	flip := a.Stride&1 == 1
	for n := a.Start; n < a.End; n += a.Stride {
		acc += sign / F(2*n+1)
		if flip {
			sign = -sign
		}
	}
	return acc
}

func sumKahan[F Float](a Assignment) F {
	var acc, compensation F
	sign := startSign[F](a.Start)
	flip := a.Stride&1 == 1
	for n := a.Start; n < a.End; n += a.Stride {
		y := sign/F(2*n+1) - compensation
		t := acc + y
		compensation = (t - acc) - y
		acc = t
		if flip {
			sign = -sign
		}
	}
	return acc
}

// Combine returns 4·Σ partials, added in ascending slot order so results are
// bit-for-bit reproducible for a given configuration.
func Combine[F Float](partials []F) F {
	var total F
	for _, p := range partials {
		total += p
	}
	return 4 * total
}
