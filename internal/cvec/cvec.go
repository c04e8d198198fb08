// Package cvec provides complex-vector kernels for the state-evolution hot path.
//
// All functions assume equal slice lengths (caller's responsibility). The
// unrolled variants are selected at init time based on CPU capabilities; they
// keep the compiler's auto-vectorizer fed with independent accumulator chains.
package cvec

var useUnrolled bool

// Dot returns the inner product <a|b> = sum conj(a[i]) * b[i].
func Dot(a, b []complex128) complex128 {
	if useUnrolled {
		return dotUnrolled(a, b)
	}
	return dotGeneric(a, b)
}

func dotGeneric(a, b []complex128) complex128 {
	var acc complex128
	for i := range a {
		ar, ai := real(a[i]), imag(a[i])
		br, bi := real(b[i]), imag(b[i])
		acc += complex(ar*br+ai*bi, ar*bi-ai*br)
	}
	return acc
}

func dotUnrolled(a, b []complex128) complex128 {
	var s0, s1, s2, s3 complex128
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += conjMul(a[i], b[i])
		s1 += conjMul(a[i+1], b[i+1])
		s2 += conjMul(a[i+2], b[i+2])
		s3 += conjMul(a[i+3], b[i+3])
	}
	for ; i < n; i++ {
		s0 += conjMul(a[i], b[i])
	}
	return s0 + s1 + s2 + s3
}

func conjMul(a, b complex128) complex128 {
	ar, ai := real(a), imag(a)
	br, bi := real(b), imag(b)
	return complex(ar*br+ai*bi, ar*bi-ai*br)
}

// Norm2 returns the squared L2 norm of v.
func Norm2(v []complex128) float64 {
	var acc float64
	for i := range v {
		r, im := real(v[i]), imag(v[i])
		acc += r*r + im*im
	}
	return acc
}

// Scale multiplies v by a in place.
func Scale(v []complex128, a complex128) {
	for i := range v {
		v[i] *= a
	}
}

// AXPY computes dst[i] += a * x[i] in place.
func AXPY(dst, x []complex128, a complex128) {
	if useUnrolled {
		axpyUnrolled(dst, x, a)
		return
	}
	for i := range dst {
		dst[i] += a * x[i]
	}
}

func axpyUnrolled(dst, x []complex128, a complex128) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] += a * x[i]
		dst[i+1] += a * x[i+1]
		dst[i+2] += a * x[i+2]
		dst[i+3] += a * x[i+3]
	}
	for ; i < n; i++ {
		dst[i] += a * x[i]
	}
}

// Zero clears v in place.
func Zero(v []complex128) {
	for i := range v {
		v[i] = 0
	}
}
