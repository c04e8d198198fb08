package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adaptgo/core"
)

func TestNewPauli(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantX   core.Ket
		wantZ   core.Ket
		wantErr bool
	}{
		{"AllLetters", "IXYZ", 0b0110, 0b1100, false},
		{"Identity", "II", 0, 0, false},
		{"Lowercase", "xz", 0b01, 0b10, false},
		{"Empty", "", 0, 0, true},
		{"BadLetter", "XQ", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPauli(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantX, p.X)
			assert.Equal(t, tt.wantZ, p.Z)
			assert.Equal(t, len(tt.in), p.N)
		})
	}
}

func TestPauliRoundTrip(t *testing.T) {
	for _, s := range []string{"X", "ZIY", "YYXX", "IIII"} {
		assert.Equal(t, s, MustPauli(s).String())
	}
}

func TestPauliAction(t *testing.T) {
	// Y|0> = i|1>, Y|1> = -i|0>
	y := MustPauli("Y")
	assert.Equal(t, core.Ket(1), y.Dest(0))
	assert.Equal(t, complex128(1i), y.Phase(0))
	assert.Equal(t, complex128(-1i), y.Phase(1))

	// Z|1> = -|1>
	z := MustPauli("Z")
	assert.Equal(t, core.Ket(1), z.Dest(1))
	assert.Equal(t, complex128(-1), z.Phase(1))
	assert.Equal(t, complex128(1), z.Phase(0))

	// X flips with no phase.
	x := MustPauli("X")
	assert.Equal(t, core.Ket(1), x.Dest(0))
	assert.Equal(t, complex128(1), x.Phase(0))
	assert.Equal(t, complex128(1), x.Phase(1))
}

func TestCommutes(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"X", "X", true},
		{"X", "Z", false},
		{"X", "Y", false},
		{"XX", "ZZ", true},  // two anticommuting sites
		{"XI", "ZZ", false}, // one anticommuting site
		{"XY", "YX", true},
		{"IZ", "ZI", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustPauli(tt.a).Commutes(MustPauli(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}

func TestSupport(t *testing.T) {
	p := MustPauli("IXIZY")
	sup := p.Support()
	assert.Equal(t, uint64(3), sup.GetCardinality())
	assert.True(t, sup.Contains(1))
	assert.True(t, sup.Contains(3))
	assert.True(t, sup.Contains(4))
	assert.False(t, sup.Contains(0))
}

func TestScaledPauliKey(t *testing.T) {
	a := Scale(0.5, MustPauli("XZ"))
	b := Scale(0.5, MustPauli("XZ"))
	c := Scale(-0.5, MustPauli("XZ"))
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestNewCommutingSum(t *testing.T) {
	zz1 := Scale(1, ZZ(0, 1, 3))
	zz2 := Scale(0.5, ZZ(1, 2, 3))
	cs, err := NewCommutingSum([]ScaledPauli{zz1, zz2})
	require.NoError(t, err)
	assert.Equal(t, 3, cs.NumQubits())
	assert.Len(t, cs.Terms(), 2)

	_, err = NewCommutingSum([]ScaledPauli{
		Scale(1, MustPauli("XI")),
		Scale(1, MustPauli("ZI")),
	})
	require.Error(t, err)

	_, err = NewCommutingSum(nil)
	require.Error(t, err)

	_, err = NewCommutingSum([]ScaledPauli{
		Scale(1, MustPauli("X")),
		Scale(1, MustPauli("XX")),
	})
	require.Error(t, err, "dimension mismatch")
}

func TestNewPauliSumMergesDuplicates(t *testing.T) {
	ps, err := NewPauliSum([]ScaledPauli{
		Scale(1, MustPauli("XZ")),
		Scale(2, MustPauli("XZ")),
		Scale(1, MustPauli("YI")),
	})
	require.NoError(t, err)
	assert.Len(t, ps.Terms(), 2)

	var xz ScaledPauli
	for _, tm := range ps.Terms() {
		if tm.Word == MustPauli("XZ") {
			xz = tm
		}
	}
	assert.InDelta(t, 3.0, xz.Coeff, 1e-15)

	// Exact cancellation drops the term; all-zero sums are rejected.
	_, err = NewPauliSum([]ScaledPauli{
		Scale(1, MustPauli("X")),
		Scale(-1, MustPauli("X")),
	})
	require.Error(t, err)
}

func TestPauliSumKeyOrderFree(t *testing.T) {
	a, err := NewPauliSum([]ScaledPauli{Scale(1, MustPauli("XI")), Scale(2, MustPauli("IZ"))})
	require.NoError(t, err)
	b, err := NewPauliSum([]ScaledPauli{Scale(2, MustPauli("IZ")), Scale(1, MustPauli("XI"))})
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())
}

func TestMatrix(t *testing.T) {
	// Y matrix: [[0, -i], [i, 0]]
	m := MustPauli("Y").Matrix()
	assert.Equal(t, complex128(0), m.At(0, 0))
	assert.Equal(t, complex128(-1i), m.At(0, 1))
	assert.Equal(t, complex128(1i), m.At(1, 0))
	assert.Equal(t, complex128(0), m.At(1, 1))
}

func TestDiagonalFloor(t *testing.T) {
	// H = Z0 + Z1 on 2 qubits: eigenvalues {2, 0, 0, -2}.
	h, err := NewPauliSum([]ScaledPauli{
		Scale(1, MustPauli("ZI")),
		Scale(1, MustPauli("IZ")),
	})
	require.NoError(t, err)
	floor, err := DiagonalFloor(h)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, floor, 1e-15)

	hx, err := NewPauliSum([]ScaledPauli{Scale(1, MustPauli("X"))})
	require.NoError(t, err)
	_, err = DiagonalFloor(hx)
	require.Error(t, err)
}
