package mathx

import "testing"

func TestDoubleInRing(t *testing.T) {
	cases := []struct {
		in, want uint16
	}{
		{1, 2}, {2, 4}, {4, 8}, {8, 16}, {16, 32}, {32, 1},
	}
	for _, c := range cases {
		if got := DoubleInRing(c.in, 1, 32); got != c.want {
			t.Errorf("DoubleInRing(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestDoubleInRingSnapsOutOfRangeSeed(t *testing.T) {
	cases := []struct {
		in, want uint16
	}{
		{0, 2},
		{3, 4},
		{1000, 1},
	}
	for _, c := range cases {
		if got := DoubleInRing(c.in, 1, 32); got != c.want {
			t.Errorf("DoubleInRing(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
