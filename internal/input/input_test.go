package input

import "testing"

func TestDecodeSwitch(t *testing.T) {
	cases := []struct {
		count uint16
		want  SwitchPos
	}{
		{0, Down},
		{408, Down},
		{409, Center},
		{500, Center},
		{614, Center},
		{615, Up},
		{1023, Up},
	}
	for _, c := range cases {
		if got := DecodeSwitch(c.count); got != c.want {
			t.Errorf("DecodeSwitch(%d) = %v, want %v", c.count, got, c.want)
		}
	}
}

func TestDecodeKeyAnalog(t *testing.T) {
	if DecodeKeyAnalog(203) != Off {
		t.Errorf("203 should be OFF")
	}
	if DecodeKeyAnalog(204) != On {
		t.Errorf("204 should be ON")
	}
}

func TestFilterRequiresAgreement(t *testing.T) {
	var f Filter[SwitchPos]

	if _, settled := f.Push(Center); settled {
		t.Fatalf("single sample should never settle")
	}
	if _, settled := f.Push(Center); settled {
		t.Fatalf("two samples should never settle")
	}
	v, settled := f.Push(Center)
	if !settled || v != Center {
		t.Fatalf("three agreeing samples should settle on Center, got %v settled=%v", v, settled)
	}

	// A single noisy sample should not move the filtered value.
	v, settled = f.Push(Up)
	if settled || v != Center {
		t.Fatalf("one disagreeing sample should not change filtered value, got %v settled=%v", v, settled)
	}
}

func TestFilterIdempotence(t *testing.T) {
	var f Filter[SwitchPos]
	f.Push(Up)
	f.Push(Down) // noise
	f.Push(Up)
	f.Push(Up)
	v, settled := f.Push(Up)
	if !settled || v != Up {
		t.Fatalf("three identical samples after noise should settle on Up, got %v settled=%v", v, settled)
	}
}
