package complexnum

import (
	"math"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want complex128
	}{
		{"3+4i", complex(3, 4)},
		{"i", complex(0, 1)},
		{"-i", complex(0, -1)},
		{"1-i", complex(1, -1)},
		{"5", complex(5, 0)},
		{"-2.5j", complex(0, -2.5)},
		{"1+1i", complex(1, 1)},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if !ok {
			t.Fatalf("Parse(%q) failed", c.in)
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1+2", "1++2i"} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%q) unexpectedly succeeded", in)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		z    complex128
		unit byte
		want string
	}{
		{complex(3, 4), 'i', "3+4i"},
		{complex(0, 1), 'i', "i"},
		{complex(0, -1), 'i', "-i"},
		{complex(1, -1), 'i', "1-i"},
		{complex(5, 0), 'i', "5"},
		{complex(1, 1), 'j', "1+j"},
	}
	for _, c := range cases {
		got := Format(c.z, c.unit)
		if got != c.want {
			t.Errorf("Format(%v, %q) = %q, want %q", c.z, c.unit, got, c.want)
		}
	}
}

func TestDivByZero(t *testing.T) {
	_, ok := Div(complex(1, 1), complex(0, 0))
	if ok {
		t.Error("Div by 0+0i should fail")
	}
}

func TestDivIdentity(t *testing.T) {
	got, ok := Div(complex(1, 1), complex(1, -1))
	if !ok {
		t.Fatal("Div failed")
	}
	if math.Abs(real(got)-0) > 1e-9 || math.Abs(imag(got)-1) > 1e-9 {
		t.Errorf("(1+i)/(1-i) = %v, want i", got)
	}
}

func TestArgument(t *testing.T) {
	got := Argument(complex(0, 1))
	if math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Argument(i) = %v, want pi/2", got)
	}
}
