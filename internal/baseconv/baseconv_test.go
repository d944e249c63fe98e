package baseconv

import "testing"

func TestParseFormatRoundTrip(t *testing.T) {
	for k := int64(-512); k <= 511; k++ {
		s, ok := Format(k, 2, 0)
		if !ok {
			t.Fatalf("Format(%d) failed", k)
		}
		back, ok := Parse(s, 2)
		if !ok || back != k {
			t.Fatalf("round trip failed for %d: s=%q back=%d", k, s, back)
		}
	}
}

func TestDec2HexNegativeOne(t *testing.T) {
	s, ok := Format(-1, 16, 0)
	if !ok || s != "FFFFFFFFFF" {
		t.Fatalf("Format(-1, 16) = %q, %v, want FFFFFFFFFF", s, ok)
	}
}

func TestHex2DecFF(t *testing.T) {
	n, ok := Parse("FF", 16)
	if !ok || n != 255 {
		t.Fatalf("Parse(FF, 16) = %d, %v, want 255", n, ok)
	}
}

func TestOutOfRange(t *testing.T) {
	if _, ok := Format(512, 2, 0); ok {
		t.Error("Format(512, 2) should fail: out of BIN range")
	}
	if _, ok := Format(-513, 2, 0); ok {
		t.Error("Format(-513, 2) should fail: out of BIN range")
	}
}

func TestInvalidDigits(t *testing.T) {
	if _, ok := Parse("12", 2); ok {
		t.Error("Parse(12, base 2) should fail: invalid digit")
	}
	if _, ok := Parse("12345678901", 2); ok {
		t.Error("Parse longer than 10 chars should fail")
	}
}

func TestPlacesPadding(t *testing.T) {
	s, ok := Format(5, 2, 8)
	if !ok || s != "00000101" {
		t.Fatalf("Format(5,2,8) = %q, %v, want 00000101", s, ok)
	}
	if _, ok := Format(-5, 2, 8); ok {
		t.Error("places should not apply to negative values")
	}
}
