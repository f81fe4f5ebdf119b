package naira

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"₦1,000,000", 1000000},
		{"1000000", 1000000},
		{"₦950,000 per year", 950000},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("Parse(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	if _, err := Parse("free"); err == nil {
		t.Fatal("want error for digitless input")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "₦0"},
		{950, "₦950"},
		{1000, "₦1,000"},
		{1000000, "₦1,000,000"},
		{25500000, "₦25,500,000"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Fatalf("Format(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 999, 1000, 123456789, 1 << 40} {
		got, err := Parse(Format(n))
		if err != nil {
			t.Fatal(err)
		}
		if got != n {
			t.Fatalf("round trip %d -> %d", n, got)
		}
	}
}
