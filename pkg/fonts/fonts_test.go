package fonts

import "testing"

func TestRegular(t *testing.T) {
	f, err := Regular()
	if err != nil {
		t.Fatalf("Regular: %v", err)
	}
	if f.UnitsPerEm() == 0 {
		t.Error("UnitsPerEm = 0")
	}

	again, err := Regular()
	if err != nil {
		t.Fatalf("Regular: %v", err)
	}
	if f != again {
		t.Error("Regular should return the cached font instance")
	}
}
