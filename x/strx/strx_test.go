package strx

import "testing"

func TestCoalesce(t *testing.T) {
	if Coalesce("", "d") != "d" || Coalesce("s", "d") != "s" {
		t.Fatal("Coalesce")
	}
}

func TestKey(t *testing.T) {
	if Key("  Single0\t") != "single0" {
		t.Fatalf("Key = %q", Key("  Single0\t"))
	}
}
