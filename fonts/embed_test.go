package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"Go-Bold", "embed:go-bold", " Go-Regular "} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned empty data", name)
		}
	}
	if _, err := Load("Inter"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
	if names := Names(); len(names) != 2 || names[0] != Bold {
		t.Fatalf("unexpected names %v", names)
	}
}
