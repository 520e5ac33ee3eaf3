package binding

import (
	"encoding/json"
	"testing"
)

func mustJSON(t *testing.T, src string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestInterpolate(t *testing.T) {
	data := mustJSON(t, `{"store": {"name": "NRD", "branches": ["Centro", "Norte"]}, "count": 1000000}`)
	cases := []struct {
		in   string
		want string
	}{
		{"${store.name} CONTROL DE CAJAS", "NRD CONTROL DE CAJAS"},
		{"CAJA ${store.branches[1]}", "CAJA Norte"},
		{"${count}", "1000000"},
		{"${missing}", "${missing}"},
		{"${missing|CAJA}", "CAJA"},
		{"${store.name|X}", "NRD"},
		{"${store.branches[9]|?}", "?"},
		{"sin plantilla", "sin plantilla"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a} ${b|B}", nil); got != "${a} B" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${a.b} y ${ c |x}")
	if len(got) != 2 || got[0] != "a.b" || got[1] != "c" {
		t.Fatalf("unexpected placeholders %v", got)
	}
}

func TestLookup(t *testing.T) {
	data := mustJSON(t, `{"a": {"b": [{"c": "deep"}, [1, 2]]}}`)
	cases := []struct {
		path string
		want any
		ok   bool
	}{
		{"a.b[0].c", "deep", true},
		{"a.b[1][1]", float64(2), true},
		{"a.b[2]", nil, false},
		{"a.b[-1]", nil, false},
		{"a.b[x]", nil, false},
		{"a.b[0", nil, false},
		{"a..b", nil, false},
		{"a.b.c", nil, false},
		{"a[0]", nil, false},
		{"", nil, false},
	}
	for _, tc := range cases {
		got, ok := Lookup(data, tc.path)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("Lookup(%q) = %v, %v; want %v, %v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInterpolateKeepsSurroundingText(t *testing.T) {
	data := mustJSON(t, `{"n": "NRD", "flag": true}`)
	if got := Interpolate("[${n}]-${ n }-${flag}-${x|}", data); got != "[NRD]-NRD-true-" {
		t.Fatalf("unexpected result %q", got)
	}
}
