package layout

import "testing"

func TestLayoutTwoLinesSmall(t *testing.T) {
	fitted, err := LayoutCaption("NRD CONTROL DE CAJAS", Small)
	if err != nil {
		t.Fatalf("LayoutCaption error: %v", err)
	}
	if len(fitted) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(fitted))
	}
	want := []FittedLine{
		{Text: "NRD CONTROL", FontSize: 25, Baseline: 88, RenderSize: 25},
		{Text: "DE CAJAS", FontSize: 31, Baseline: 128, RenderSize: 32, Secondary: true},
	}
	for i := range want {
		if fitted[i] != want[i] {
			t.Fatalf("line %d: got %+v, want %+v", i, fitted[i], want[i])
		}
	}
}

func TestLayoutTwoLinesLarge(t *testing.T) {
	fitted, err := LayoutCaption("NRD CONTROL DE CAJAS", Large)
	if err != nil {
		t.Fatalf("LayoutCaption error: %v", err)
	}
	want := []FittedLine{
		{Text: "NRD CONTROL", FontSize: 65, Baseline: 225, RenderSize: 65},
		{Text: "DE CAJAS", FontSize: 84, Baseline: 315, RenderSize: 88, Secondary: true},
	}
	if len(fitted) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(fitted))
	}
	for i := range want {
		if fitted[i] != want[i] {
			t.Fatalf("line %d: got %+v, want %+v", i, fitted[i], want[i])
		}
	}
}

func TestLayoutSingleLineUsesSingleBaseline(t *testing.T) {
	for _, tc := range []struct {
		size     CanvasSize
		baseline int
		font     int
	}{
		{Small, 108, 50},
		{Large, 275, 130},
	} {
		fitted, err := LayoutCaption("CAJA", tc.size)
		if err != nil {
			t.Fatalf("LayoutCaption error: %v", err)
		}
		if len(fitted) != 1 {
			t.Fatalf("%v: expected single line, got %d", tc.size, len(fitted))
		}
		got := fitted[0]
		if got.Text != "CAJA" || got.Baseline != tc.baseline || got.FontSize != tc.font || got.RenderSize != tc.font {
			t.Fatalf("%v: unexpected fitted line %+v", tc.size, got)
		}
	}
}

// 空标题仍然输出一行（空文本），保证渲染器总有主行可用。
func TestLayoutEmptyCaption(t *testing.T) {
	fitted, err := LayoutCaption("", Small)
	if err != nil {
		t.Fatalf("LayoutCaption error: %v", err)
	}
	if len(fitted) != 1 || fitted[0].Text != "" || fitted[0].Baseline != 108 {
		t.Fatalf("unexpected fitted lines %+v", fitted)
	}
	if fitted[0].FontSize <= 0 {
		t.Fatalf("font size must stay positive, got %d", fitted[0].FontSize)
	}
}

func TestLayoutUnknownSize(t *testing.T) {
	if _, err := LayoutCaption("CAJA", CanvasSize(300)); err == nil {
		t.Fatalf("expected error for unsupported size")
	}
}

func TestLayoutEmphasisOnlyOnSecondary(t *testing.T) {
	profile := DefaultProfiles()[Small]
	profile.Emphasis = 2
	fitted := Layout(LineSet{Primary: "uno", Secondary: "dos"}, profile)
	if fitted[0].RenderSize != fitted[0].FontSize {
		t.Fatalf("primary must not be emphasized: %+v", fitted[0])
	}
	if fitted[1].RenderSize != fitted[1].FontSize*2 {
		t.Fatalf("secondary emphasis mismatch: %+v", fitted[1])
	}
}

func TestProfileTableSizes(t *testing.T) {
	sizes := DefaultProfiles().Sizes()
	if len(sizes) != 2 || sizes[0] != Small || sizes[1] != Large {
		t.Fatalf("unexpected sizes %v", sizes)
	}
	table := DefaultProfiles()
	delete(table, Small)
	if _, ok := DefaultProfiles()[Small]; !ok {
		t.Fatalf("DefaultProfiles must return a copy")
	}
}
