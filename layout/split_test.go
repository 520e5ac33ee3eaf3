package layout

import (
	"strings"
	"testing"
)

func TestSplitKnownCaptions(t *testing.T) {
	cases := []struct {
		caption   string
		primary   string
		secondary string
	}{
		{"NRD CONTROL DE CAJAS", "NRD CONTROL", "DE CAJAS"},
		{"CAJA", "CAJA", ""},
		// S0 U1 P2 E3 R4 M5 E6 R7 C8：mid=6，窗口 [4,8] 中第一个元音在 6。
		{"SUPERMERCADO", "SUPERME", "RCADO"},
		{"ELECTRODOMESTICO", "ELECTRO", "DOMESTICO"},
		{"", "", ""},
		{"   ", "   ", ""},
		{"A B", "A", "B"},
		{"uno dos tres", "uno", "dos tres"},
		{"  spaced   out\twords  ", "spaced", "out words"},
		{"0123456789", "0123456789", ""},
		// 窗口 [3,7] 内没有元音时退回中点 5。
		{"BCDFGHJKLMN", "BCDFG", "HJKLMN"},
	}
	for _, tc := range cases {
		got := Split(tc.caption)
		if got.Primary != tc.primary || got.Secondary != tc.secondary {
			t.Fatalf("Split(%q) = (%q, %q), want (%q, %q)", tc.caption, got.Primary, got.Secondary, tc.primary, tc.secondary)
		}
	}
}

// TestSplitWordMidpoint 断言：多词标题主行恰好包含 floor(n/2) 个词，且两行拼接还原单空格序列。
func TestSplitWordMidpoint(t *testing.T) {
	captions := []string{
		"a b",
		"a b c",
		"one two three four",
		"one  two\tthree four five six seven",
		"caja registradora central norte",
	}
	for _, caption := range captions {
		words := strings.Fields(caption)
		got := Split(caption)
		if n := len(strings.Fields(got.Primary)); n != len(words)/2 {
			t.Fatalf("Split(%q) primary has %d words, want %d", caption, n, len(words)/2)
		}
		if joined := got.Primary + " " + got.Secondary; joined != strings.Join(words, " ") {
			t.Fatalf("Split(%q) rejoined to %q", caption, joined)
		}
	}
}

// TestSplitLongWordKeepsAllCharacters 断言：长单词拆分后不丢失也不重复字符。
func TestSplitLongWordKeepsAllCharacters(t *testing.T) {
	captions := []string{
		"SUPERMERCADO",
		"electrodomesticos",
		"XXXXXXXXXXXXXXXXXXXX",
		"Administración",
		"            ",
		"ÁÉÍÓÚáéíóúÑñ",
	}
	for _, caption := range captions {
		got := Split(caption)
		if got.Primary+got.Secondary != caption {
			t.Fatalf("Split(%q) lost characters: %q + %q", caption, got.Primary, got.Secondary)
		}
		if got.Secondary == "" {
			t.Fatalf("Split(%q) should produce two lines", caption)
		}
	}
}

// 长度按字符而不是字节计算：10 个带重音的字符仍算短标题。
func TestSplitCountsRunes(t *testing.T) {
	caption := "ÁÉÍÓÚáéíóú"
	got := Split(caption)
	if got.Primary != caption || got.Secondary != "" {
		t.Fatalf("Split(%q) = %+v, want single line", caption, got)
	}
}

// 扫描从左向右，取窗口内第一个元音而不是离中点最近的元音。
func TestSplitVowelScanOrder(t *testing.T) {
	// len 12, mid 6, 窗口 [4,8] = "a","x","x","x","o"，第一个元音在 4。
	got := Split("xxxxaxxxoxxx")
	if got.Primary != "xxxxa" || got.Secondary != "xxxoxxx" {
		t.Fatalf("unexpected split %+v", got)
	}
	// 大写元音同样有效。
	got = Split("BCDFGHIJKLMN")
	if got.Primary != "BCDFGHI" {
		t.Fatalf("unexpected split %+v", got)
	}
}
