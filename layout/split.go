package layout

import (
	"strings"
	"unicode"
)

// shortCaptionLimit 为单词（或无空格）标题不拆行的最大字符数。
const shortCaptionLimit = 10

// vowelWindow 是在字符中点两侧各扫描的字符数。
const vowelWindow = 2

// LineSet 是标题拆分后的主行与副行。Secondary 为空表示只渲染一行。
type LineSet struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// HasSecondary 报告是否存在第二行。
func (ls LineSet) HasSecondary() bool { return ls.Secondary != "" }

// Split 将标题拆为最多两行。
//
// 两个及以上单词时在 floor(n/2) 处按词拆分，奇数个单词时多出的词落在副行；
// 否则长度不超过 10 个字符的标题原样作为主行，更长的标题在字符中点附近
// 的第一个元音之后断开（窗口 [mid-2, mid+2]，从左向右扫描），找不到元音时
// 退回中点。长度与下标均按 Unicode 码点计算。
func Split(caption string) LineSet {
	words := strings.Fields(caption)
	if len(words) >= 2 {
		mid := len(words) / 2
		return LineSet{
			Primary:   strings.Join(words[:mid], " "),
			Secondary: strings.Join(words[mid:], " "),
		}
	}

	runes := []rune(caption)
	if len(runes) <= shortCaptionLimit {
		return LineSet{Primary: caption}
	}

	cut := splitPoint(runes)
	return LineSet{
		Primary:   string(runes[:cut]),
		Secondary: string(runes[cut:]),
	}
}

// splitPoint 返回无空格长标题的断开位置。
func splitPoint(runes []rune) int {
	mid := len(runes) / 2
	for i := mid - vowelWindow; i <= mid+vowelWindow; i++ {
		if i < 0 || i >= len(runes) {
			continue
		}
		if isVowel(runes[i]) {
			return i + 1
		}
	}
	return mid
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
