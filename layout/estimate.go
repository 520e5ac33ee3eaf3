package layout

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// 字宽系数：没有真实字体度量时，按每个字符占字号的比例估算行宽。
const (
	upperWidthFactor = 0.65
	lowerWidthFactor = 0.55

	shrinkMargin   = 0.95 // 缩小时再留 5% 余量
	shortLineRatio = 0.7  // 估算宽度低于可用宽度的该比例视为短行
	growFactor     = 1.1  // 短行放大 10%
)

// EstimateFontSize 估算 line 在 maxWidth 内可用的字号。
//
// 估算宽度超出 maxWidth 时按比例缩小（不低于 baseSize/2），明显偏短时放大
// 10%，其余情况保持 baseSize。
func EstimateFontSize(line string, maxWidth float64, baseSize int) int {
	base := float64(baseSize)
	estimated := float64(utf8.RuneCountInString(line)) * base * widthFactor(line)

	if estimated > maxWidth {
		candidate := base * (maxWidth / estimated) * shrinkMargin
		return max(int(math.Floor(candidate)), baseSize/2)
	}
	if estimated < maxWidth*shortLineRatio {
		return int(math.Floor(base * growFactor))
	}
	return baseSize
}

// EstimateTextWidth 返回 line 在 fontSize 下的估算宽度（像素）。
func EstimateTextWidth(line string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(line)) * fontSize * widthFactor(line)
}

// widthFactor 含大写字母的行按更宽的字宽估算。
func widthFactor(line string) float64 {
	for _, r := range line {
		if unicode.IsUpper(r) {
			return upperWidthFactor
		}
	}
	return lowerWidthFactor
}
