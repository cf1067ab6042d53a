package matcher

import "strconv"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count using 1024-based units, with no decimals
// for bytes and one decimal otherwise ("512B", "1.5GB"). Unknown sizes (zero
// or negative) render as "".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}

	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	decimals := 1
	if unit == 0 {
		decimals = 0
	}
	return strconv.FormatFloat(size, 'f', decimals, 64) + sizeUnits[unit]
}
