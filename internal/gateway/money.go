package gateway

import (
	"fmt"
	"strconv"
)

// ScaleAmount converts an integer minor-unit amount into the decimal string
// the gateway expects: ScaleAmount(12345, 100) == "123.45". The divisor must
// be a positive power of ten. Only integer arithmetic is used, so repeated
// conversions never drift.
func ScaleAmount(amount int64, divisor int) string {
	d := int64(divisor)
	if d < 1 {
		d = 1
	}

	decimals := 0
	for p := d; p >= 10; p /= 10 {
		decimals++
	}

	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount/d, 10)
	if decimals > 0 {
		s += fmt.Sprintf(".%0*d", decimals, amount%d)
	}
	if neg {
		s = "-" + s
	}
	return s
}
