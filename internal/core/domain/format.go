package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxFractionDigits is the number of digits kept after the decimal point.
const MaxFractionDigits = 8

// Non-finite renderings. Neither infinity symbol parses back as an operand;
// "NaN" does, so a NaN result keeps feeding calculations.
const (
	positiveInfinityText = "∞"
	negativeInfinityText = "-∞"
	notANumberText       = "NaN"
)

// FormatNumber renders v in fixed-point notation with at most
// MaxFractionDigits fractional digits, trailing zeros and a trailing
// decimal point removed. 5.0 renders as "5", 2.5 as "2.5" and 1/3 as
// "0.33333333".
//
// Digits come from the shortest text that parses back to v, so 1e23
// renders as "100000000000000000000000" rather than its binary
// expansion. Only when that text has too many fractional digits is v
// rounded, half-even on the exact binary value.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return notANumberText
	case math.IsInf(v, 1):
		return positiveInfinityText
	case math.IsInf(v, -1):
		return negativeInfinityText
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if point := strings.IndexByte(s, '.'); point >= 0 && len(s)-point-1 > MaxFractionDigits {
		s = strconv.FormatFloat(v, 'f', MaxFractionDigits, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// ParseOperand parses operand text as a float64.
// Out-of-range literals saturate to ±Inf rather than failing.
func ParseOperand(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrOperandParse, text)
	}
	return v, nil
}
