package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty",
	"Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

var (
	hundred    = decimal.NewFromInt(100)
	croreValue = decimal.NewFromInt(crore)
)

// AmountToWords spells out a rupee amount using Indian grouping, e.g.
// 1180.50 -> "One Thousand One Hundred Eighty Rupees and Fifty Paise Only".
// A nil amount reads as zero.
func AmountToWords(amount *decimal.Decimal) string {
	if amount == nil {
		return "Zero Rupees Only"
	}

	value := *amount
	var sb strings.Builder
	if value.IsNegative() {
		sb.WriteString("Minus ")
		value = value.Abs()
	}

	major := value.Truncate(0)
	paise := value.Sub(major).Mul(hundred).Round(0).IntPart()
	if paise >= 100 {
		// x.995 and above rounds into the next rupee
		major = major.Add(decimal.NewFromInt(1))
		paise -= 100
	}

	sb.WriteString(integerToWords(major))
	sb.WriteString(" Rupees")
	if paise > 0 {
		sb.WriteString(" and ")
		sb.WriteString(numberToWords(paise))
		sb.WriteString(" Paise")
	}
	sb.WriteString(" Only")
	return sb.String()
}

// integerToWords spells a non-negative whole amount of any size. Amounts of a
// crore or more are split with exact decimal division, so counts of crores
// recurse: 10^14 reads "Ten Lakh Crore".
func integerToWords(n decimal.Decimal) string {
	if n.LessThan(croreValue) {
		return numberToWords(n.IntPart())
	}
	q, r := n.QuoRem(croreValue, 0)
	return join(integerToWords(q)+" Crore", r.IntPart(), numberToWords)
}

// numberToWords renders n >= 0. Trailing clauses are dropped when their remainder is zero.
func numberToWords(n int64) string {
	switch {
	case n == 0:
		return "Zero"
	case n < 20:
		return ones[n]
	case n < 100:
		return join(tens[n/10], n%10, func(r int64) string { return ones[r] })
	case n < thousand:
		return join(ones[n/100]+" Hundred", n%100, numberToWords)
	case n < lakh:
		return join(numberToWords(n/thousand)+" Thousand", n%thousand, numberToWords)
	case n < crore:
		return join(numberToWords(n/lakh)+" Lakh", n%lakh, numberToWords)
	default:
		return join(numberToWords(n/crore)+" Crore", n%crore, numberToWords)
	}
}

func join(head string, rest int64, words func(int64) string) string {
	if rest == 0 {
		return head
	}
	return head + " " + words(rest)
}
