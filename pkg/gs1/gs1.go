// Package gs1 generates the checksummed container and item identifiers
// assigned when a shipment is packed. Both generators are pure functions of
// the durable row key; keys below the nine-digit serial capacity map to
// distinct serials.
package gs1

import (
	"fmt"
)

const (
	// ExtensionDigit is the fixed first digit of every container code.
	ExtensionDigit = "1"
	// CompanyPrefix is the registered company prefix embedded in every code.
	CompanyPrefix = "8994957"
	// IndicatorDigit is the fixed first digit of every item code.
	IndicatorDigit = "1"

	// serialModulus caps the serial reference at the nine digits the
	// container code has room for. Row keys past it wrap; the unique column
	// on the stored code rejects a colliding wraparound at insert.
	serialModulus = 1_000_000_000
)

// CheckDigit computes the mod-10 check digit for a string of digits.
// Digits are weighted 3,1,3,1,... starting from the rightmost digit.
func CheckDigit(digits string) int {
	total := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		total += int(digits[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return (10 - (total % 10)) % 10
}

// ContainerID builds the 18-digit SSCC for a packed box from its primary
// key: extension digit + company prefix + zero-padded serial reference,
// then the check digit.
func ContainerID(boxID uint) string {
	serial := fmt.Sprintf("%09d", boxID%serialModulus)
	body := ExtensionDigit + CompanyPrefix + serial
	return fmt.Sprintf("%s%d", body, CheckDigit(body))
}

// ItemID builds the 8-digit GTIN used on packed boxes: indicator digit plus
// the company prefix truncated to fill seven digits, then the check digit.
func ItemID() string {
	body := IndicatorDigit + CompanyPrefix[:6]
	return fmt.Sprintf("%s%d", body, CheckDigit(body))
}
