// Package coin parses and normalizes user-supplied coin amounts.
//
// Users type whole "PHOTON" but the chain settles in the micro-unit
// "uphoton" (1 PHOTON = 1,000,000 uphoton). Normalize applies that single
// rescale rule and rejects everything else, so only canonical micro-unit
// amounts ever reach storage or the payout path.
package coin

import (
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical denominations.
const (
	DenomMicroPhoton = "uphoton"
	DenomMicroAtone  = "uatone"
)

// microScale is the micro-unit factor: 1 display unit = 1e6 micro-units.
var microScale = big.NewInt(1_000_000)

var (
	// ErrInvalidAmount reports a token that does not parse as a positive
	// integer quantity followed by a denom, or a quantity of zero.
	ErrInvalidAmount = errors.New("invalid amount: must be a positive integer followed by a denom")

	// ErrUnsupportedDenom reports a denom other than the canonical micro-unit
	// after alias resolution.
	ErrUnsupportedDenom = errors.New("unsupported denom: amount must be in " + DenomMicroPhoton)
)

// coinPattern matches "<digits><denom>" with optional whitespace between the
// quantity and the denom, mirroring the chain SDK's coin syntax.
var coinPattern = regexp.MustCompile(`^([0-9]+)[[:space:]]*([a-zA-Z][a-zA-Z0-9/:._-]*)$`)

// Coin is an integer quantity of a single denomination. Amount stays textual
// to preserve arbitrary-precision semantics end to end.
type Coin struct {
	Amount string
	Denom  string
}

// Parse splits a raw token into quantity text and denom without applying any
// normalization rules. It fails with ErrInvalidAmount on malformed input.
func Parse(raw string) (Coin, error) {
	m := coinPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Coin{}, ErrInvalidAmount
	}
	return Coin{Amount: m[1], Denom: m[2]}, nil
}

// Normalize parses raw and rescales it into the canonical micro-unit.
// A quantity of zero fails with ErrInvalidAmount. A denom of "photon" (any
// case) is multiplied by 1,000,000 and rewritten to "uphoton"; any remaining
// denom other than "uphoton" fails with ErrUnsupportedDenom.
//
// Both bounty creation and bounty update must go through this same function
// so an amount/denom mismatch can never enter storage.
func Normalize(raw string) (Coin, error) {
	c, err := Parse(raw)
	if err != nil {
		return Coin{}, err
	}

	qty, ok := new(big.Int).SetString(c.Amount, 10)
	if !ok || qty.Sign() == 0 {
		return Coin{}, ErrInvalidAmount
	}

	if strings.EqualFold(c.Denom, "photon") {
		qty.Mul(qty, microScale)
		c.Denom = DenomMicroPhoton
	}
	if c.Denom != DenomMicroPhoton {
		return Coin{}, ErrUnsupportedDenom
	}

	c.Amount = qty.String()
	return c, nil
}

// displaySymbols maps micro-denoms to their human-facing symbols.
var displaySymbols = map[string]string{
	DenomMicroPhoton: "PHOTON",
	DenomMicroAtone:  "ATONE",
}

// Format renders a coin for display, rescaling known micro-units back to the
// human unit (divide by 1,000,000) and substituting the display symbol.
// Unknown denoms and unparseable amounts render verbatim. Presentation only:
// the stored record is never altered.
func Format(c Coin) string {
	symbol, known := displaySymbols[c.Denom]
	if !known {
		return c.Amount + " " + c.Denom
	}
	qty, ok := new(big.Int).SetString(c.Amount, 10)
	if !ok {
		return c.Amount + " " + c.Denom
	}
	human := decimal.NewFromBigInt(qty, -6)
	return human.String() + " " + symbol
}
