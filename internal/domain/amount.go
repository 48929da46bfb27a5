package domain

import (
	"math/big" // Coefficient digits

	"github.com/shopspring/decimal" // Exact decimal amounts
	"gorm.io/gorm"                  // Dialect lookup
	"gorm.io/gorm/schema"           // Column type hook
)

// Amount bounds: decimal(20,4), so 16 digits before the point and 4 after.
const (
	AmountScale         = 4
	AmountIntegerDigits = 16
)

// Amount is a transaction amount column. MySQL keeps it as decimal(20,4);
// SQLite has no exact numeric storage, so there it is kept as text.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d as a column value
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// GormDataType reports the generic data type
func (Amount) GormDataType() string {
	return "decimal"
}

// GormDBDataType picks the column type per dialect
func (Amount) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "decimal(20,4)"
	}
	return "text"
}

// CheckAmount rejects amounts the amount column cannot hold exactly.
// It only inspects exponent and digit count, so oversized inputs such as
// 1e300000000 are refused without being expanded.
func CheckAmount(d decimal.Decimal) error {
	if d.Exponent() < -AmountScale {
		return Invalid("amount", "Amount supports at most 4 decimal places.")
	}
	if d.IsZero() {
		return nil
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	if digits+int(d.Exponent()) > AmountIntegerDigits {
		return Invalid("amount", "Amount is out of range.")
	}
	return nil
}
