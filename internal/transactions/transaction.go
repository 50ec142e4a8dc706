package transactions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adiwijaya/tokokita-backend/internal/cart"
)

// Transaction is an immutable record of a completed checkout. The id is
// millisecond-derived and doubles as the purchase timestamp in clients.
type Transaction struct {
	ID            int64           `json:"id"`
	Items         []cart.Line     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	Change        decimal.Decimal `json:"change"`
}

// Timestamp recovers the purchase time encoded in the id.
func (t Transaction) Timestamp() time.Time {
	return time.UnixMilli(t.ID)
}

func cloneLines(lines []cart.Line) []cart.Line {
	if lines == nil {
		return nil
	}
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out
}

// Clone returns a copy whose items slice is independent of the
// receiver's.
func (t Transaction) Clone() Transaction {
	t.Items = cloneLines(t.Items)
	return t
}
