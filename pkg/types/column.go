package types

import "fmt"

// Column names one priced cell of a board row.
type Column string

const (
	ColumnCall        = Column("call")
	ColumnPut         = Column("put")
	ColumnPutAndStock = Column("put&stock")
	ColumnBuyWrite    = Column("buywrite")
	ColumnCallSpread  = Column("callspread")
)

// QuotedColumns are the columns a human quotes on the public board.
var QuotedColumns = []Column{ColumnCall, ColumnPut, ColumnPutAndStock, ColumnBuyWrite}

// PricedColumns are every price-valued column of a row.
var PricedColumns = []Column{ColumnCall, ColumnPut, ColumnPutAndStock, ColumnBuyWrite, ColumnCallSpread}

func ParseColumn(s string) (Column, error) {
	switch c := Column(s); c {
	case ColumnCall, ColumnPut, ColumnPutAndStock, ColumnBuyWrite, ColumnCallSpread:
		return c, nil
	case "calls":
		return ColumnCall, nil
	case "puts":
		return ColumnPut, nil
	case "putandstock", "pns":
		return ColumnPutAndStock, nil
	case "bw":
		return ColumnBuyWrite, nil
	default:
		return "", fmt.Errorf("%w: unknown column '%v'", ErrPrecondition, s)
	}
}
