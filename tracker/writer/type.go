package writer

//
// Column is an enum that represents a column of the trade history CSV file.
//
type Column int

const (
	Timestamp Column = iota
	Location
	Pair
	Type
	Amount
	Rate
	Cost
	CostCurrency
	Fee
	FeeCurrency
)

var (
	columns = []Column{Timestamp, Location, Pair, Type, Amount, Rate, Cost, CostCurrency, Fee, FeeCurrency}
)

func (o Column) String() string {
	return [...]string{
		"Timestamp", "Location", "Pair", "Type", "Amount", "Rate", "Cost", "CostCurrency", "Fee", "FeeCurrency",
	}[o]
}
