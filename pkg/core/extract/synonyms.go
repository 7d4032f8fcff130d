package extract

import "strings"

// Field is a canonical statement line-item category.
type Field string

const (
	FieldRevenue   Field = "revenue"
	FieldCOGS      Field = "cogs"
	FieldOpex      Field = "opex"
	FieldNetIncome Field = "net_income"
)

func (f Field) isCost() bool { return f == FieldCOGS || f == FieldOpex }

// requiredFields are the categories a snapshot always carries; unmatched ones
// are zero-filled with a MissingField warning.
var requiredFields = []Field{FieldRevenue, FieldCOGS, FieldOpex, FieldNetIncome}

// fieldSynonyms is the fixed label dictionary. Matching is case-insensitive
// and substring-tolerant, so "Total Cost of Goods Sold" hits "cost of goods".
var fieldSynonyms = map[Field][]string{
	FieldCOGS: {
		"cost of goods sold", "cogs", "cost of sales", "cost of revenue",
		"direct costs", "cost of products sold",
	},
	FieldNetIncome: {
		"net income", "net profit", "net earnings", "profit for the period",
		"bottom line",
	},
	FieldOpex: {
		"operating expenses", "opex", "overhead", "sg&a",
		"selling general and administrative", "administrative expenses",
		"general expenses",
	},
	FieldRevenue: {
		"total revenue", "revenue", "net sales", "gross sales", "sales",
		"turnover", "gross receipts", "operating revenue", "income",
	},
}

// matchOrder fixes the precedence between categories whose synonyms overlap
// as substrings: cost and net-income labels are checked before revenue so
// "cost of sales" and "net income" never match the revenue synonyms
// "sales"/"income".
var matchOrder = []Field{FieldCOGS, FieldNetIncome, FieldOpex, FieldRevenue}

// MatchLabel resolves a raw line label to its canonical field. The first
// category in matchOrder whose synonym list hits wins, deterministically.
func MatchLabel(label string) (Field, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", false
	}
	for _, field := range matchOrder {
		for _, syn := range fieldSynonyms[field] {
			if strings.Contains(normalized, syn) {
				return field, true
			}
		}
	}
	return "", false
}
