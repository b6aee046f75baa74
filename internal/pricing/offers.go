package pricing

// BankOffer is one entry of the card offer table.
type BankOffer struct {
	Bank        string `json:"bank"`
	Description string `json:"description"`
	MinAmount   int64  `json:"minAmount"`
}

// DefaultBankOffers is the fixed offer table shown on product pages.
var DefaultBankOffers = []BankOffer{
	{Bank: "HDFC Bank", Description: "10% instant discount on credit cards", MinAmount: 5000},
	{Bank: "ICICI Bank", Description: "5% cashback on debit cards", MinAmount: 3000},
	{Bank: "SBI Card", Description: "Flat 1500 off on credit card EMI", MinAmount: 15000},
	{Bank: "Axis Bank", Description: "No-cost EMI up to 6 months", MinAmount: 10000},
	{Bank: "Kotak Bank", Description: "7.5% instant discount on credit cards", MinAmount: 7500},
}

// ApplicableBankOffers keeps the offers whose minimum is met by price, in
// table order.
func ApplicableBankOffers(price int64, table []BankOffer) []BankOffer {
	out := make([]BankOffer, 0, len(table))
	for _, offer := range table {
		if price >= offer.MinAmount {
			out = append(out, offer)
		}
	}
	return out
}
