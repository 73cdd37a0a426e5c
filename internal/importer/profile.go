package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountPositive means one column holding the expense as a positive value.
	amountPositive amountMode = iota
	// amountSigned means one signed column where expenses are negative.
	amountSigned
	// amountSplit means separate debit and credit columns; only debits are expenses.
	amountSplit
)

// Profile describes the column layout of a supported CSV export. Column names
// are matched case-insensitively after trimming.
type Profile struct {
	Name        string
	DateCol     string
	ConceptCol  string
	AmountMode  amountMode
	AmountCol   string // used by amountPositive and amountSigned
	DebitCol    string // used by amountSplit
	CreditCol   string // used by amountSplit
	CategoryCol string // optional
	IconCol     string // optional
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.ConceptCol}

	switch p.AmountMode {
	case amountPositive, amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order during detection. More specific layouts come first.
var profiles = []Profile{
	{
		Name:        "ledger",
		DateCol:     "date",
		ConceptCol:  "concept",
		AmountMode:  amountPositive,
		AmountCol:   "amount",
		CategoryCol: "category",
		IconCol:     "icon",
	},
	{
		Name:       "cgd-cartao",
		DateCol:    "data",
		ConceptCol: "descrição",
		AmountMode: amountSplit,
		DebitCol:   "débito",
		CreditCol:  "crédito",
	},
	{
		Name:       "cgd-extrato",
		DateCol:    "data mov.",
		ConceptCol: "descrição",
		AmountMode: amountSigned,
		AmountCol:  "movimento",
	},
	{
		Name:       "cgd-conta",
		DateCol:    "data mov.",
		ConceptCol: "descrição",
		AmountMode: amountSigned,
		AmountCol:  "montante",
	},
}
