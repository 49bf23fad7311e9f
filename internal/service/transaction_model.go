package service

// TransactionCursor identifies a position in a paginated ledger listing.
type TransactionCursor struct {
	Position int
	Limit    int
}
