package ledger

import "time"

// BuildRecord validates raw user input and produces a record stamped with now.
// Name and category are only checked for presence and are stored verbatim.
func BuildRecord(name, category, amount string, now time.Time) (Record, error) {
	if name == "" {
		return Record{}, &InvalidInputError{Field: "name", Reason: "name is required"}
	}
	if category == "" {
		return Record{}, &InvalidInputError{Field: "category", Reason: "category is required"}
	}
	if amount == "" {
		return Record{}, &InvalidInputError{Field: "amount", Reason: "amount is required"}
	}

	money, err := ParseAmount(amount)
	if err != nil {
		return Record{}, &InvalidInputError{Field: "amount", Value: amount, Reason: err.Error()}
	}

	return Record{
		Name:      name,
		Category:  category,
		Amount:    money,
		Timestamp: now,
	}, nil
}
