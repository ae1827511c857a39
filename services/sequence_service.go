package services

import (
	"strings"

	"gorm.io/gorm"
)

// maxOrderIndexRetries bounds how many times a create is retried when a
// concurrent sibling insert claims the same order slot.
const maxOrderIndexRetries = 3

// NextOrderIndex returns the next display-order value for records of model
// matching the optional scope condition: the current maximum order + 1, or 1
// when the scope is empty. Deletions are never compacted, so the sequence is
// dense on insert but may gap over time.
func NextOrderIndex(tx *gorm.DB, model interface{}, scope ...interface{}) (int, error) {
	query := tx.Model(model)
	if len(scope) > 0 {
		query = query.Where(scope[0], scope[1:]...)
	}

	var max int
	if err := query.Select(`COALESCE(MAX("order"), 0)`).Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

// CreateWithOrderIndex runs attempt inside a transaction. attempt computes an
// order index via NextOrderIndex and inserts the record in the same
// transaction; when a concurrent sibling insert wins the same slot the unique
// index rejects the commit and the whole attempt is retried with a fresh index.
func CreateWithOrderIndex(db *gorm.DB, attempt func(tx *gorm.DB) error) error {
	var err error
	for i := 0; i < maxOrderIndexRetries; i++ {
		err = db.Transaction(attempt)
		if err == nil || !IsUniqueViolation(err) {
			return err
		}
	}
	return err
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// Matched on the error text so it works with both PostgreSQL and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
