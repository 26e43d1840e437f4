package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// breach (hit on updates that move a row onto a taken email or title;
// inserts use ON CONFLICT DO NOTHING instead).
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint breach
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
