package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderReference returns a human readable order reference such as
// ORD-9F3C21AB, distinct from the database id.
func GenerateOrderReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + id[:8]
}
