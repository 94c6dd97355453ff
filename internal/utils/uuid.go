package utils

import "github.com/google/uuid"

// NewID returns a unique string identifier, used for advisory lock owners
// and history entries. Ids are time-ordered V7 UUIDs so values minted
// across contexts still sort by creation; on the rare V7 failure it falls
// back to a random V4.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
