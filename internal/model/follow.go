package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Follow is a directed edge: UserID follows AuthorID.
type Follow struct {
	UserID   uuid.UUID `json:"user_id"`
	AuthorID uuid.UUID `json:"author_id"`
}

func (f Follow) String() string {
	return fmt.Sprintf("follower: %s, author: %s", f.UserID, f.AuthorID)
}
