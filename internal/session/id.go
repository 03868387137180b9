package session

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID returns a fresh random (v4) session id.
func GenerateID() (string, error) {

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}

	return id.String(), nil

}
