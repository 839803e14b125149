// Package services implements the memories application logic: account
// registration and login, and the image and album gallery.
package services

import (
	"time"

	"github.com/google/uuid"
)

// Seams for tests.
var (
	now   = time.Now
	newID = func() (string, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
)
