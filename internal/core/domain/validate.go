package domain

import (
	"fmt"
	"strings"
	"time"
)

// Construction guards. Every entity constructor runs these before anything is
// allocated, so a validation failure never leaves a half-built entity behind.

func requireNotBlank(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be blank", ErrValidation, name)
	}
	return nil
}

func requirePositive(value int, name string) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrValidation, name)
	}
	return nil
}

func requireTime(value time.Time, name string) error {
	if value.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrValidation, name)
	}
	return nil
}
