package domain

import "time"

// ProviderAccount represents an upstream provider account through which VAS
// products are fulfilled.
type ProviderAccount struct {
	ID            string
	Name          string
	Channel       string
	AccountNumber string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
