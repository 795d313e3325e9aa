package domain

import "time"

// Event types
const (
	EventTypeFundingCreated  = "funding.created"
	EventTypeFundingAmended  = "funding.amended"
	EventTypeMerchantCreated = "merchant.created"
)

// Aggregate types
const (
	AggregateTypeFunding  = "funding"
	AggregateTypeMerchant = "merchant"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// FundingCreatedEvent payload
type FundingCreatedEvent struct {
	Reference     string `json:"reference"`
	MerchantID    string `json:"merchant_id"`
	Amount        string `json:"amount"`
	BalanceBefore string `json:"balance_before"`
	BalanceAfter  string `json:"balance_after"`
	Source        string `json:"source"`
}

// FundingAmendedEvent payload
type FundingAmendedEvent struct {
	Reference    string `json:"reference"`
	MerchantID   string `json:"merchant_id"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balance_after"`
}

// MerchantCreatedEvent payload
type MerchantCreatedEvent struct {
	MerchantID string `json:"merchant_id"`
	Name       string `json:"name"`
}
