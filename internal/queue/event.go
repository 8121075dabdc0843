// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// CustomerCreatedEvent is published when a customer is successfully
// created. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type CustomerCreatedEvent struct {
	CustomerID uint64 `json:"customer_id"`
	StoreID    int    `json:"store_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	City       string `json:"city"`
	Country    string `json:"country"`
	CreatedAt  string `json:"created_at"`
}
