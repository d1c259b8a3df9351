package domain

import "time"

// Customer is created lazily on a user's first completed order.
type Customer struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	FirstOrderDate time.Time `json:"firstOrderDate"`
	CustomerSince  time.Time `json:"customerSince"`
}
