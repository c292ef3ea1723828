package domain

import "time"

// PolicyProduct is an admin-managed catalog template. Customers never hold a
// PolicyProduct directly; purchasing one binds a UserPolicy to it.
type PolicyProduct struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Code          string    `json:"code" bson:"code"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Premium       float64   `json:"premium" bson:"premium"`
	TermMonths    int       `json:"term_months" bson:"term_months"`
	MinSumInsured float64   `json:"min_sum_insured" bson:"min_sum_insured"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
