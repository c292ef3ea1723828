package handler

import "github.com/insureline/policy-admin/internal/core/ports"

type createProductRequest struct {
	Code          string  `json:"code" validate:"required"`
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	Premium       float64 `json:"premium" validate:"required,gt=0"`
	TermMonths    int     `json:"term_months" validate:"required,gt=0"`
	MinSumInsured float64 `json:"min_sum_insured" validate:"required,gt=0"`
}

// updateProductRequest is a patch: absent fields leave the product untouched.
type updateProductRequest struct {
	Code          *string  `json:"code"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Premium       *float64 `json:"premium" validate:"omitempty,gt=0"`
	TermMonths    *int     `json:"term_months" validate:"omitempty,gt=0"`
	MinSumInsured *float64 `json:"min_sum_insured" validate:"omitempty,gt=0"`
}

// pageEnvelope is the generic paginated list response shape.
type pageEnvelope struct {
	Items any        `json:"items"`
	Page  ports.Page `json:"pagination"`
}
