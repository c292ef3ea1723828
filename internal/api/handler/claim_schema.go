package handler

type createClaimRequest struct {
	UserPolicyID  string  `json:"user_policy_id" validate:"required"`
	IncidentDate  string  `json:"incident_date" validate:"required"` // YYYY-MM-DD
	Description   string  `json:"description"`
	AmountClaimed float64 `json:"amount_claimed" validate:"required"`
}

type decideClaimRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type assignClaimRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}
