package validators

type ApproveRequest struct {
	Notes      string   `json:"notes" validate:"max=2000"`
	Conditions []string `json:"conditions" validate:"max=20,dive,max=500"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
	Notes  string `json:"notes" validate:"max=2000"`
}

type BulkApproveRequest struct {
	UserIDs    []string `json:"userIds" validate:"max=200"`
	Notes      string   `json:"notes" validate:"max=2000"`
	Conditions []string `json:"conditions" validate:"max=20,dive,max=500"`
}
