package validators

type UpdateBookingRequest struct {
	Status          *string  `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	StartDate       *string  `json:"startDate" validate:"omitempty,date_value"`
	EndDate         *string  `json:"endDate" validate:"omitempty,date_value"`
	GroupSize       *int     `json:"groupSize" validate:"omitempty,min=1,max=50"`
	TotalAmount     *float64 `json:"totalAmount" validate:"omitempty,gte=0"`
	SpecialRequests *string  `json:"specialRequests" validate:"omitempty,max=1000"`
	Notes           *string  `json:"notes" validate:"omitempty,max=2000"`
}

type CancelBookingRequest struct {
	Reason       string  `json:"reason" validate:"max=500"`
	RefundAmount float64 `json:"refundAmount" validate:"gte=0"`
	Notes        string  `json:"notes" validate:"max=2000"`
}

// CreateBookingRequest leaves presence checks to the service so that a
// missing field yields a single "Missing required fields" error.
type CreateBookingRequest struct {
	UserID          string  `json:"userId" validate:"omitempty,object_id"`
	TourID          string  `json:"tourId" validate:"omitempty,object_id"`
	GuideID         string  `json:"guideId" validate:"omitempty,object_id"`
	StartDate       string  `json:"startDate" validate:"omitempty,date_value"`
	EndDate         string  `json:"endDate" validate:"omitempty,date_value"`
	GroupSize       int     `json:"groupSize" validate:"gte=0,max=50"`
	TotalAmount     float64 `json:"totalAmount" validate:"gte=0"`
	SpecialRequests string  `json:"specialRequests" validate:"max=1000"`
	PaymentMethod   string  `json:"paymentMethod" validate:"max=50"`
	Notes           string  `json:"notes" validate:"max=2000"`
}
