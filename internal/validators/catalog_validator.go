package validators

type BulkActionRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=200"`
	Action string   `json:"action" validate:"required"`
	Reason string   `json:"reason" validate:"max=500"`
}

type VehicleStatusRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject suspend activate maintenance"`
	Reason string `json:"reason" validate:"max=500"`
}

type HotelLocationRequest struct {
	Address  string `json:"address" validate:"max=300"`
	City     string `json:"city" validate:"max=100"`
	District string `json:"district" validate:"max=100"`
	Province string `json:"province" validate:"max=100"`
}

type CreateHotelRequest struct {
	Name        string               `json:"name" validate:"required,min=2,max=200"`
	Description string               `json:"description" validate:"max=5000"`
	Location    HotelLocationRequest `json:"location"`
	Owner       string               `json:"owner" validate:"required,object_id"`
	StarRating  int                  `json:"starRating" validate:"gte=0,max=5"`
	Amenities   map[string]bool      `json:"amenities"`
}

type UpdateHotelRequest struct {
	Name        *string               `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string               `json:"description" validate:"omitempty,max=5000"`
	Location    *HotelLocationRequest `json:"location"`
	StarRating  *int                  `json:"starRating" validate:"omitempty,gte=0,max=5"`
	Amenities   map[string]bool       `json:"amenities"`
	Status      *string               `json:"status" validate:"omitempty,oneof=draft pending approved rejected suspended"`
}
