package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateHotelRequestValidation(t *testing.T) {
	valid := CreateHotelRequest{Name: "Galle Fort Hotel", Owner: primitive.NewObjectID().Hex(), StarRating: 4}
	assert.Empty(t, ValidateStruct(&valid))

	invalid := CreateHotelRequest{Name: "G", Owner: "not-an-id", StarRating: 7}
	errs := ValidateStruct(&invalid).Fields()
	assert.Contains(t, errs, "name")
	assert.Equal(t, "Invalid ID format", errs["owner"])
	assert.Contains(t, errs, "starRating")
}

func TestUpdateBookingRequestValidation(t *testing.T) {
	status := "archived"
	size := 51
	date := "03/01/2025"
	errs := ValidateStruct(&UpdateBookingRequest{Status: &status, GroupSize: &size, StartDate: &date}).Fields()
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "groupSize")
	assert.Contains(t, errs, "startDate")

	ok := "confirmed"
	start := "2025-03-01"
	assert.Empty(t, ValidateStruct(&UpdateBookingRequest{Status: &ok, StartDate: &start}))
}

func TestVehicleStatusRequestValidation(t *testing.T) {
	assert.Empty(t, ValidateStruct(&VehicleStatusRequest{Action: "suspend"}))
	assert.NotEmpty(t, ValidateStruct(&VehicleStatusRequest{Action: "scrap"}))
}

func TestPhoneNumberValidation(t *testing.T) {
	good := "+94 77-123-4567"
	bad := "call me"
	assert.Empty(t, ValidateStruct(&UpdateProfileRequest{Phone: &good}))
	assert.NotEmpty(t, ValidateStruct(&UpdateProfileRequest{Phone: &bad}))
}

func TestBulkActionRequestRequiresIDs(t *testing.T) {
	errs := ValidateStruct(&BulkActionRequest{Action: "delete"})
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "ids")
}
