package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func oid() *primitive.ObjectID {
	id := primitive.NewObjectID()
	return &id
}

func TestClassifyBooking(t *testing.T) {
	tests := []struct {
		name  string
		tour  *primitive.ObjectID
		guide *primitive.ObjectID
		want  BookingKind
	}{
		{"tour and guide", oid(), oid(), BookingKindTour},
		{"guide only", nil, oid(), BookingKindGuide},
		{"tour only", oid(), nil, BookingKindTour},
		{"neither", nil, nil, BookingKindGuide},
		{"zero tour id", &primitive.NilObjectID, oid(), BookingKindGuide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Booking{Tour: tc.tour, Guide: tc.guide}
			got := ClassifyBooking(b)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, []BookingKind{BookingKindTour, BookingKindGuide}, got)
			assert.Equal(t, got, ClassifyBooking(b), "classification must be stable")
		})
	}
}

func TestKindFilterMatchesClassification(t *testing.T) {
	noTour := bson.A{nil, primitive.NilObjectID}
	assert.Equal(t, bson.M{"tour": bson.M{"$nin": noTour}}, KindFilter(BookingKindTour))
	assert.Equal(t, bson.M{"tour": bson.M{"$in": noTour}}, KindFilter(BookingKindGuide))
	assert.Equal(t, bson.M{"_id": bson.M{"$exists": false}}, KindFilter(BookingKindHotel))

	// tour without a guide is a tour booking and only the tour filter selects it.
	b := &Booking{Tour: oid()}
	assert.Equal(t, BookingKindTour, ClassifyBooking(b))
	assert.NotContains(t, KindFilter(BookingKindTour), "guide")
}

func TestRecordFromHotelBooking(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(72 * time.Hour)

	for _, status := range []string{"pending", "confirmed", "cancelled", "completed", "no-show"} {
		t.Run(status, func(t *testing.T) {
			h := &HotelBooking{
				ID:            primitive.NewObjectID(),
				Hotel:         primitive.NewObjectID(),
				Room:          primitive.NewObjectID(),
				User:          primitive.NewObjectID(),
				CheckInDate:   checkIn,
				CheckOutDate:  checkOut,
				Guests:        GuestCount{Adults: 2, Children: 3, Infants: 1},
				Pricing:       BookingPricing{TotalPrice: 420.5, Currency: "LKR"},
				BookingStatus: status,
				PaymentStatus: "paid",
			}

			r := RecordFromHotelBooking(h)
			assert.Equal(t, BookingKindHotel, r.Kind)
			assert.Equal(t, status, r.Status)
			assert.Equal(t, 5, r.GroupSize)
			assert.Equal(t, 420.5, r.TotalAmount)
			assert.Equal(t, checkIn, r.StartDate)
			assert.Equal(t, checkOut, r.EndDate)
			assert.Equal(t, h.Hotel, *r.Hotel)
			assert.Equal(t, h.Room, *r.Room)
		})
	}
}

func TestRecordFromVehicleBooking(t *testing.T) {
	start := time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)
	v := &VehicleBooking{
		ID:            primitive.NewObjectID(),
		Vehicle:       primitive.NewObjectID(),
		User:          primitive.NewObjectID(),
		TripDetails:   TripDetails{StartDate: start, EndDate: start.Add(48 * time.Hour)},
		Passengers:    GuestCount{Adults: 1, Children: 0, Infants: 2},
		Pricing:       BookingPricing{TotalPrice: 99},
		BookingStatus: "in_progress",
	}

	r := RecordFromVehicleBooking(v)
	assert.Equal(t, BookingKindVehicle, r.Kind)
	assert.Equal(t, "in_progress", r.Status)
	assert.Equal(t, 1, r.GroupSize)
	assert.Equal(t, 99.0, r.TotalAmount)
	assert.Equal(t, start, r.StartDate)
	assert.Equal(t, v.Vehicle, *r.Vehicle)
}

func TestRecordFromBooking(t *testing.T) {
	b := &Booking{
		ID:          primitive.NewObjectID(),
		Guide:       oid(),
		GroupSize:   4,
		TotalAmount: 150,
		Status:      BookingStatusConfirmed,
	}

	r := RecordFromBooking(b)
	assert.Equal(t, BookingKindGuide, r.Kind)
	assert.Equal(t, "confirmed", r.Status)
	assert.Equal(t, 4, r.GroupSize)
	assert.Nil(t, r.Tour)
}

func TestNewPrincipalDefaults(t *testing.T) {
	u := &User{ID: primitive.NewObjectID(), Role: UserRoleStaff}
	p := NewPrincipal(u)
	assert.Equal(t, DefaultDepartment, p.Department)
	assert.NotNil(t, p.Permissions)
	assert.Empty(t, p.Permissions)

	u.Profile.Department = "finance"
	u.Profile.Permissions = []string{"vehicles:approve"}
	p = NewPrincipal(u)
	assert.Equal(t, "finance", p.Department)
	assert.Equal(t, []string{"vehicles:approve"}, p.Permissions)
}

func TestChangedPasswordAfter(t *testing.T) {
	changed := time.Date(2025, 1, 1, 12, 0, 0, 500, time.UTC)
	u := &User{PasswordChangedAt: &changed}

	assert.True(t, u.ChangedPasswordAfter(changed.Add(-time.Second)))
	assert.False(t, u.ChangedPasswordAfter(changed.Truncate(time.Second)))
	assert.False(t, u.ChangedPasswordAfter(changed.Add(time.Minute)))
	assert.False(t, (&User{}).ChangedPasswordAfter(time.Now()))
}
