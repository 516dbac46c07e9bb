package services

import (
	"bytes"
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"serendibgo/internal/config"
	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	msgFetchBookingsFailed = "Server error fetching bookings"

	// maxMergedWindow bounds page × limit in merged mode, where every
	// category loads the whole window into memory.
	maxMergedWindow = 10000
)

// BookingFilters are the query parameters of the unified booking list.
type BookingFilters struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Type      string
	DateFrom  string
	DateTo    string
	SortBy    string
	SortOrder string
}

type BookingTypeCounts struct {
	Tour    int64 `json:"tour"`
	Guide   int64 `json:"guide"`
	Hotel   int64 `json:"hotel"`
	Vehicle int64 `json:"vehicle"`
}

type BookingStats struct {
	Total        int64             `json:"total"`
	Pending      int64             `json:"pending"`
	Confirmed    int64             `json:"confirmed"`
	Completed    int64             `json:"completed"`
	Cancelled    int64             `json:"cancelled"`
	ByType       BookingTypeCounts `json:"byType"`
	Today        int64             `json:"today"`
	ThisWeek     int64             `json:"thisWeek"`
	ThisMonth    int64             `json:"thisMonth"`
	TotalRevenue float64           `json:"totalRevenue"`
}

type BookingListResult struct {
	Bookings   []models.BookingRecord `json:"bookings"`
	Stats      *BookingStats          `json:"stats"`
	Pagination utils.Pagination       `json:"pagination"`
}

type BookingQueryService interface {
	ListBookings(ctx context.Context, filters *BookingFilters) (*BookingListResult, error)
	// ExportBookings returns up to limit records matching filters, sorted
	// and paginated over the merged result.
	ExportBookings(ctx context.Context, filters *BookingFilters, limit int) ([]models.BookingRecord, error)
	Statistics(ctx context.Context) (*BookingStats, error)
}

type BookingQueryConfig struct {
	PaginationMode string
	IncludeLegacy  bool
}

type bookingQueryService struct {
	users           interfaces.UserRepository
	tours           interfaces.TourRepository
	bookings        interfaces.BookingRepository
	legacy          interfaces.LegacyBookingRepository
	hotelBookings   interfaces.HotelBookingRepository
	vehicleBookings interfaces.VehicleBookingRepository
	cfg             BookingQueryConfig
	log             *logger.Logger
	now             func() time.Time
}

func NewBookingQueryService(
	users interfaces.UserRepository,
	tours interfaces.TourRepository,
	bookings interfaces.BookingRepository,
	legacy interfaces.LegacyBookingRepository,
	hotelBookings interfaces.HotelBookingRepository,
	vehicleBookings interfaces.VehicleBookingRepository,
	cfg BookingQueryConfig,
	log *logger.Logger,
) BookingQueryService {
	if cfg.PaginationMode == "" {
		cfg.PaginationMode = config.PaginationPerCategory
	}
	return &bookingQueryService{
		users:           users,
		tours:           tours,
		bookings:        bookings,
		legacy:          legacy,
		hotelBookings:   hotelBookings,
		vehicleBookings: vehicleBookings,
		cfg:             cfg,
		log:             log,
		now:             time.Now,
	}
}

// sortFields maps a public sort key to the field of each category.
var sortFields = map[string]struct{ tourGuide, hotel, vehicle string }{
	"createdAt":   {"createdAt", "createdAt", "createdAt"},
	"startDate":   {"startDate", "checkInDate", "tripDetails.startDate"},
	"totalAmount": {"totalAmount", "pricing.totalPrice", "pricing.totalPrice"},
	"status":      {"status", "bookingStatus", "bookingStatus"},
}

// bookingQuery is a validated, normalized BookingFilters.
type bookingQuery struct {
	page      int
	limit     int
	search    string
	status    string
	kind      string
	dateRange bson.M
	sortBy    string
	sortOrder int
}

func (q *bookingQuery) includes(kind models.BookingKind) bool {
	return q.kind == "all" || q.kind == string(kind)
}

func (q *bookingQuery) includesTourGuide() bool {
	return q.includes(models.BookingKindTour) || q.includes(models.BookingKindGuide)
}

func parseBookingFilters(f *BookingFilters) (*bookingQuery, error) {
	p := utils.NormalizePagination(&utils.PaginationParams{
		Page:      f.Page,
		Limit:     f.Limit,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	})

	q := &bookingQuery{
		page:      p.Page,
		limit:     p.Limit,
		search:    strings.TrimSpace(f.Search),
		status:    strings.TrimSpace(f.Status),
		kind:      strings.TrimSpace(f.Type),
		sortBy:    p.SortBy,
		sortOrder: p.SortDirection(),
	}
	if q.status == "all" {
		q.status = ""
	}
	if q.kind == "" {
		q.kind = "all"
	}

	switch q.kind {
	case "all", string(models.BookingKindTour), string(models.BookingKindGuide),
		string(models.BookingKindHotel), string(models.BookingKindVehicle):
	default:
		return nil, NewValidationError("Invalid booking type: " + q.kind)
	}
	if _, ok := sortFields[q.sortBy]; !ok {
		return nil, NewValidationError("Invalid sort field: " + q.sortBy)
	}

	dateRange := bson.M{}
	if f.DateFrom != "" {
		from, _, err := utils.ParseDate(f.DateFrom)
		if err != nil {
			return nil, NewValidationError("Invalid dateFrom")
		}
		dateRange["$gte"] = from
	}
	if f.DateTo != "" {
		to, dateOnly, err := utils.ParseDate(f.DateTo)
		if err != nil {
			return nil, NewValidationError("Invalid dateTo")
		}
		if dateOnly {
			to = utils.EndOfDay(to)
		}
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		q.dateRange = dateRange
	}
	return q, nil
}

// containsPattern matches value as a literal, case-insensitive substring.
func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// categoryPage is one category's contribution to a page.
type categoryPage struct {
	records []models.BookingRecord
	total   int64
}

func (s *bookingQueryService) ListBookings(ctx context.Context, filters *BookingFilters) (*BookingListResult, error) {
	q, err := parseBookingFilters(filters)
	if err != nil {
		return nil, err
	}
	if s.cfg.PaginationMode == config.PaginationMerged && q.page*q.limit > maxMergedWindow {
		return nil, NewValidationError("Page out of range: only the first " + strconv.Itoa(maxMergedWindow) + " bookings can be paged")
	}

	var (
		records []models.BookingRecord
		total   int64
		pages   int
		stats   *BookingStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, total, pages, err = s.fetchPage(gctx, q, s.cfg.PaginationMode)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.computeStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithContext(ctx).WithError(err).Error("Failed to list bookings")
		return nil, NewInfrastructureError(msgFetchBookingsFailed, err)
	}

	return &BookingListResult{
		Bookings: records,
		Stats:    stats,
		Pagination: utils.Pagination{
			Current: q.page,
			Pages:   pages,
			Total:   total,
			Limit:   q.limit,
		},
	}, nil
}

func (s *bookingQueryService) ExportBookings(ctx context.Context, filters *BookingFilters, limit int) ([]models.BookingRecord, error) {
	f := *filters
	f.Page = 1
	q, err := parseBookingFilters(&f)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		q.limit = limit
	}

	records, _, _, err := s.fetchPage(ctx, q, config.PaginationMerged)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Error("Failed to export bookings")
		return nil, NewInfrastructureError(msgFetchBookingsFailed, err)
	}
	return records, nil
}

// fetchPage runs the active categories concurrently. Any category error
// cancels the others and fails the page.
func (s *bookingQueryService) fetchPage(ctx context.Context, q *bookingQuery, mode string) ([]models.BookingRecord, int64, int, error) {
	opts := func(field string) *utils.QueryOptions {
		if mode == config.PaginationMerged {
			return &utils.QueryOptions{Limit: int64(q.page * q.limit), SortField: field, SortOrder: q.sortOrder}
		}
		return &utils.QueryOptions{Skip: int64((q.page - 1) * q.limit), Limit: int64(q.limit), SortField: field, SortOrder: q.sortOrder}
	}
	fields := sortFields[q.sortBy]

	var tourGuide, hotel, vehicle categoryPage
	g, gctx := errgroup.WithContext(ctx)
	if q.includesTourGuide() {
		g.Go(func() error {
			var err error
			tourGuide, err = s.fetchTourGuide(gctx, q, opts(fields.tourGuide))
			return err
		})
	}
	if q.includes(models.BookingKindHotel) {
		g.Go(func() error {
			var err error
			hotel, err = s.fetchHotel(gctx, q, opts(fields.hotel))
			return err
		})
	}
	if q.includes(models.BookingKindVehicle) {
		g.Go(func() error {
			var err error
			vehicle, err = s.fetchVehicle(gctx, q, opts(fields.vehicle))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, 0, err
	}

	// tour/guide structured and legacy rows share one category slot.
	if mode != config.PaginationMerged && len(tourGuide.records) > q.limit {
		sortRecords(tourGuide.records, q.sortBy, q.sortOrder)
		tourGuide.records = tourGuide.records[:q.limit]
	}

	merged := make([]models.BookingRecord, 0, len(tourGuide.records)+len(hotel.records)+len(vehicle.records))
	merged = append(merged, tourGuide.records...)
	merged = append(merged, hotel.records...)
	merged = append(merged, vehicle.records...)
	sortRecords(merged, q.sortBy, q.sortOrder)

	total := tourGuide.total + hotel.total + vehicle.total

	if mode == config.PaginationMerged {
		start := (q.page - 1) * q.limit
		if start > len(merged) {
			start = len(merged)
		}
		end := start + q.limit
		if end > len(merged) {
			end = len(merged)
		}
		return merged[start:end], total, utils.PageCount(total, q.limit), nil
	}

	largest := tourGuide.total
	if hotel.total > largest {
		largest = hotel.total
	}
	if vehicle.total > largest {
		largest = vehicle.total
	}
	return merged, total, utils.PageCount(largest, q.limit), nil
}

func (s *bookingQueryService) fetchTourGuide(ctx context.Context, q *bookingQuery, opts *utils.QueryOptions) (categoryPage, error) {
	filter, err := s.tourGuideFilter(ctx, q)
	if err != nil {
		return categoryPage{}, err
	}

	rows, err := s.bookings.Find(ctx, filter, opts)
	if err != nil {
		return categoryPage{}, err
	}
	total, err := s.bookings.Count(ctx, filter)
	if err != nil {
		return categoryPage{}, err
	}

	page := categoryPage{total: total, records: make([]models.BookingRecord, 0, len(rows))}
	for _, b := range rows {
		page.records = append(page.records, models.RecordFromBooking(b))
	}

	if !s.cfg.IncludeLegacy {
		return page, nil
	}
	// Legacy collections ignore status, date and search filters.
	for _, kind := range []models.BookingKind{models.BookingKindTour, models.BookingKindGuide} {
		if !q.includes(kind) {
			continue
		}
		legacyRows, err := s.legacy.Find(ctx, kind, opts)
		if err != nil {
			return categoryPage{}, err
		}
		legacyTotal, err := s.legacy.Count(ctx, kind)
		if err != nil {
			return categoryPage{}, err
		}
		page.total += legacyTotal
		for _, b := range legacyRows {
			rec := models.RecordFromBooking(b)
			rec.Kind = kind
			page.records = append(page.records, rec)
		}
	}
	return page, nil
}

func (s *bookingQueryService) tourGuideFilter(ctx context.Context, q *bookingQuery) (bson.M, error) {
	filter := bson.M{}
	if q.status != "" {
		filter["status"] = q.status
	}
	switch kind := models.BookingKind(q.kind); kind {
	case models.BookingKindTour, models.BookingKindGuide:
		for k, v := range models.KindFilter(kind) {
			filter[k] = v
		}
	}
	if q.dateRange != nil {
		filter["createdAt"] = q.dateRange
	}

	if q.search != "" {
		pattern := containsPattern(q.search)
		userIDs, err := s.users.FindIDs(ctx, bson.M{"$or": []bson.M{
			{"firstName": pattern}, {"lastName": pattern}, {"email": pattern},
		}})
		if err != nil {
			return nil, err
		}
		guideIDs, err := s.users.FindIDs(ctx, bson.M{
			"role": models.UserRoleGuide,
			"$or":  []bson.M{{"firstName": pattern}, {"lastName": pattern}},
		})
		if err != nil {
			return nil, err
		}
		tourIDs, err := s.tours.FindIDs(ctx, bson.M{"title": pattern})
		if err != nil {
			return nil, err
		}
		filter["$or"] = []bson.M{
			{"user": bson.M{"$in": userIDs}},
			{"guide": bson.M{"$in": guideIDs}},
			{"tour": bson.M{"$in": tourIDs}},
		}
	}
	return filter, nil
}

// providerBookingFilter builds the hotel or vehicle filter. Both schemas keep
// status in bookingStatus and reference the customer as user.
func (s *bookingQueryService) providerBookingFilter(ctx context.Context, q *bookingQuery) (bson.M, error) {
	filter := bson.M{}
	if q.status != "" {
		filter["bookingStatus"] = q.status
	}
	if q.dateRange != nil {
		filter["createdAt"] = q.dateRange
	}
	if q.search != "" {
		pattern := containsPattern(q.search)
		userIDs, err := s.users.FindIDs(ctx, bson.M{"$or": []bson.M{
			{"firstName": pattern}, {"lastName": pattern}, {"email": pattern},
		}})
		if err != nil {
			return nil, err
		}
		filter["user"] = bson.M{"$in": userIDs}
	}
	return filter, nil
}

func (s *bookingQueryService) fetchHotel(ctx context.Context, q *bookingQuery, opts *utils.QueryOptions) (categoryPage, error) {
	filter, err := s.providerBookingFilter(ctx, q)
	if err != nil {
		return categoryPage{}, err
	}
	rows, err := s.hotelBookings.Find(ctx, filter, opts)
	if err != nil {
		return categoryPage{}, err
	}
	total, err := s.hotelBookings.Count(ctx, filter)
	if err != nil {
		return categoryPage{}, err
	}

	page := categoryPage{total: total, records: make([]models.BookingRecord, 0, len(rows))}
	for _, h := range rows {
		page.records = append(page.records, models.RecordFromHotelBooking(h))
	}
	return page, nil
}

func (s *bookingQueryService) fetchVehicle(ctx context.Context, q *bookingQuery, opts *utils.QueryOptions) (categoryPage, error) {
	filter, err := s.providerBookingFilter(ctx, q)
	if err != nil {
		return categoryPage{}, err
	}
	rows, err := s.vehicleBookings.Find(ctx, filter, opts)
	if err != nil {
		return categoryPage{}, err
	}
	total, err := s.vehicleBookings.Count(ctx, filter)
	if err != nil {
		return categoryPage{}, err
	}

	page := categoryPage{total: total, records: make([]models.BookingRecord, 0, len(rows))}
	for _, v := range rows {
		page.records = append(page.records, models.RecordFromVehicleBooking(v))
	}
	return page, nil
}

// sortRecords orders records by the sort key, breaking ties by id in the
// same direction.
func sortRecords(records []models.BookingRecord, sortBy string, order int) {
	sort.SliceStable(records, func(i, j int) bool {
		c := compareRecords(&records[i], &records[j], sortBy)
		if c == 0 {
			c = bytes.Compare(records[i].ID[:], records[j].ID[:])
		}
		if order > 0 {
			return c < 0
		}
		return c > 0
	})
}

func compareRecords(a, b *models.BookingRecord, sortBy string) int {
	switch sortBy {
	case "startDate":
		return a.StartDate.Compare(b.StartDate)
	case "totalAmount":
		switch {
		case a.TotalAmount < b.TotalAmount:
			return -1
		case a.TotalAmount > b.TotalAmount:
			return 1
		}
		return 0
	case "status":
		return strings.Compare(a.Status, b.Status)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
