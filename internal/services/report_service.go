package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"serendibgo/internal/models"
	"serendibgo/pkg/logger"
	"serendibgo/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportService interface {
	ExportBookings(ctx context.Context, filters *BookingFilters, staffID primitive.ObjectID) (*ReportFile, error)
}

type ReportFile struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ReportConfig struct {
	RowLimit int
	URLTTL   time.Duration
}

var bookingCSVHeader = []string{
	"id", "type", "reference", "user", "status", "paymentStatus",
	"startDate", "endDate", "groupSize", "totalAmount", "currency", "createdAt",
}

type reportService struct {
	bookings BookingQueryService
	storage  storage.StorageProvider
	cfg      ReportConfig
	logger   *logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewReportService(bookings BookingQueryService, store storage.StorageProvider, cfg ReportConfig, logger *logger.Logger) ReportService {
	return &reportService{bookings: bookings, storage: store, cfg: cfg, logger: logger, now: time.Now, newID: uuid.NewString}
}

func (s *reportService) ExportBookings(ctx context.Context, filters *BookingFilters, staffID primitive.ObjectID) (*ReportFile, error) {
	records, err := s.bookings.ExportBookings(ctx, filters, s.cfg.RowLimit)
	if err != nil {
		return nil, err
	}

	body, err := renderBookingsCSV(records)
	if err != nil {
		return nil, NewInfrastructureError("Server error generating report", err)
	}

	now := s.now().UTC()
	key := fmt.Sprintf("reports/bookings/%s-%s.csv", now.Format("20060102T150405Z"), s.newID())
	if _, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(body),
		ContentType: "text/csv",
		Size:        int64(len(body)),
		Metadata:    map[string]string{"generated-by": staffID.Hex()},
	}); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to upload booking report")
		return nil, NewInfrastructureError("Server error storing report", err)
	}

	url, err := s.storage.GetURL(ctx, key, s.cfg.URLTTL)
	if err != nil {
		return nil, NewInfrastructureError("Server error storing report", err)
	}

	s.logger.LogStaffActivity(staffID, "", "bookings_exported", map[string]interface{}{"key": key, "rows": len(records)})
	return &ReportFile{Key: key, URL: url, Rows: len(records), ExpiresAt: now.Add(s.cfg.URLTTL)}, nil
}

func renderBookingsCSV(records []models.BookingRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(bookingCSVHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.ID.Hex(),
			string(r.Kind),
			r.BookingReference,
			r.User.Hex(),
			r.Status,
			r.PaymentStatus,
			formatReportDate(r.StartDate),
			formatReportDate(r.EndDate),
			strconv.Itoa(r.GroupSize),
			strconv.FormatFloat(r.TotalAmount, 'f', 2, 64),
			r.Currency,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatReportDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
