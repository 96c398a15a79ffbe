package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/emberwall/emberwall-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReportService(t *testing.T, db *gorm.DB) (*ReportService, *MessageService) {
	t.Helper()
	messages := newTestMessageService(t, db)
	reports := NewReportService(
		db,
		NewIdentityHasher("test-salt"),
		NewRateLimiter(nil, time.Hour, 5, 10),
		messages,
		testConfig(),
	)
	return reports, messages
}

func TestSubmitReportStoresPending(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)

	msg := seedMessage(t, db, nil)

	err := svc.Submit(context.Background(), "203.0.113.9", msg.ID.String(), "spam")
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, db.First(&report, "message_id = ?", msg.ID).Error)
	require.Equal(t, models.ReportStatusPending, report.Status)
	require.Equal(t, "spam", report.Reason)
	require.Len(t, report.ReporterHash, 64)
	require.Nil(t, report.ReviewedAt)

	var stored models.Message
	require.NoError(t, db.First(&stored, "id = ?", msg.ID).Error)
	require.Equal(t, 1, stored.ReportCount)
}

func TestSubmitReportValidation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)
	ctx := context.Background()

	msg := seedMessage(t, db, nil)

	var validation *ValidationError
	err := svc.Submit(ctx, "203.0.113.9", "not-a-uuid", "spam")
	require.ErrorAs(t, err, &validation)

	err = svc.Submit(ctx, "203.0.113.9", msg.ID.String(), strings.Repeat("r", 201))
	require.ErrorAs(t, err, &validation)

	// Empty reason is allowed.
	require.NoError(t, svc.Submit(ctx, "203.0.113.9", msg.ID.String(), ""))
}

func TestSubmitReportTrimsReason(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)
	ctx := context.Background()

	msg := seedMessage(t, db, nil)

	// Padding must neither fail the length check nor survive into storage.
	padded := "  " + strings.Repeat("r", 200) + "  "
	require.NoError(t, svc.Submit(ctx, "203.0.113.9", msg.ID.String(), padded))

	var report models.Report
	require.NoError(t, db.First(&report, "message_id = ?", msg.ID).Error)
	require.Equal(t, strings.Repeat("r", 200), report.Reason)

	var validation *ValidationError
	err := svc.Submit(ctx, "203.0.113.10", msg.ID.String(), strings.Repeat("r", 201)+"   ")
	require.ErrorAs(t, err, &validation, "201 non-space characters stay over the limit")
}

func TestSubmitReportTargetGone(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)
	ctx := context.Background()

	err := svc.Submit(ctx, "203.0.113.9", uuid.New().String(), "spam")
	require.ErrorIs(t, err, ErrMessageNotFound)

	expired := seedMessage(t, db, func(m *models.Message) {
		m.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	})
	err = svc.Submit(ctx, "203.0.113.9", expired.ID.String(), "spam")
	require.ErrorIs(t, err, ErrMessageNotFound)

	hidden := seedMessage(t, db, func(m *models.Message) { m.IsHidden = true })
	err = svc.Submit(ctx, "203.0.113.9", hidden.ID.String(), "spam")
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestSubmitReportDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)
	ctx := context.Background()

	msg := seedMessage(t, db, nil)

	require.NoError(t, svc.Submit(ctx, "203.0.113.9", msg.ID.String(), "spam"))

	err := svc.Submit(ctx, "203.0.113.9", msg.ID.String(), "spam again")
	require.ErrorIs(t, err, ErrDuplicateReport)

	// A different identity may still report.
	require.NoError(t, svc.Submit(ctx, "203.0.113.10", msg.ID.String(), "spam"))

	var stored models.Message
	require.NoError(t, db.First(&stored, "id = ?", msg.ID).Error)
	require.Equal(t, 2, stored.ReportCount, "the duplicate must not increment")
}

func TestSubmitReportAutoHidesAtThreshold(t *testing.T) {
	db := newTestDB(t)
	svc, messages := newTestReportService(t, db)
	ctx := context.Background()

	msg := seedMessage(t, db, nil)

	for i := 0; i < 5; i++ {
		addr := fmt.Sprintf("203.0.113.%d", i+1)
		require.NoError(t, svc.Submit(ctx, addr, msg.ID.String(), "spam"))
	}

	var stored models.Message
	require.NoError(t, db.First(&stored, "id = ?", msg.ID).Error)
	require.Equal(t, 5, stored.ReportCount)
	require.True(t, stored.IsHidden)

	_, err := messages.GetByID(ctx, msg.ID)
	require.ErrorIs(t, err, ErrMessageNotFound, "hidden message must drop out of lookups")

	// Reporting a now-hidden message reads as not found.
	err = svc.Submit(ctx, "203.0.113.99", msg.ID.String(), "late report")
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestListReports(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)
	ctx := context.Background()

	msg := seedMessage(t, db, nil)

	base := time.Now().UTC()
	older := &models.Report{
		ID: uuid.New(), MessageID: msg.ID, ReporterHash: "hash-a",
		Status: models.ReportStatusPending, CreatedAt: base.Add(-time.Hour),
	}
	newer := &models.Report{
		ID: uuid.New(), MessageID: msg.ID, ReporterHash: "hash-b",
		Status: models.ReportStatusReviewed, CreatedAt: base,
	}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	reports, total, err := svc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, reports, 2)
	require.Equal(t, newer.ID, reports[0].ID, "newest first")

	pending, total, err := svc.List(ctx, models.ReportStatusPending, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	require.Equal(t, older.ID, pending[0].ID)
}

func TestReviewReport(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestReportService(t, db)
	ctx := context.Background()

	msg := seedMessage(t, db, nil)
	require.NoError(t, svc.Submit(ctx, "203.0.113.9", msg.ID.String(), "spam"))

	var report models.Report
	require.NoError(t, db.First(&report, "message_id = ?", msg.ID).Error)

	err := svc.Review(ctx, report.ID, models.ReportStatusReviewed, "confirmed")
	require.NoError(t, err)

	require.NoError(t, db.First(&report, "id = ?", report.ID).Error)
	require.Equal(t, models.ReportStatusReviewed, report.Status)
	require.Equal(t, "confirmed", report.ReviewerNote)
	require.NotNil(t, report.ReviewedAt)

	var validation *ValidationError
	err = svc.Review(ctx, report.ID, "pending", "")
	require.ErrorAs(t, err, &validation, "reports cannot move back to pending")

	err = svc.Review(ctx, uuid.New(), models.ReportStatusDismissed, "")
	require.ErrorIs(t, err, ErrReportNotFound)
}
