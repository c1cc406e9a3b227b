package service

import (
	"context"
	"errors"
	"testing"

	"shipment-tracker/internal/core/domain"
	"shipment-tracker/internal/core/ports"
	"shipment-tracker/internal/core/ports/mocks"
	"shipment-tracker/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type shipmentTestDeps struct {
	svc        *ShipmentServiceImpl
	repo       *mocks.MockShipmentRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupShipmentService(t *testing.T) *shipmentTestDeps {
	ctrl := gomock.NewController(t)
	d := &shipmentTestDeps{
		repo:       mocks.NewMockShipmentRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewShipmentService(d.repo, d.transactor, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func strPtr(s string) *string { return &s }

func TestIngest_CreatesNewShipment(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	update := &domain.ShipmentUpdate{
		StatusCode: 10,
		StatusDesc: strPtr("In Transit"),
		Ref1:       strPtr("CUST001"),
		Ref2:       strPtr("INV-42"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.repo.EXPECT().GetByTrackNoTx(ctx, tx, "1Z1").Return(nil, nil)
	d.repo.EXPECT().Insert(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, s *domain.Shipment) error {
			assert.Equal(t, "1Z1", s.TrackNo)
			assert.Equal(t, 10, s.StatusCode)
			require.NotNil(t, s.CustomerID)
			assert.Equal(t, "CUST001", *s.CustomerID)
			require.NotNil(t, s.InvoiceNumber)
			assert.Equal(t, "INV-42", *s.InvoiceNumber)
			require.NotNil(t, s.CreatedAt)
			require.NotNil(t, s.UpdatedAt)
			assert.Equal(t, *s.CreatedAt, *s.UpdatedAt)
			return nil
		})

	shipment, err := d.svc.Ingest(ctx, "1Z1", update)
	require.NoError(t, err)
	assert.Equal(t, "1Z1", shipment.TrackNo)
}

func TestIngest_UpdatesExistingShipment(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	existing := &domain.Shipment{
		TrackNo:    "1Z1",
		StatusCode: 10,
		StatusDesc: strPtr("In Transit"),
	}
	update := &domain.ShipmentUpdate{
		StatusCode:    20,
		StatusDesc:    strPtr("Delivered"),
		DeliveredTime: strPtr("2025-08-02 14:30:00"),
		ReceivedBy:    strPtr("Sara Levi"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.repo.EXPECT().GetByTrackNoTx(ctx, tx, "1Z1").Return(existing, nil)
	d.repo.EXPECT().Update(ctx, tx, existing).Return(nil)

	shipment, err := d.svc.Ingest(ctx, "1Z1", update)
	require.NoError(t, err)
	assert.Equal(t, 20, shipment.StatusCode)
	assert.Equal(t, "Delivered", *shipment.StatusDesc)
	assert.Equal(t, "Sara Levi", *shipment.ReceivedBy)
	require.NotNil(t, shipment.UpdatedAt)
}

func TestIngest_EmptyTrackingNumber(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Ingest(context.Background(), "", &domain.ShipmentUpdate{})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestIngest_InsertFailureRollsBack(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.repo.EXPECT().GetByTrackNoTx(ctx, tx, "1Z1").Return(nil, nil)
	d.repo.EXPECT().Insert(ctx, tx, gomock.Any()).Return(errors.New("connection lost"))

	_, err := d.svc.Ingest(ctx, "1Z1", &domain.ShipmentUpdate{StatusCode: 10})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestIngest_BeginFailure(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

	_, err := d.svc.Ingest(ctx, "1Z1", &domain.ShipmentUpdate{})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestTrackShipment_NotFound(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.repo.EXPECT().GetByTrackNo(ctx, "DOES-NOT-EXIST").Return(nil, nil)

	_, err := d.svc.TrackShipment(ctx, "DOES-NOT-EXIST")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SHIP_001", appErr.Code)
}

func TestTrackShipment_Found(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.repo.EXPECT().GetByTrackNo(ctx, "1Z1").Return(&domain.Shipment{TrackNo: "1Z1"}, nil)

	shipment, err := d.svc.TrackShipment(ctx, "1Z1")
	require.NoError(t, err)
	assert.Equal(t, "1Z1", shipment.TrackNo)
}

func TestRecentShipments_WrapsRepoError(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.repo.EXPECT().ListRecent(ctx, 50).Return(nil, errors.New("all tiers failed"))

	_, err := d.svc.RecentShipments(ctx, 50)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestCustomerShipments_PassesFilter(t *testing.T) {
	d := setupShipmentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.repo.EXPECT().ListByCustomer(ctx, ports.CustomerListParams{
		CustomerID:   "CUST001",
		StatusFilter: "transit",
		Limit:        25,
	}).Return([]domain.Shipment{{TrackNo: "1Z1"}}, nil)

	shipments, err := d.svc.CustomerShipments(ctx, "CUST001", "transit", 25)
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Equal(t, "1Z1", shipments[0].TrackNo)
}
