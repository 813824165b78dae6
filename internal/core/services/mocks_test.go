package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a pgx transaction; the mocked repositories never use it.
type fakeTx struct{ pgx.Tx }

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) CountUsersByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock transaction support shared by the tx-capable repositories ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ParkingRepository ---
type MockParkingRepository struct {
	mockTxManager
}

var _ portsrepo.ParkingRepositoryWithTx = (*MockParkingRepository)(nil)

func parkingResult(args mock.Arguments) (*domain.Parking, error) {
	var p *domain.Parking
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Parking)
	}
	return p, args.Error(1)
}

func (m *MockParkingRepository) FindParkingByID(ctx context.Context, parkingID string) (*domain.Parking, error) {
	return parkingResult(m.Called(ctx, parkingID))
}

func (m *MockParkingRepository) FindParkingByCode(ctx context.Context, code string) (*domain.Parking, error) {
	return parkingResult(m.Called(ctx, code))
}

func (m *MockParkingRepository) ListParkings(ctx context.Context) ([]domain.Parking, error) {
	args := m.Called(ctx)
	var parkings []domain.Parking
	if args.Get(0) != nil {
		parkings = args.Get(0).([]domain.Parking)
	}
	return parkings, args.Error(1)
}

func (m *MockParkingRepository) ListSlotUsage(ctx context.Context) ([]domain.SlotUsage, error) {
	args := m.Called(ctx)
	var usage []domain.SlotUsage
	if args.Get(0) != nil {
		usage = args.Get(0).([]domain.SlotUsage)
	}
	return usage, args.Error(1)
}

func (m *MockParkingRepository) SaveParking(ctx context.Context, parking domain.Parking) error {
	args := m.Called(ctx, parking)
	return args.Error(0)
}

func (m *MockParkingRepository) FindParkingByIDForUpdate(ctx context.Context, tx pgx.Tx, parkingID string) (*domain.Parking, error) {
	return parkingResult(m.Called(ctx, tx, parkingID))
}

func (m *MockParkingRepository) FindParkingByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Parking, error) {
	return parkingResult(m.Called(ctx, tx, code))
}

func (m *MockParkingRepository) UpdateParkingInTx(ctx context.Context, tx pgx.Tx, parking domain.Parking) error {
	args := m.Called(ctx, tx, parking)
	return args.Error(0)
}

func (m *MockParkingRepository) DeleteParkingInTx(ctx context.Context, tx pgx.Tx, parkingID string) error {
	args := m.Called(ctx, tx, parkingID)
	return args.Error(0)
}

func (m *MockParkingRepository) DecrementAvailableSlotsInTx(ctx context.Context, tx pgx.Tx, code string) error {
	args := m.Called(ctx, tx, code)
	return args.Error(0)
}

func (m *MockParkingRepository) IncrementAvailableSlotsInTx(ctx context.Context, tx pgx.Tx, code string) error {
	args := m.Called(ctx, tx, code)
	return args.Error(0)
}

// --- Mock CarRepository ---
type MockCarRepository struct {
	mockTxManager
}

var _ portsrepo.CarRepositoryWithTx = (*MockCarRepository)(nil)

func carsResult(args mock.Arguments) ([]domain.Car, error) {
	var cars []domain.Car
	if args.Get(0) != nil {
		cars = args.Get(0).([]domain.Car)
	}
	return cars, args.Error(1)
}

func carResult(args mock.Arguments) (*domain.Car, error) {
	var car *domain.Car
	if args.Get(0) != nil {
		car = args.Get(0).(*domain.Car)
	}
	return car, args.Error(1)
}

func (m *MockCarRepository) FindCarByID(ctx context.Context, carID string) (*domain.Car, error) {
	return carResult(m.Called(ctx, carID))
}

func (m *MockCarRepository) ListActiveCars(ctx context.Context, parkingCode string) ([]domain.Car, error) {
	return carsResult(m.Called(ctx, parkingCode))
}

func (m *MockCarRepository) ListCarsByPlate(ctx context.Context, plateNumber string) ([]domain.Car, error) {
	return carsResult(m.Called(ctx, plateNumber))
}

func (m *MockCarRepository) HasOpenSessionInTx(ctx context.Context, tx pgx.Tx, plateNumber, parkingCode string) (bool, error) {
	args := m.Called(ctx, tx, plateNumber, parkingCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockCarRepository) CountOpenSessionsInTx(ctx context.Context, tx pgx.Tx, parkingCode string) (int64, error) {
	args := m.Called(ctx, tx, parkingCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarRepository) SaveCarInTx(ctx context.Context, tx pgx.Tx, car domain.Car) error {
	args := m.Called(ctx, tx, car)
	return args.Error(0)
}

func (m *MockCarRepository) FindCarByIDForUpdate(ctx context.Context, tx pgx.Tx, carID string) (*domain.Car, error) {
	return carResult(m.Called(ctx, tx, carID))
}

func (m *MockCarRepository) CloseCarInTx(ctx context.Context, tx pgx.Tx, carID string, exitTime time.Time, totalFee decimal.Decimal) error {
	args := m.Called(ctx, tx, carID, exitTime, totalFee)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListCarsExitedBetween(ctx context.Context, from, to time.Time, parkingCode string) ([]domain.Car, error) {
	return carsResult(m.Called(ctx, from, to, parkingCode))
}

func (m *MockReportingRepository) ListCarsEnteredBetween(ctx context.Context, from, to time.Time, parkingCode string) ([]domain.Car, error) {
	return carsResult(m.Called(ctx, from, to, parkingCode))
}

func (m *MockReportingRepository) CountParkings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) CountOpenSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) SumSlots(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// recordingRecorder counts ledger events.
type recordingRecorder struct {
	entered  []string
	exited   map[string]decimal.Decimal
	rejected []string
	overrun  []string
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{exited: map[string]decimal.Decimal{}}
}

func (r *recordingRecorder) CarEntered(code string) { r.entered = append(r.entered, code) }

func (r *recordingRecorder) CarExited(code string, fee decimal.Decimal) { r.exited[code] = fee }

func (r *recordingRecorder) EntryRejected(reason string) { r.rejected = append(r.rejected, reason) }

func (r *recordingRecorder) SlotCounterOverrun(code string) { r.overrun = append(r.overrun, code) }

var (
	admin   = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	regular = domain.Principal{UserID: "user-1", Role: domain.RoleUser}
)

func intPtr(i int) *int { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
