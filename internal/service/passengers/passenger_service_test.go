package passengers

import (
	"context"
	"testing"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *MockPassengerRepository) GetForOwner(ctx context.Context, id int64, ownerSubject string) (*domain.Passenger, error) {
	args := m.Called(ctx, id, ownerSubject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Passenger, error) {
	args := m.Called(ctx, ownerSubject)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *MockPassengerRepository) Delete(ctx context.Context, id int64, ownerSubject string) error {
	args := m.Called(ctx, id, ownerSubject)
	return args.Error(0)
}

var (
	customer = domain.Identity{SubjectID: "cust-1", Email: "cust@example.com", Role: domain.RoleCustomer}
	admin    = domain.Identity{SubjectID: "adm-1", Email: "admin@example.com", Role: domain.RoleAdmin}
)

func validInput() PassengerInput {
	return PassengerInput{
		Firstname:      "Ada",
		Lastname:       "Byron",
		Email:          "ada@example.com",
		Phone:          "+1-555-0100",
		DateOfBirth:    time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Age:            36,
		PassportNumber: "P100200",
		Gender:         domain.GenderFemale,
	}
}

func TestPassengerService_Create_Success(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	service := NewPassengerService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()

	created, err := service.Create(ctx, customer, validInput())

	assert.NoError(t, err)
	assert.Equal(t, "cust-1", created.OwnerSubject)
	assert.Equal(t, "Ada", created.Firstname)
	assert.Equal(t, 36, created.Age)
	mockRepo.AssertExpectations(t)
}

func TestPassengerService_Create_DerivesAgeFromDateOfBirth(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	service := NewPassengerService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()

	input := validInput()
	input.Age = 0
	input.DateOfBirth = time.Now().AddDate(-30, 0, -1)

	created, err := service.Create(ctx, customer, input)

	assert.NoError(t, err)
	assert.Equal(t, 30, created.Age)
}

func TestPassengerService_Create_Validation(t *testing.T) {
	service := NewPassengerService(&MockPassengerRepository{})
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*PassengerInput)
	}{
		{"missing name", func(in *PassengerInput) { in.Firstname = "" }},
		{"missing passport", func(in *PassengerInput) { in.PassportNumber = "" }},
		{"unknown gender", func(in *PassengerInput) { in.Gender = "unknown" }},
		{"missing date of birth", func(in *PassengerInput) { in.DateOfBirth = time.Time{} }},
		{"born in the future", func(in *PassengerInput) { in.DateOfBirth = time.Now().AddDate(1, 0, 0) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			created, err := service.Create(ctx, customer, input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, created)
		})
	}
}

func TestPassengerService_ForbiddenForAdmin(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	service := NewPassengerService(mockRepo)
	ctx := context.Background()

	_, err := service.Create(ctx, admin, validInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.Get(ctx, admin, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.List(ctx, admin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.Update(ctx, admin, 1, validInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = service.Delete(ctx, admin, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPassengerService_GetScopedToOwner(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	service := NewPassengerService(mockRepo)

	ctx := context.Background()
	stored := &domain.Passenger{ID: 3, OwnerSubject: "cust-1", Firstname: "Ada"}
	mockRepo.On("GetForOwner", ctx, int64(3), "cust-1").Return(stored, nil).Once()
	mockRepo.On("GetForOwner", ctx, int64(4), "cust-1").Return(nil, domain.ErrNotFound).Once()

	got, err := service.Get(ctx, customer, 3)
	assert.NoError(t, err)
	assert.Equal(t, stored, got)

	// someone else's passenger looks like it does not exist
	_, err = service.Get(ctx, customer, 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestPassengerService_Update(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	service := NewPassengerService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Passenger) bool {
		return p.ID == 3 && p.OwnerSubject == "cust-1"
	})).Return(nil).Once()

	updated, err := service.Update(ctx, customer, 3, validInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), updated.ID)
	mockRepo.AssertExpectations(t)
}

func TestPassengerService_Delete(t *testing.T) {
	mockRepo := &MockPassengerRepository{}
	service := NewPassengerService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, int64(3), "cust-1").Return(nil).Once()

	err := service.Delete(ctx, customer, 3)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
