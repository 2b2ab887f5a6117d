package passengers

import (
	"context"
	"fmt"
	"time"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/avelora/airdesk/internal/repository"
)

type PassengerUseCase interface {
	Create(ctx context.Context, identity domain.Identity, input PassengerInput) (*domain.Passenger, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Passenger, error)
	List(ctx context.Context, identity domain.Identity) ([]domain.Passenger, error)
	Update(ctx context.Context, identity domain.Identity, id int64, input PassengerInput) (*domain.Passenger, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}

type PassengerService struct {
	repo repository.PassengerRepository
}

type PassengerInput struct {
	Firstname      string        `json:"firstname"`
	Lastname       string        `json:"lastname"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	DateOfBirth    time.Time     `json:"date_of_birth"`
	Age            int           `json:"age"`
	PassportNumber string        `json:"passport_number"`
	Gender         domain.Gender `json:"gender"`
}

func NewPassengerService(repo repository.PassengerRepository) *PassengerService {
	return &PassengerService{repo: repo}
}

func (s *PassengerService) Create(ctx context.Context, identity domain.Identity, input PassengerInput) (*domain.Passenger, error) {
	if !identity.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can manage passengers", domain.ErrForbidden)
	}
	passenger, err := fromInput(identity, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

func (s *PassengerService) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Passenger, error) {
	if !identity.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can manage passengers", domain.ErrForbidden)
	}
	return s.repo.GetForOwner(ctx, id, identity.SubjectID)
}

func (s *PassengerService) List(ctx context.Context, identity domain.Identity) ([]domain.Passenger, error) {
	if !identity.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can manage passengers", domain.ErrForbidden)
	}
	return s.repo.ListByOwner(ctx, identity.SubjectID)
}

func (s *PassengerService) Update(ctx context.Context, identity domain.Identity, id int64, input PassengerInput) (*domain.Passenger, error) {
	if !identity.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can manage passengers", domain.ErrForbidden)
	}
	passenger, err := fromInput(identity, input)
	if err != nil {
		return nil, err
	}
	passenger.ID = id
	if err := s.repo.Update(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

func (s *PassengerService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if !identity.IsCustomer() {
		return fmt.Errorf("%w: only customers can manage passengers", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, id, identity.SubjectID)
}

func fromInput(identity domain.Identity, input PassengerInput) (*domain.Passenger, error) {
	switch {
	case input.Firstname == "" || input.Lastname == "":
		return nil, fmt.Errorf("%w: first and last name are required", domain.ErrInvalidInput)
	case input.PassportNumber == "":
		return nil, fmt.Errorf("%w: passport number is required", domain.ErrInvalidInput)
	case !input.Gender.Valid():
		return nil, fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidInput, input.Gender)
	case input.DateOfBirth.IsZero():
		return nil, fmt.Errorf("%w: date of birth is required", domain.ErrInvalidInput)
	case input.DateOfBirth.After(time.Now()):
		return nil, fmt.Errorf("%w: date of birth is in the future", domain.ErrInvalidInput)
	}

	passenger := &domain.Passenger{
		OwnerSubject:   identity.SubjectID,
		Firstname:      input.Firstname,
		Lastname:       input.Lastname,
		Email:          input.Email,
		Phone:          input.Phone,
		DateOfBirth:    input.DateOfBirth,
		Age:            input.Age,
		PassportNumber: input.PassportNumber,
		Gender:         input.Gender,
	}
	if passenger.Age == 0 {
		passenger.Age = passenger.AgeOn(time.Now())
	}
	return passenger, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
