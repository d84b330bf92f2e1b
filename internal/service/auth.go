package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/logger"
	"prestige-rentals-backend/internal/repository"
	"prestige-rentals-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
	tokens    security.TokenManager
}

func NewAuthService(customers repository.CustomerRepository, employees repository.EmployeeRepository, tokens security.TokenManager) AuthService {
	return &authService{customers: customers, employees: employees, tokens: tokens}
}

func (s *authService) RegisterCustomer(ctx context.Context, firstName, lastName, email, phone, password string) (*domain.Customer, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	customer := &domain.Customer{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, "", fmt.Errorf("create customer: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(customer.ID, domain.RoleCustomer, customer.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	logger.Info("Customer registered", "customer_id", customer.ID)
	return customer, token, nil
}

func (s *authService) LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(customer.ID, domain.RoleCustomer, customer.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return customer, token, nil
}

func (s *authService) LoginEmployee(ctx context.Context, email, password string) (*domain.Employee, string, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(employee.ID, domain.RoleEmployee, employee.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return employee, token, nil
}
