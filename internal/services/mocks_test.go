package services

import (
	"context"

	"event-registrations/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCartSource is a mock implementation of CartSource
type MockCartSource struct {
	mock.Mock
}

func (m *MockCartSource) GetCartLines(ctx context.Context, cartID string) ([]models.CartLine, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLine), args.Error(1)
}

// MockOrderStore is a mock implementation of OrderStore
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) CreateWithAttendees(req *models.OrderCreateRequest, lines []models.OrderLine, meta map[string]string) (*models.Order, error) {
	args := m.Called(req, lines, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) GetByID(id int) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) GetLines(orderID int) ([]models.OrderLine, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderLine), args.Error(1)
}

func (m *MockOrderStore) GetMeta(orderID int, key string) (string, bool, error) {
	args := m.Called(orderID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockUserDirectory is a mock implementation of UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDirectory) Create(req *models.UserCreateRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDirectory) UpdateNames(id int, req *models.UserNamesUpdate) (*models.User, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockGroupDirectory is a mock implementation of GroupDirectory
type MockGroupDirectory struct {
	mock.Mock
}

func (m *MockGroupDirectory) CreateGroup(name string) (*models.Group, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupDirectory) GetGroupByName(name string) (*models.Group, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupDirectory) AddUserToGroup(groupID, userID int) error {
	args := m.Called(groupID, userID)
	return args.Error(0)
}

// MockNotifier is a mock implementation of WelcomeNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendWelcomeEmail(email, userName string) error {
	args := m.Called(email, userName)
	return args.Error(0)
}

func (m *MockNotifier) SendNewUserAdminNotice(email, userName string) error {
	args := m.Called(email, userName)
	return args.Error(0)
}

func registrationLine(title, dateLabel string, quantity int) models.CartLine {
	return models.CartLine{
		ProductType:        models.ProductTypeVariation,
		ParentProductType:  models.ProductTypeRegistrations,
		ParentProductTitle: title,
		VariantDateLabel:   dateLabel,
		Quantity:           quantity,
	}
}

func plainLine(title string, quantity int) models.CartLine {
	return models.CartLine{
		ProductType:        "simple",
		ParentProductTitle: title,
		Quantity:           quantity,
	}
}

func submitted(entries map[int][2]string) models.SubmittedValues {
	values := make(models.SubmittedValues)
	for slot, pair := range entries {
		values[models.FieldKey{Slot: slot, Kind: models.FieldName}] = pair[0]
		values[models.FieldKey{Slot: slot, Kind: models.FieldEmail}] = pair[1]
	}
	return values
}
