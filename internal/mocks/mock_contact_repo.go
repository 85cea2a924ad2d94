package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type MockContactRepo struct {
	domain.ContactRepository
	CreateFunc     func(ctx context.Context, message *domain.ContactMessage) error
	GetAllFunc     func(ctx context.Context, onlyUnread bool, pagination domain.Pagination) ([]*domain.ContactMessage, *domain.Metadata, error)
	MarkAsReadFunc func(ctx context.Context, id int) (*domain.ContactMessage, error)
}

func (m *MockContactRepo) Create(ctx context.Context, message *domain.ContactMessage) error {
	return m.CreateFunc(ctx, message)
}

func (m *MockContactRepo) GetAll(
	ctx context.Context,
	onlyUnread bool,
	pagination domain.Pagination) ([]*domain.ContactMessage, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, onlyUnread, pagination)
}

func (m *MockContactRepo) MarkAsRead(ctx context.Context, id int) (*domain.ContactMessage, error) {
	return m.MarkAsReadFunc(ctx, id)
}
