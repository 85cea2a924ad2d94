package domain

import (
	"context"
	"time"
)

type ContactMessage struct {
	ID        int
	Name      string
	Email     string
	Subject   string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type ContactRepository interface {
	Create(ctx context.Context, message *ContactMessage) error
	GetAll(ctx context.Context, onlyUnread bool, pagination Pagination) ([]*ContactMessage, *Metadata, error)
	MarkAsRead(ctx context.Context, id int) (*ContactMessage, error)
}
