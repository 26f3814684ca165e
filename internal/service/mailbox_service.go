package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"beworking/internal/db"
	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/repository"
	"beworking/internal/utils"

	"go.uber.org/zap"
)

type MailboxService interface {
	List(ctx context.Context, userID int64) ([]entities.MailboxItemResponse, error)
	Deliver(ctx context.Context, req entities.MailboxDeliveryRequest) (*entities.MailboxItemResponse, error)
}

type mailboxService struct {
	mailbox repository.MailboxRepository
	users   repository.UserRepository
	sender  *SenderService
	log     *zap.Logger
	now     func() time.Time
}

func NewMailboxService(mailbox repository.MailboxRepository, users repository.UserRepository, sender *SenderService, log *zap.Logger, now func() time.Time) MailboxService {
	return &mailboxService{mailbox: mailbox, users: users, sender: sender, log: log, now: now}
}

func (s *mailboxService) List(ctx context.Context, userID int64) ([]entities.MailboxItemResponse, error) {
	items, err := s.mailbox.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]entities.MailboxItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toMailboxResponse(it))
	}
	return resp, nil
}

// Deliver records post received for a tenant and notifies them.
func (s *mailboxService) Deliver(ctx context.Context, req entities.MailboxDeliveryRequest) (*entities.MailboxItemResponse, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.PDFURL = strings.TrimSpace(req.PDFURL)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, httperrors.ErrBadRequest(utils.ValidationMessage(err))
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperrors.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	item := &db.MailboxItem{
		UserID:    user.ID,
		Subject:   req.Subject,
		Message:   req.Message,
		Timestamp: s.now().UTC(),
		PDFURL:    req.PDFURL,
	}
	if err := s.mailbox.Create(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info("mailbox item delivered", zap.Int64("item_id", item.ID), zap.Int64("user_id", user.ID))

	s.sender.SendMailboxNotice(*user, *item)

	resp := toMailboxResponse(*item)
	return &resp, nil
}

func toMailboxResponse(it db.MailboxItem) entities.MailboxItemResponse {
	return entities.MailboxItemResponse{
		ID:        it.ID,
		Subject:   it.Subject,
		Message:   it.Message,
		Timestamp: it.Timestamp,
		PDFURL:    it.PDFURL,
	}
}
