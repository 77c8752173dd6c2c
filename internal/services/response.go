package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"openinvite/internal/domain"
)

const (
	maxGuestNameLen = 200
	maxMessageLen   = 2000
	maxHeadCount    = 1000
)

type responseService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
	responseRepo   domain.ResponseRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
	logger         *slog.Logger
	now            func() time.Time
	newToken       func() string
}

// NewResponseService returns a ResponseService. emailService may be nil, in
// which case hosts are not notified.
func NewResponseService(
	invitationRepo domain.InvitationRepository,
	guestRepo domain.GuestRepository,
	responseRepo domain.ResponseRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
	logger *slog.Logger,
) domain.ResponseService {
	return &responseService{
		invitationRepo: invitationRepo,
		guestRepo:      guestRepo,
		responseRepo:   responseRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
		logger:         logger,
		now:            time.Now,
		newToken:       uuid.NewString,
	}
}

func (s *responseService) Submit(ctx context.Context, guestToken string, sub domain.ResponseSubmission) (*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guest, err := s.guestRepo.GetByToken(ctx, guestToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	inv, err := s.invitationRepo.GetByID(ctx, guest.InvitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if !inv.RSVPEnabled {
		return nil, domain.ErrRSVPClosed
	}

	resp, err := normalizeSubmission(inv, sub)
	if err != nil {
		return nil, err
	}
	resp.GuestID = guest.ID
	resp.UpdatedAt = s.now()
	if err := s.responseRepo.Upsert(ctx, resp); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	s.notifyHost(ctx, inv, guest.Name, resp)
	return resp, nil
}

func (s *responseService) SubmitOpen(ctx context.Context, openToken string, sub domain.ResponseSubmission) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByOpenToken(ctx, openToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get invitation: %w", err)
	}
	if !inv.OpenRSVPEnabled {
		return "", domain.ErrNotFound
	}
	if !inv.RSVPEnabled {
		return "", domain.ErrRSVPClosed
	}

	name := strings.Join(strings.Fields(sub.GuestName), " ")
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidResponse)
	}
	if utf8.RuneCountInString(name) > maxGuestNameLen {
		return "", fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidResponse, maxGuestNameLen)
	}
	resp, err := normalizeSubmission(inv, sub)
	if err != nil {
		return "", err
	}

	now := s.now()
	guest := &domain.Guest{
		InvitationID: inv.ID,
		Token:        s.newToken(),
		Name:         name,
		CreatedAt:    now,
	}
	resp.UpdatedAt = now
	if err := s.guestRepo.CreateWithResponse(ctx, guest, resp); err != nil {
		return "", fmt.Errorf("create guest: %w", err)
	}

	s.notifyHost(ctx, inv, guest.Name, resp)
	return guest.Token, nil
}

// normalizeSubmission validates sub against the invitation's options and keeps
// only the counts that match its count mode.
func normalizeSubmission(inv *domain.Invitation, sub domain.ResponseSubmission) (*domain.Response, error) {
	key := strings.TrimSpace(sub.Key)
	if !inv.HasOption(key) {
		return nil, fmt.Errorf("%w: unknown response %q", domain.ErrInvalidResponse, key)
	}
	message := strings.TrimSpace(sub.Message)
	if utf8.RuneCountInString(message) > maxMessageLen {
		return nil, fmt.Errorf("%w: message must be at most %d characters", domain.ErrInvalidResponse, maxMessageLen)
	}
	for _, n := range []*int{sub.Adults, sub.Kids, sub.Total} {
		if n != nil && (*n < 0 || *n > maxHeadCount) {
			return nil, fmt.Errorf("%w: counts must be between 0 and %d", domain.ErrInvalidResponse, maxHeadCount)
		}
	}

	resp := &domain.Response{Key: key, Message: message}
	if inv.CountMode == domain.CountModeSplit {
		resp.Adults = sub.Adults
		resp.Kids = sub.Kids
	} else {
		resp.Total = sub.Total
	}
	return resp, nil
}

// notifyHost emails the invitation owner. Failures are logged and never fail
// the RSVP.
func (s *responseService) notifyHost(ctx context.Context, inv *domain.Invitation, guestName string, resp *domain.Response) {
	if s.emailService == nil || s.userRepo == nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, inv.OwnerID)
	if err != nil {
		s.logger.WarnContext(ctx, "response notice skipped", "invitation_id", inv.ID, "err", err)
		return
	}
	data := &domain.ResponseNoticeEmailData{
		Email:           owner.Email,
		HostName:        owner.Name,
		InvitationTitle: inv.Title,
		GuestName:       guestName,
		ResponseLabel:   inv.OptionLabel(resp.Key),
		Adults:          resp.Adults,
		Kids:            resp.Kids,
		Total:           resp.Total,
		Message:         resp.Message,
	}
	if err := s.emailService.SendResponseNotice(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "response notice failed", "invitation_id", inv.ID, "err", err)
	}
}
