package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gsualumni/alumninet/internal/entity"
	repo "github.com/gsualumni/alumninet/internal/modules/notification/repository"
)

// ChannelFor names the redis pub/sub channel carrying a user's live
// notification feed.
func ChannelFor(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

type Service interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// NotifyModeration records a moderation outcome for the content owner
	// and pushes it to their live feed.
	NotifyModeration(ctx context.Context, ownerID uuid.UUID, actorID uuid.UUID, notifType, message string, refID *uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo        repo.Repository
	redisClient *redis.Client
}

func NewService(repo repo.Repository, redisClient *redis.Client) Service {
	return &service{repo: repo, redisClient: redisClient}
}

func (s *service) Create(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// Live delivery is best-effort. The row is already persisted, so a
	// missing or unreachable redis only costs the push.
	if s.redisClient != nil {
		if payload, err := json.Marshal(notification); err == nil {
			s.redisClient.Publish(ctx, ChannelFor(notification.UserID), payload)
		}
	}

	return nil
}

func (s *service) NotifyModeration(ctx context.Context, ownerID uuid.UUID, actorID uuid.UUID, notifType, message string, refID *uuid.UUID) error {
	return s.Create(ctx, &entity.Notification{
		UserID:  ownerID,
		ActorID: &actorID,
		Type:    notifType,
		Message: message,
		RefID:   refID,
	})
}

func (s *service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.FindByUser(ctx, userID, limit, offset)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
