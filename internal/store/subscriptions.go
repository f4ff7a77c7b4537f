package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"heavyrent-backend/internal/model"
)

// UpsertSubscription creates the subscription or replaces its keys and owner.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "user_id"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// DeleteSubscription removes the endpoint when it belongs to userID. A zero
// userID deletes regardless of owner.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string, userID uint) error {
	q := s.db.WithContext(ctx).Where("endpoint = ?", endpoint)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Delete(&model.PushSubscription{}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *gormStore) ListSubscriptionsByUser(ctx context.Context, userID uint) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user %d: %w", userID, err)
	}
	return subs, nil
}
