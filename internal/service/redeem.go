package service

import (
	"context"
	"fmt"
	"log"

	"famhub/internal/model"
	"famhub/internal/repository"

	"github.com/google/uuid"
)

// RedeemUserStore is the slice of the user repository the redeemer needs.
type RedeemUserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	DebitPoints(ctx context.Context, userID uuid.UUID, amount int) error
}

// RewardStore is the slice of the reward repository the redeemer needs.
type RewardStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reward, error)
	DecrementStock(ctx context.Context, rewardID uuid.UUID) error
	IncrementStock(ctx context.Context, rewardID uuid.UUID) error
}

// Redeemer exchanges a user's points for a reward. Stock and balance are
// both guarded by conditional updates in storage, so a rejected redemption
// mutates nothing and two redemptions can never share the last unit.
type Redeemer struct {
	users   RedeemUserStore
	rewards RewardStore
	history HistoryAppender
}

func NewRedeemer(users RedeemUserStore, rewards RewardStore, history HistoryAppender) *Redeemer {
	return &Redeemer{users: users, rewards: rewards, history: history}
}

// Redeem debits reward.Points from the user, takes one unit of finite
// stock, and appends one "spend" ledger entry. On insufficient points or
// exhausted stock it returns repository.ErrInsufficientPoints or
// repository.ErrOutOfStock with no net mutation.
func (s *Redeemer) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*model.PointHistory, error) {
	reward, err := s.rewards.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}

	// Stock first: DecrementStock is a no-op for unlimited rewards and
	// fails without mutation when stock is exhausted.
	if err := s.rewards.DecrementStock(ctx, rewardID); err != nil {
		return nil, err
	}

	if err := s.users.DebitPoints(ctx, userID, reward.Points); err != nil {
		// Give the unit back before reporting the failure.
		if reward.Stock != model.UnlimitedStock {
			if restoreErr := s.rewards.IncrementStock(ctx, rewardID); restoreErr != nil {
				log.Printf("⚠️  Could not restore stock for reward %s: %v", rewardID, restoreErr)
			}
		}
		return nil, err
	}

	relatedID := reward.ID
	entry := &model.PointHistory{
		UserID:      user.ID,
		FamilyID:    user.FamilyID,
		Type:        model.HistorySpend,
		Amount:      reward.Points,
		Description: fmt.Sprintf("Reward redeemed: %s", reward.Title),
		RelatedID:   &relatedID,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
