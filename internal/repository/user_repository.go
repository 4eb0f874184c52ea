package repository

import (
	"context"
	"errors"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// FindByFamilyAndEmail looks a user up within one family. Email is only
// unique per family, never globally.
func (r *UserRepository) FindByFamilyAndEmail(ctx context.Context, familyID uuid.UUID, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("family_id = ? AND email = ?", familyID, email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepository) GetByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.User, error) {
	var users []model.User
	result := r.db.WithContext(ctx).Where("family_id = ?", familyID).Order("created_at").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CreditPoints increments a user's balance atomically. No read-modify-write:
// concurrent credits cannot lose updates.
func (r *UserRepository) CreditPoints(ctx context.Context, userID uuid.UUID, amount int) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DebitPoints decrements a user's balance only when it covers the amount.
// Returns ErrInsufficientPoints when the conditional update matches no row
// but the user exists.
func (r *UserRepository) DebitPoints(ctx context.Context, userID uuid.UUID, amount int) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		user, err := r.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		return ErrInsufficientPoints
	}
	return nil
}
