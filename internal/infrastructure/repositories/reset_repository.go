package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
	"gorm.io/gorm"
)

// ResetRepositoryImpl implements domain.PasswordResetRepository using GORM
type ResetRepositoryImpl struct {
	db *gorm.DB
}

// DBPasswordReset represents the database model for PasswordReset
type DBPasswordReset struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index;size:255"`
	Token     string    `gorm:"uniqueIndex;size:64"`
	CreatedAt time.Time `gorm:"index"`
	ExpiresAt time.Time
}

// TableName returns the table name for GORM
func (DBPasswordReset) TableName() string {
	return "password_resets"
}

// NewResetRepository creates a new password reset repository
func NewResetRepository(db *gorm.DB) domain.PasswordResetRepository {
	return &ResetRepositoryImpl{db: db}
}

// Create implements domain.PasswordResetRepository
func (r *ResetRepositoryImpl) Create(ctx context.Context, reset *domain.PasswordReset) error {
	dbReset := &DBPasswordReset{
		Email:     reset.Email,
		Token:     reset.Token,
		ExpiresAt: reset.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbReset).Error; err != nil {
		return err
	}
	reset.ID = dbReset.ID
	reset.CreatedAt = dbReset.CreatedAt
	return nil
}

// FindByToken implements domain.PasswordResetRepository
func (r *ResetRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var dbReset DBPasswordReset
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbReset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return &domain.PasswordReset{
		ID:        dbReset.ID,
		Email:     dbReset.Email,
		Token:     dbReset.Token,
		CreatedAt: dbReset.CreatedAt,
		ExpiresAt: dbReset.ExpiresAt,
	}, nil
}

// DeleteByEmail implements domain.PasswordResetRepository
func (r *ResetRepositoryImpl) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&DBPasswordReset{}).Error
}

// ConsumeByToken implements domain.PasswordResetRepository. The delete is
// the claim: of two concurrent consumers only one sees RowsAffected == 1.
func (r *ResetRepositoryImpl) ConsumeByToken(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&DBPasswordReset{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
