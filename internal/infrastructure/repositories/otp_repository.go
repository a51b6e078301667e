package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
	"gorm.io/gorm"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBEmailOTP represents the database model for EmailOTP
type DBEmailOTP struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index;size:255"`
	Code      string    `gorm:"column:otp;size:16"`
	Verified  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
	ExpiresAt time.Time
}

// TableName returns the table name for GORM
func (DBEmailOTP) TableName() string {
	return "email_otps"
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *domain.EmailOTP) error {
	dbOTP := &DBEmailOTP{
		Email:     otp.Email,
		Code:      otp.Code,
		Verified:  otp.Verified,
		ExpiresAt: otp.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbOTP).Error; err != nil {
		return err
	}
	otp.ID = dbOTP.ID
	otp.CreatedAt = dbOTP.CreatedAt
	return nil
}

// LatestByEmail implements domain.OTPRepository. Racing issuers can leave
// more than one row behind; the newest one is the current code.
func (r *OTPRepositoryImpl) LatestByEmail(ctx context.Context, email string) (*domain.EmailOTP, error) {
	var dbOTP DBEmailOTP
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC, id DESC").
		First(&dbOTP).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &domain.EmailOTP{
		ID:        dbOTP.ID,
		Email:     dbOTP.Email,
		Code:      dbOTP.Code,
		Verified:  dbOTP.Verified,
		CreatedAt: dbOTP.CreatedAt,
		ExpiresAt: dbOTP.ExpiresAt,
	}, nil
}

// MarkVerified implements domain.OTPRepository
func (r *OTPRepositoryImpl) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBEmailOTP{}).Where("id = ?", id).Update("verified", true).Error
}

// DeleteByEmail implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&DBEmailOTP{}).Error
}
