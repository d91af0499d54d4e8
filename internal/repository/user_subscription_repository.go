package repository

import (
	"finlearn_backend/internal/model"

	"gorm.io/gorm"
)

type UserSubscriptionRepository struct {
	DB *gorm.DB
}

func NewUserSubscriptionRepository(db *gorm.DB) *UserSubscriptionRepository {
	return &UserSubscriptionRepository{DB: db}
}

func (r *UserSubscriptionRepository) FindByUserID(userID string) (*model.UserSubscription, error) {
	var sub model.UserSubscription
	err := r.DB.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *UserSubscriptionRepository) Upsert(sub *model.UserSubscription) error {
	var existing model.UserSubscription
	err := r.DB.Where("user_id = ?", sub.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(sub).Error
	}
	if err != nil {
		return err
	}
	sub.ID = existing.ID
	return r.DB.Save(sub).Error
}
