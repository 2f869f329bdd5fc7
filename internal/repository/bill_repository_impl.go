package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type billRepository struct{}

func NewBillRepository() domainRepo.BillRepository {
	return &billRepository{}
}

func (r *billRepository) Create(ctx context.Context, db *gorm.DB, bill *entity.Bill) error {
	return db.WithContext(ctx).Create(bill).Error
}
