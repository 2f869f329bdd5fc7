package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type BillRepository interface {
	Create(ctx context.Context, db *gorm.DB, bill *entity.Bill) error
}
