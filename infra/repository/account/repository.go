// Package account provides the GORM-backed account repository.
package account

import (
	"context"
	"errors"

	"github.com/ShantamRU/extraordinary-bank/infra/repository/model"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.AccountRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, a *domain.Account) error {
	row := model.Account{
		ID:           a.ID,
		UserID:       a.UserID,
		CurrencyCode: a.CurrencyCode,
		Balance:      a.Balance,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var row model.Account
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mapToDomain(&row), nil
}

func (r *repo) GetByOwnerAndCurrency(
	ctx context.Context,
	ownerID uuid.UUID,
	code string,
) (*domain.Account, error) {
	var row model.Account
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND currency_code = ?", ownerID, code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mapToDomain(&row), nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	var rows []model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Account, 0, len(rows))
	for i := range rows {
		result = append(result, *mapToDomain(&rows[i]))
	}
	return result, nil
}

// AddToBalance applies the delta as one conditional UPDATE so the database
// serializes concurrent writers on the row.
func (r *repo) AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func mapToDomain(row *model.Account) *domain.Account {
	return &domain.Account{
		ID:           row.ID,
		UserID:       row.UserID,
		CurrencyCode: row.CurrencyCode,
		Balance:      row.Balance,
	}
}
