// Package currency provides the GORM-backed currency repository.
package currency

import (
	"context"
	"errors"

	"github.com/ShantamRU/extraordinary-bank/infra/repository/model"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.CurrencyRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, c *domain.Currency) error {
	row := model.Currency{Code: c.Code, Name: c.Name, Rate: c.Rate}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *repo) Get(ctx context.Context, code string) (*domain.Currency, error) {
	var row model.Currency
	if err := r.db.WithContext(ctx).First(&row, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, err
	}
	return mapToDomain(&row), nil
}

func (r *repo) List(ctx context.Context) ([]domain.Currency, error) {
	var rows []model.Currency
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Currency, 0, len(rows))
	for i := range rows {
		result = append(result, *mapToDomain(&rows[i]))
	}
	return result, nil
}

func (r *repo) UpdateRate(ctx context.Context, code string, rate decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&model.Currency{}).
		Where("code = ?", code).
		Update("rate", rate).Error
}

func mapToDomain(row *model.Currency) *domain.Currency {
	return &domain.Currency{Code: row.Code, Name: row.Name, Rate: row.Rate}
}
