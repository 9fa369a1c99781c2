// Package operation provides the GORM-backed operation repository.
package operation

import (
	"context"

	"github.com/ShantamRU/extraordinary-bank/infra/repository/model"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.OperationRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, op *domain.Operation) error {
	row := model.Operation{
		ID:          op.ID,
		AccountID:   op.AccountID,
		AmountDiff:  op.AmountDiff,
		CreatedAt:   op.CreatedAt,
		Description: op.Description,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *repo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Operation, error) {
	var rows []model.Operation
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.Operation, 0, len(rows))
	for i := range rows {
		result = append(result, domain.Operation{
			ID:          rows[i].ID,
			AccountID:   rows[i].AccountID,
			AmountDiff:  rows[i].AmountDiff,
			CreatedAt:   rows[i].CreatedAt,
			Description: rows[i].Description,
		})
	}
	return result, nil
}
