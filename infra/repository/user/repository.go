// Package user provides the GORM-backed user and update-request
// repositories.
package user

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ShantamRU/extraordinary-bank/infra/repository/model"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.UserRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, u *domain.User) error {
	row := mapToModel(u)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repo) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	return r.first(ctx, "email = ? OR phone = ?", identity, identity)
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *repo) ConfirmByCode(ctx context.Context, code string) (uuid.UUID, error) {
	var row model.User
	err := r.db.WithContext(ctx).First(&row, "confirmation_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, domain.ErrInvalidConfirmationCode
		}
		return uuid.Nil, err
	}
	err = r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", row.ID).
		Update("confirmation_code", nil).Error
	if err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (r *repo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateColumns(ctx, id, map[string]any{"password": hash})
}

func (r *repo) UpdateNames(ctx context.Context, id uuid.UUID, first, last, middle string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"first_name":  first,
		"last_name":   last,
		"middle_name": middle,
	})
}

func (r *repo) ApplyUpdate(ctx context.Context, id uuid.UUID, conditions map[string]string) error {
	updates := make(map[string]any, len(conditions))
	for col, val := range conditions {
		updates[col] = val
	}
	return r.updateColumns(ctx, id, updates)
}

func (r *repo) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *repo) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var row model.User
	if err := r.db.WithContext(ctx).First(&row, append([]any{query}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapToDomain(&row), nil
}

func mapToModel(u *domain.User) model.User {
	return model.User{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		MiddleName:       u.MiddleName,
		Email:            u.Email,
		Phone:            u.Phone,
		Password:         u.Password,
		ConfirmationCode: u.ConfirmationCode,
	}
}

func mapToDomain(row *model.User) *domain.User {
	return &domain.User{
		ID:               row.ID,
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		MiddleName:       row.MiddleName,
		Email:            row.Email,
		Phone:            row.Phone,
		Password:         row.Password,
		ConfirmationCode: row.ConfirmationCode,
	}
}

// updateRequestRepo implements repository.UpdateRequestRepository.
type updateRequestRepo struct {
	db *gorm.DB
}

func NewUpdateRequests(db *gorm.DB) repository.UpdateRequestRepository {
	return &updateRequestRepo{db: db}
}

func (r *updateRequestRepo) Create(ctx context.Context, req *domain.UpdateRequest) error {
	conditions, err := json.Marshal(req.Conditions)
	if err != nil {
		return err
	}
	row := model.UpdateRequest{
		ID:               req.ID,
		UserID:           req.UserID,
		Conditions:       conditions,
		ConfirmationCode: req.ConfirmationCode,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *updateRequestRepo) Take(
	ctx context.Context,
	userID uuid.UUID,
	code string,
) (map[string]string, error) {
	var row model.UpdateRequest
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND confirmation_code = ?", userID, code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidConfirmationCode
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&model.UpdateRequest{}, "id = ?", row.ID).Error; err != nil {
		return nil, err
	}
	var conditions map[string]string
	if err := json.Unmarshal(row.Conditions, &conditions); err != nil {
		return nil, err
	}
	return conditions, nil
}
