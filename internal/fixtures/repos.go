package fixtures

import (
	"context"
	"sort"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type currencyRepo struct{ store *Store }

func (r *currencyRepo) Create(_ context.Context, c *domain.Currency) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.currencies[c.Code] = *c
	return nil
}

func (r *currencyRepo) Get(_ context.Context, code string) (*domain.Currency, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.currencies[code]
	if !ok {
		return nil, domain.ErrCurrencyNotFound
	}
	return &c, nil
}

func (r *currencyRepo) List(_ context.Context) ([]domain.Currency, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Currency, 0, len(r.store.currencies))
	for _, c := range r.store.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *currencyRepo) UpdateRate(_ context.Context, code string, rate decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.currencies[code]
	if !ok {
		return domain.ErrCurrencyNotFound
	}
	c.Rate = rate
	r.store.currencies[code] = c
	return nil
}

type accountRepo struct{ store *Store }

func (r *accountRepo) Create(_ context.Context, a *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.accounts {
		if existing.UserID == a.UserID && existing.CurrencyCode == a.CurrencyCode {
			return domain.ErrDuplicateAccount
		}
	}
	r.store.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) Get(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (r *accountRepo) GetByOwnerAndCurrency(
	_ context.Context,
	ownerID uuid.UUID,
	code string,
) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.accounts {
		if a.UserID == ownerID && a.CurrencyCode == code {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *accountRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.Account
	for _, a := range r.store.accounts {
		if a.UserID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (r *accountRepo) AddToBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	r.store.accounts[id] = a
	return nil
}

func (r *accountRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok || a.UserID != ownerID {
		return domain.ErrAccountNotFound
	}
	delete(r.store.accounts, id)
	kept := r.store.operations[:0]
	for _, op := range r.store.operations {
		if op.AccountID != id {
			kept = append(kept, op)
		}
	}
	r.store.operations = kept
	return nil
}

type operationRepo struct{ store *Store }

func (r *operationRepo) Create(_ context.Context, op *domain.Operation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.operationCreates++
	if r.store.FailOperationCreateAt > 0 &&
		r.store.operationCreates == r.store.FailOperationCreateAt {
		return ErrInjected
	}
	r.store.operations = append(r.store.operations, *op)
	return nil
}

func (r *operationRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]domain.Operation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.operationsOfLocked(accountID), nil
}

type userRepo struct{ store *Store }

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[u.ID] = copyUser(*u)
	return nil
}

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u = copyUser(u)
	return &u, nil
}

func (r *userRepo) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	if u, err := r.GetByEmail(ctx, identity); err == nil {
		return u, nil
	}
	return r.GetByPhone(ctx, identity)
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			u = copyUser(u)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Phone == phone {
			u = copyUser(u)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) ConfirmByCode(_ context.Context, code string) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, u := range r.store.users {
		if u.ConfirmationCode != nil && *u.ConfirmationCode == code {
			u.ConfirmationCode = nil
			r.store.users[id] = u
			return id, nil
		}
	}
	return uuid.Nil, domain.ErrInvalidConfirmationCode
}

func (r *userRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = hash
	r.store.users[id] = u
	return nil
}

func (r *userRepo) UpdateNames(_ context.Context, id uuid.UUID, first, last, middle string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FirstName, u.LastName, u.MiddleName = first, last, middle
	r.store.users[id] = u
	return nil
}

func (r *userRepo) ApplyUpdate(_ context.Context, id uuid.UUID, conditions map[string]string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if email, ok := conditions["email"]; ok {
		u.Email = email
	}
	if phone, ok := conditions["phone"]; ok {
		u.Phone = phone
	}
	r.store.users[id] = u
	return nil
}

type updateRequestRepo struct{ store *Store }

func (r *updateRequestRepo) Create(_ context.Context, req *domain.UpdateRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.updateRequests[req.ID] = copyUpdateRequest(*req)
	return nil
}

func (r *updateRequestRepo) Take(
	_ context.Context,
	userID uuid.UUID,
	code string,
) (map[string]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, req := range r.store.updateRequests {
		if req.UserID == userID && req.ConfirmationCode == code {
			delete(r.store.updateRequests, id)
			return req.Conditions, nil
		}
	}
	return nil, domain.ErrInvalidConfirmationCode
}
