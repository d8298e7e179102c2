package storage

import (
	"context"

	"github.com/mmynk/finanzas/internal/models"
)

// Ensure RecordStore implements Store
var _ Store = (*RecordStore)(nil)

var (
	userEmail = Field[*models.User]{
		Get: func(u *models.User) string { return u.Email },
		Set: func(u *models.User, v string) { u.Email = v },
	}
	personalEmail = Field[*models.PersonalInfo]{
		Get: func(p *models.PersonalInfo) string { return p.Email },
		Set: func(p *models.PersonalInfo, v string) { p.Email = v },
	}
	financialEmail = Field[*models.FinancialRecord]{
		Get: func(f *models.FinancialRecord) string { return f.Email },
		Set: func(f *models.FinancialRecord, v string) { f.Email = v },
	}
)

// RecordStore implements Store with one Collection per record type.
type RecordStore struct {
	backend   Backend
	users     *Collection[*models.User]
	personal  *Collection[*models.PersonalInfo]
	financial *Collection[*models.FinancialRecord]
}

// NewRecordStore builds the users, personal-info and financial-info
// collections on top of backend.
func NewRecordStore(backend Backend) *RecordStore {
	return &RecordStore{
		backend: backend,
		users: NewCollection(UsersCollection, backend.Blob(UsersCollection),
			func() *models.User { return &models.User{} }),
		personal: NewCollection(PersonalInfoCollection, backend.Blob(PersonalInfoCollection),
			func() *models.PersonalInfo { return &models.PersonalInfo{Fields: map[string]models.Value{}} }),
		financial: NewCollection(FinancialInfoCollection, backend.Blob(FinancialInfoCollection),
			func() *models.FinancialRecord { return &models.FinancialRecord{} }),
	}
}

// Close closes the backend.
func (s *RecordStore) Close() error {
	return s.backend.Close()
}

// CreateUser appends user to the users collection, or returns
// ErrDuplicateKey if its email is already registered.
func (s *RecordStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.users.AppendUnique(ctx, userEmail, user)
}

// GetUserByEmail returns the first user with the given email.
func (s *RecordStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.users.FindAllBy(ctx, userEmail, email)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil // User not found
	}
	return users[0], nil
}

// AppendPersonalInfo appends info to the personal-info collection.
func (s *RecordStore) AppendPersonalInfo(ctx context.Context, info *models.PersonalInfo) error {
	return s.personal.Append(ctx, info)
}

// ListPersonalInfo returns the personal-info records owned by email.
func (s *RecordStore) ListPersonalInfo(ctx context.Context, email string) ([]*models.PersonalInfo, error) {
	return s.personal.FindAllBy(ctx, personalEmail, email)
}

// ListAllPersonalInfo returns every personal-info record.
func (s *RecordStore) ListAllPersonalInfo(ctx context.Context) ([]*models.PersonalInfo, error) {
	return s.personal.LoadAll(ctx)
}

// SaveFinancialInfo upserts the financial record keyed by email.
func (s *RecordStore) SaveFinancialInfo(ctx context.Context, email string, apply func(*models.FinancialRecord)) (*models.FinancialRecord, bool, error) {
	return s.financial.Upsert(ctx, financialEmail, email, apply)
}

// GetLatestFinancialInfo returns the last financial record stored for email.
func (s *RecordStore) GetLatestFinancialInfo(ctx context.Context, email string) (*models.FinancialRecord, error) {
	rec, ok, err := s.financial.FindLastBy(ctx, financialEmail, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return rec, nil
}

// Ping loads every collection once.
func (s *RecordStore) Ping(ctx context.Context) error {
	if _, err := s.users.LoadAll(ctx); err != nil {
		return err
	}
	if _, err := s.personal.LoadAll(ctx); err != nil {
		return err
	}
	if _, err := s.financial.LoadAll(ctx); err != nil {
		return err
	}
	return nil
}
