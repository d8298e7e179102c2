// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/finanzas/internal/models"
)

// Collection names shared by every backend.
const (
	UsersCollection         = "users"
	PersonalInfoCollection  = "personal_info"
	FinancialInfoCollection = "financial_info"
)

// CollectionNames lists every collection a backend must provide.
var CollectionNames = []string{
	UsersCollection,
	PersonalInfoCollection,
	FinancialInfoCollection,
}

// Backend hands out the Blob behind each named collection.
type Backend interface {
	Blob(name string) Blob
	Close() error
}

// Store defines the interface for record storage operations.
// This abstraction allows swapping storage backends (JSON files, SQLite)
// without changing the service layer.
type Store interface {
	// CreateUser appends a new user and assigns its ID. It returns
	// ErrDuplicateKey if a user with the same email exists.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns the first user registered with email,
	// or nil and no error if there is none.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// AppendPersonalInfo stores a new personal-info record and assigns its ID.
	AppendPersonalInfo(ctx context.Context, info *models.PersonalInfo) error

	// ListPersonalInfo returns the records owned by email in insertion order.
	ListPersonalInfo(ctx context.Context, email string) ([]*models.PersonalInfo, error)

	// ListAllPersonalInfo returns every personal-info record in insertion order.
	ListAllPersonalInfo(ctx context.Context) ([]*models.PersonalInfo, error)

	// SaveFinancialInfo updates the financial record of email in place, or
	// creates it. apply receives the record to fill in.
	SaveFinancialInfo(ctx context.Context, email string, apply func(*models.FinancialRecord)) (*models.FinancialRecord, bool, error)

	// GetLatestFinancialInfo returns the most recently appended financial
	// record of email, or nil and no error if there is none.
	GetLatestFinancialInfo(ctx context.Context, email string) (*models.FinancialRecord, error)

	// Ping checks that every collection can be read and decoded.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
