package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/ibplan-go-api/internal/models"
)

// ErrUserNotFound indicates no directory entry exists for the email.
var ErrUserNotFound = errors.New("user not found")

// UserDirectory abstracts the credential table behind a lookup-by-email
// capability so a real backing store can replace the demo table without
// touching the session store's control logic. Save writes the
// subject-selection and progress mirror back after session mutations.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (models.DirectoryUser, error)
	Save(ctx context.Context, user models.DirectoryUser) error
}

type gormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory constructs a database-backed user directory.
func NewGormDirectory(db *gorm.DB) UserDirectory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) FindByEmail(ctx context.Context, email string) (models.DirectoryUser, error) {
	var user models.DirectoryUser
	err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DirectoryUser{}, ErrUserNotFound
	}
	if err != nil {
		return models.DirectoryUser{}, err
	}
	return user, nil
}

func (d *gormDirectory) Save(ctx context.Context, user models.DirectoryUser) error {
	return d.db.WithContext(ctx).Save(&user).Error
}
