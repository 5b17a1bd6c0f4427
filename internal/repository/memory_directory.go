package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/ibplan-go-api/internal/models"
)

// MemoryDirectory is the demo credential table. Lookups are exact and
// case-sensitive on the raw email string. Writes survive within the
// process only; the durable session copy is what outlives a restart.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]models.DirectoryUser
}

// NewMemoryDirectory builds an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]models.DirectoryUser)}
}

// NewDemoDirectory builds the directory pre-seeded with the demo
// accounts the application ships with.
func NewDemoDirectory() *MemoryDirectory {
	dir := NewMemoryDirectory()
	for _, user := range DemoUsers() {
		dir.users[user.Email] = user
	}
	return dir
}

// DemoUsers returns the fixed demo accounts. Mock data only; none of
// these credentials guard anything real.
func DemoUsers() []models.DirectoryUser {
	return []models.DirectoryUser{
		{ID: "1", Name: "Admin", Email: "ibmaster@gmail.com", Password: "IloveIB!", Role: models.RoleAdmin, Subjects: []string{}, Progress: 100},
		{ID: "2", Name: "Talal", Email: "talal@gmail.com", Password: "IloveIB!", Role: models.RoleStudent, Subjects: []string{}, Progress: 0},
		{ID: "3", Name: "Abrah", Email: "abrah@gmail.com", Password: "IloveIB!", Role: models.RoleStudent, Subjects: []string{}, Progress: 0},
		{ID: "4", Name: "Ali", Email: "ali@gmail.com", Password: "IloveIB!", Role: models.RoleStudent, Subjects: []string{}, Progress: 0},
	}
}

// FindByEmail implements UserDirectory.
func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (models.DirectoryUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[email]
	if !ok {
		return models.DirectoryUser{}, ErrUserNotFound
	}
	return user, nil
}

// Save implements UserDirectory, keyed by email.
func (d *MemoryDirectory) Save(ctx context.Context, user models.DirectoryUser) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.Email] = user
	return nil
}
