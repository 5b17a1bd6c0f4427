package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DirectoryUser is the persistent form of a user-directory entry. The
// demo deployments run on the in-memory directory instead; this model
// exists so a real backing store can be substituted without touching
// the session store's control logic.
type DirectoryUser struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        string         `gorm:"size:32;not null;default:student" json:"role"`
	SubjectsRaw datatypes.JSON `gorm:"column:subjects;type:json" json:"-"`
	Progress    int            `gorm:"default:0" json:"progress"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Subjects    []string       `gorm:"-" json:"subjects"`
}

// BeforeSave serialises the subject selection into the JSON column.
func (u *DirectoryUser) BeforeSave(tx *gorm.DB) error {
	if u.Subjects == nil {
		u.Subjects = []string{}
	}
	raw, err := json.Marshal(u.Subjects)
	if err != nil {
		return err
	}
	u.SubjectsRaw = datatypes.JSON(raw)
	return nil
}

// AfterFind hydrates the subject selection after loading from the DB.
func (u *DirectoryUser) AfterFind(tx *gorm.DB) error {
	u.Subjects = []string{}
	if len(u.SubjectsRaw) == 0 {
		return nil
	}
	// A corrupt column should not poison the lookup.
	_ = json.Unmarshal(u.SubjectsRaw, &u.Subjects)
	return nil
}

// Identity projects the directory entry into a session identity,
// dropping the password.
func (u DirectoryUser) Identity() Identity {
	subjects := u.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return Identity{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Subjects: subjects,
		Progress: u.Progress,
	}
}
