package models

// Profile status values. A deactivated profile cannot log in until it is
// reactivated; suspension is an admin action.
const (
	ProfileStatusActive    = "active"
	ProfileStatusDeactive  = "deactive"
	ProfileStatusSuspended = "suspended"
)

// Profile holds the public-facing half of an account. Created together
// with its User; Name defaults to the username when left blank.
type Profile struct {
	ID           uint   `json:"-" gorm:"primaryKey"`
	UserID       uint   `json:"-" gorm:"uniqueIndex"`
	Name         string `json:"name" gorm:"size:100"`
	Bio          string `json:"bio" gorm:"size:350"`
	ProfileImage string `json:"profile_image"`
	CoverImage   string `json:"cover_image"`
	Website      string `json:"website"`
	Location     string `json:"location" gorm:"size:100"`
	Status       string `json:"status" gorm:"size:20;default:'active'"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name,omitempty" validate:"omitempty,max=100"`
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=350"`
	ProfileImage string `json:"profile_image,omitempty"`
	CoverImage   string `json:"cover_image,omitempty"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	Location     string `json:"location,omitempty" validate:"omitempty,max=100"`
}
