package model

import "time"

// swagger:model Form
type Form struct {
	UUIDBase
	OwnerID     uint       `gorm:"index;type:bigint unsigned" json:"ownerId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	// Branding is display-only; renderers substitute defaults for anything
	// left empty.
	BusinessName    string `gorm:"size:150" json:"businessName"`
	LogoURL         string `gorm:"size:500" json:"logoUrl"`
	ProfileImageURL string `gorm:"size:500" json:"profileImageUrl"`
	PrimaryColor    string `gorm:"size:20" json:"primaryColor"`
	SecondaryColor  string `gorm:"size:20" json:"secondaryColor"`
	BackgroundColor string `gorm:"size:20" json:"backgroundColor"`
}

func (Form) TableName() string {
	return "forms"
}
