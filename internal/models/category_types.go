package models

import "time"

// Category defines the struct for the 'categories' table
type Category struct {
	ID             int64     `json:"category_id" db:"category_id"`
	Name           string    `json:"category_name" db:"category_name"`
	Description    *string   `json:"description" db:"description"`
	ImagePath      *string   `json:"image_path" db:"image_path"`
	HoverImagePath *string   `json:"hover_image_path" db:"hover_image_path"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
