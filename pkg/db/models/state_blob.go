package models

import "time"

// StateBlob is one serialized visitor container (cart, wishlist, ...).
type StateBlob struct {
	Scope     string    `gorm:"column:scope;primaryKey;size:128"`
	Name      string    `gorm:"column:name;primaryKey;size:64"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the state_blobs migration.
func (StateBlob) TableName() string {
	return "state_blobs"
}
