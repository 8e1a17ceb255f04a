package models

type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:64;not null"`
	LastLogin int64  `gorm:"not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
