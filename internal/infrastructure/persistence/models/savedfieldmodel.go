package models

type SavedFieldModel struct {
	ID        uint   `gorm:"primaryKey"`
	Type      string `gorm:"size:16;not null;uniqueIndex:uk_saved_fields_type_value,priority:1"`
	Value     string `gorm:"size:500;not null;uniqueIndex:uk_saved_fields_type_value,priority:2"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (SavedFieldModel) TableName() string {
	return "saved_fields"
}
