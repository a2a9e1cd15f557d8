package models

// Department - отделение больницы со своей независимой очередью.
// Справочник заполняется при старте и дальше только читается.
type Department struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// DepartmentCounter хранит последний выданный номер талона отделения.
// Строка блокируется на время вступления в очередь (SELECT ... FOR UPDATE).
type DepartmentCounter struct {
	DepartmentID uint `gorm:"primaryKey;autoIncrement:false"`
	LastSequence int  `gorm:"not null;default:0"`
}
