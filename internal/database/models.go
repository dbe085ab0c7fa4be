// Package database хранит копии артефактов в PostgreSQL.
// Использует GORM; запись идет upsert'ом по имени артефакта, поэтому повторный
// запуск перезаписывает строку так же, как перезаписывается файл.
package database

import "time"

// Artifact - копия файла артефакта. Статус и площадка выделены из имени для выборок.
type Artifact struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"` // ok_/nok_ + имя площадки
	Status    string    `gorm:"type:varchar(8);not null"`               // ok или nok
	Plant     string    `gorm:"type:varchar(255);not null"`             // имя площадки без префикса
	Content   string    `gorm:"type:text;not null"`                     // строки артефакта через \n
	Lines     int       `gorm:"not null"`                               // количество строк
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
