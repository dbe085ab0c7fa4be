package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtifactRepository struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Write реализует artifact.Sink: вставка или замена по имени.
func (r *ArtifactRepository) Write(ctx context.Context, name string, lines []string) error {
	a := NewArtifact(name, lines)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "plant", "content", "lines", "updated_at"}),
		}).
		Create(a).Error
}

func (r *ArtifactRepository) GetByName(ctx context.Context, name string) (*Artifact, error) {
	var a Artifact
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtifactRepository) ListByStatus(ctx context.Context, status string, limit int) ([]Artifact, error) {
	var items []Artifact
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("updated_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// NewArtifact раскладывает имя артефакта на статус и площадку.
func NewArtifact(name string, lines []string) *Artifact {
	status, plant, _ := strings.Cut(name, "_")
	var content strings.Builder
	for _, line := range lines {
		content.WriteString(line)
		content.WriteString("\n")
	}
	return &Artifact{
		Name:    name,
		Status:  status,
		Plant:   plant,
		Content: content.String(),
		Lines:   len(lines),
	}
}
