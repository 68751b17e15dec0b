package mapstore

import (
	"context"
	"errors"

	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"gorm.io/gorm"
)

// Repository is the durable mirror of the map_template table.
type Repository interface {
	ReplaceAll(ctx context.Context, templates []tilemap.Template) error
	List(ctx context.Context) ([]tilemap.Template, error)
	Get(ctx context.Context, name string) (*tilemap.Template, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&tilemap.Template{})
}

// ReplaceAll swaps the whole table for templates in one transaction, the
// same contract as the replace_all_templates reducer.
func (r *GormRepository) ReplaceAll(ctx context.Context, templates []tilemap.Template) error {
	rows := make([]tilemap.Template, len(templates))
	copy(rows, templates)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&tilemap.Template{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 50).Error
	})
	if err != nil {
		return apperrors.NewAppError(500, "Error replacing map templates", err)
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context) ([]tilemap.Template, error) {
	var templates []tilemap.Template
	if err := r.db.WithContext(ctx).Order("name").Find(&templates).Error; err != nil {
		return nil, apperrors.NewAppError(500, "Error listing map templates", err)
	}
	return templates, nil
}

func (r *GormRepository) Get(ctx context.Context, name string) (*tilemap.Template, error) {
	var t tilemap.Template
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Template not found")
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error getting map template", err)
	}
	return &t, nil
}
