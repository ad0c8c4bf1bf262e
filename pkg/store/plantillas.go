package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/plantilla"
)

type plantillaRecord struct {
	ID          string `gorm:"primaryKey;size:64"`
	Nombre      string `gorm:"size:200;not null"`
	Descripcion string
	EmpresaID   string `gorm:"size:64;index"`
	Activa      bool
	Estructura  string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (plantillaRecord) TableName() string { return "plantillas" }

func (r *plantillaRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r plantillaRecord) toPlantilla() (plantilla.Plantilla, error) {
	structure, err := model.ParseJSON([]byte(r.Estructura))
	if err != nil {
		return plantilla.Plantilla{}, fmt.Errorf("store: plantilla %q: %w", r.ID, err)
	}
	return plantilla.Plantilla{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		EmpresaID:   r.EmpresaID,
		Activa:      r.Activa,
		Estructura:  structure,
	}, nil
}

// SavePlantilla inserts or replaces p. A blank id is generated.
func (s *Store) SavePlantilla(ctx context.Context, p plantilla.Plantilla) (plantilla.Plantilla, error) {
	if strings.TrimSpace(p.Nombre) == "" {
		return plantilla.Plantilla{}, fmt.Errorf("%w: plantilla nombre is required", ErrInvalidInput)
	}
	encoded, err := p.StructureJSON()
	if err != nil {
		return plantilla.Plantilla{}, err
	}
	record := plantillaRecord{
		ID:          strings.TrimSpace(p.ID),
		Nombre:      strings.TrimSpace(p.Nombre),
		Descripcion: p.Descripcion,
		EmpresaID:   strings.TrimSpace(p.EmpresaID),
		Activa:      p.Activa,
		Estructura:  string(encoded),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombre", "descripcion", "empresa_id", "activa", "estructura", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return plantilla.Plantilla{}, translate("save plantilla", err)
	}
	s.logger.WithField("plantilla", record.ID).Debug("store: plantilla saved")

	p.ID = record.ID
	return p, nil
}

// ImportSet upserts every plantilla of set.
func (s *Store) ImportSet(ctx context.Context, set *plantilla.Set) error {
	for _, p := range set.List() {
		if _, err := s.SavePlantilla(ctx, p); err != nil {
			return fmt.Errorf("store: import %s: %w", p.ID, err)
		}
	}
	return nil
}

// GetPlantilla loads a plantilla by id.
func (s *Store) GetPlantilla(ctx context.Context, id string) (plantilla.Plantilla, error) {
	var record plantillaRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		return plantilla.Plantilla{}, translate("get plantilla", err)
	}
	return record.toPlantilla()
}

// ListPlantillas lists plantillas ordered by nombre. A non-empty empresaID
// restricts the list to active plantillas available to that company.
func (s *Store) ListPlantillas(ctx context.Context, empresaID string) ([]plantilla.Plantilla, error) {
	query := s.db.WithContext(ctx).Order("nombre").Order("id")
	if empresa := strings.TrimSpace(empresaID); empresa != "" {
		query = query.Where("activa = ? AND (empresa_id = '' OR empresa_id = ?)", true, empresa)
	}

	var records []plantillaRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, translate("list plantillas", err)
	}
	out := make([]plantilla.Plantilla, 0, len(records))
	for _, record := range records {
		p, err := record.toPlantilla()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DeletePlantilla removes a plantilla. Existing solicitudes are kept.
func (s *Store) DeletePlantilla(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&plantillaRecord{}, "id = ?", strings.TrimSpace(id))
	if result.Error != nil {
		return translate("delete plantilla", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete plantilla: %w", ErrNotFound)
	}
	return nil
}
