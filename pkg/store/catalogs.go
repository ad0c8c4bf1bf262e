package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/model"
)

type catalogRecord struct {
	Tabla  string `gorm:"primaryKey;size:64"`
	ID     string `gorm:"primaryKey;size:64"`
	Nombre string `gorm:"size:200"`
	Orden  int
	Extra  string `gorm:"type:text"`
}

func (catalogRecord) TableName() string { return "catalogo_entradas" }

func (r catalogRecord) entry() (catalog.Entry, error) {
	entry := catalog.Entry{}
	if strings.TrimSpace(r.Extra) != "" {
		if err := json.Unmarshal([]byte(r.Extra), &entry); err != nil {
			return nil, fmt.Errorf("store: catalog %s/%s: decode extra: %w", r.Tabla, r.ID, err)
		}
	}
	entry["id"] = r.ID
	entry["nombre"] = r.Nombre
	return entry, nil
}

// ReplaceCatalog swaps the rows of table for entries, keeping their order.
// Entries without an "id" receive a generated one.
func (s *Store) ReplaceCatalog(ctx context.Context, table string, entries []catalog.Entry) error {
	table = strings.TrimSpace(table)
	if table == "" {
		return fmt.Errorf("%w: catalog table is required", ErrInvalidInput)
	}

	records := make([]catalogRecord, 0, len(entries))
	for idx, entry := range entries {
		extra := make(map[string]any, len(entry))
		for key, value := range entry {
			if key != "id" && key != "nombre" {
				extra[key] = value
			}
		}
		encoded, err := json.Marshal(extra)
		if err != nil {
			return fmt.Errorf("store: catalog %s: encode entry %d: %w", table, idx, err)
		}
		id := strings.TrimSpace(model.StringValue(entry["id"]))
		if id == "" {
			id = uuid.NewString()
		}
		records = append(records, catalogRecord{
			Tabla:  table,
			ID:     id,
			Nombre: model.StringValue(entry["nombre"]),
			Orden:  idx,
			Extra:  string(encoded),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tabla = ?", table).Delete(&catalogRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return translate("replace catalog "+table, err)
	}
	s.logger.WithField("table", table).WithField("rows", len(records)).Debug("store: catalog replaced")
	return nil
}

// Fetch implements catalog.Fetcher over the stored rows.
func (s *Store) Fetch(ctx context.Context, table string) ([]catalog.Entry, error) {
	var records []catalogRecord
	err := s.db.WithContext(ctx).
		Where("tabla = ?", strings.TrimSpace(table)).
		Order("orden").
		Find(&records).Error
	if err != nil {
		return nil, translate("fetch catalog "+table, err)
	}
	out := make([]catalog.Entry, 0, len(records))
	for _, record := range records {
		entry, err := record.entry()
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

var _ catalog.Fetcher = (*Store)(nil)
