package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Status is the review state of a solicitud.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusReviewing Status = "en_revision"
	StatusApproved  Status = "aprobada"
	StatusRejected  Status = "rechazada"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusReviewing, StatusRejected},
	StatusReviewing: {StatusApproved, StatusRejected, StatusPending},
}

// ParseStatus validates a status name.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
}

// CanTransition reports whether a solicitud may move from one status to
// another. Approved and rejected solicitudes are final.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Final reports whether no transition leaves s.
func (s Status) Final() bool {
	return len(transitions[s]) == 0
}

// Solicitud is a submitted Value Map bound to a plantilla.
type Solicitud struct {
	ID            string         `json:"id"`
	PlantillaID   string         `json:"plantillaId"`
	EmpresaID     string         `json:"empresaId,omitempty"`
	Estado        Status         `json:"estado"`
	Datos         map[string]any `json:"datos"`
	Observaciones string         `json:"observaciones,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type solicitudRecord struct {
	ID            string `gorm:"primaryKey;size:64"`
	PlantillaID   string `gorm:"size:64;index;not null"`
	EmpresaID     string `gorm:"size:64;index"`
	Estado        string `gorm:"size:20;index;not null"`
	Datos         string `gorm:"type:text"`
	Observaciones string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (solicitudRecord) TableName() string { return "solicitudes" }

func (r *solicitudRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r solicitudRecord) toSolicitud() (Solicitud, error) {
	datos := map[string]any{}
	if strings.TrimSpace(r.Datos) != "" {
		if err := json.Unmarshal([]byte(r.Datos), &datos); err != nil {
			return Solicitud{}, fmt.Errorf("store: solicitud %q: decode datos: %w", r.ID, err)
		}
	}
	return Solicitud{
		ID:            r.ID,
		PlantillaID:   r.PlantillaID,
		EmpresaID:     r.EmpresaID,
		Estado:        Status(r.Estado),
		Datos:         datos,
		Observaciones: r.Observaciones,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// CreateSolicitud stores datos as a pending solicitud of plantillaID.
func (s *Store) CreateSolicitud(ctx context.Context, plantillaID, empresaID string, datos map[string]any) (Solicitud, error) {
	if strings.TrimSpace(plantillaID) == "" {
		return Solicitud{}, fmt.Errorf("%w: plantilla id is required", ErrInvalidInput)
	}
	if datos == nil {
		datos = map[string]any{}
	}
	encoded, err := json.Marshal(datos)
	if err != nil {
		return Solicitud{}, fmt.Errorf("store: encode datos: %w", err)
	}

	now := s.now()
	record := solicitudRecord{
		PlantillaID: strings.TrimSpace(plantillaID),
		EmpresaID:   strings.TrimSpace(empresaID),
		Estado:      string(StatusPending),
		Datos:       string(encoded),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return Solicitud{}, translate("create solicitud", err)
	}
	s.logger.WithFields(logrus.Fields{
		"solicitud": record.ID,
		"plantilla": record.PlantillaID,
	}).Info("store: solicitud created")
	return record.toSolicitud()
}

// GetSolicitud loads a solicitud by id.
func (s *Store) GetSolicitud(ctx context.Context, id string) (Solicitud, error) {
	var record solicitudRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		return Solicitud{}, translate("get solicitud", err)
	}
	return record.toSolicitud()
}

// SolicitudFilter narrows ListSolicitudes. Zero fields match everything.
type SolicitudFilter struct {
	PlantillaID string
	EmpresaID   string
	Estado      Status
	Limit       int
}

// ListSolicitudes returns solicitudes newest first.
func (s *Store) ListSolicitudes(ctx context.Context, filter SolicitudFilter) ([]Solicitud, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if filter.PlantillaID != "" {
		query = query.Where("plantilla_id = ?", filter.PlantillaID)
	}
	if filter.EmpresaID != "" {
		query = query.Where("empresa_id = ?", filter.EmpresaID)
	}
	if filter.Estado != "" {
		query = query.Where("estado = ?", string(filter.Estado))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []solicitudRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, translate("list solicitudes", err)
	}
	out := make([]Solicitud, 0, len(records))
	for _, record := range records {
		solicitud, err := record.toSolicitud()
		if err != nil {
			return nil, err
		}
		out = append(out, solicitud)
	}
	return out, nil
}

// TransitionSolicitud moves a solicitud to status, recording observaciones
// when given. The read and the update share one transaction.
func (s *Store) TransitionSolicitud(ctx context.Context, id string, to Status, observaciones string) (Solicitud, error) {
	var updated solicitudRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, "id = ?", strings.TrimSpace(id)).Error; err != nil {
			return err
		}
		from := Status(updated.Estado)
		if !CanTransition(from, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
		}
		changes := map[string]any{
			"estado":     string(to),
			"updated_at": s.now(),
		}
		if strings.TrimSpace(observaciones) != "" {
			changes["observaciones"] = strings.TrimSpace(observaciones)
		}
		if err := tx.Model(&updated).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&updated, "id = ?", updated.ID).Error
	})
	if err != nil {
		return Solicitud{}, translate("transition solicitud", err)
	}
	s.logger.WithFields(logrus.Fields{
		"solicitud": updated.ID,
		"estado":    updated.Estado,
	}).Info("store: solicitud transitioned")
	return updated.toSolicitud()
}
