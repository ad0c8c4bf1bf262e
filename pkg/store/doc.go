// Package store persists plantillas, solicitudes and catalog rows with gorm.
// The default driver is SQLite; any gorm dialector can be supplied through
// New.
package store
