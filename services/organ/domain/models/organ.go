package models

import (
	"time"

	"github.com/google/uuid"
)

// ChurchPosition is where inside a location an organ is installed.
type ChurchPosition string

const (
	PositionChurchHall   ChurchPosition = "church_hall"
	PositionMusicRoom    ChurchPosition = "music_room"
	PositionChildrenArea ChurchPosition = "children_area"
	PositionOther        ChurchPosition = "other"
)

// Valid reports whether p is one of the known positions.
func (p ChurchPosition) Valid() bool {
	switch p {
	case PositionChurchHall, PositionMusicRoom, PositionChildrenArea, PositionOther:
		return true
	}
	return false
}

// Organ is a tracked instrument. ID and CreatedAt never change after creation.
type Organ struct {
	ID              string         `json:"id"`
	LocationID      string         `json:"location_id"`
	ChurchLocation  ChurchPosition `json:"church_location"`
	Model           string         `json:"model"`
	SerialNumber    string         `json:"serial_number"`
	PatrimonyNumber string         `json:"patrimony_number"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewOrgan constructs an Organ with a generated ID and the given creation time.
func NewOrgan(locationID string, position ChurchPosition, model, serial, patrimony string, now time.Time) *Organ {
	return &Organ{
		ID:              uuid.NewString(),
		LocationID:      locationID,
		ChurchLocation:  position,
		Model:           model,
		SerialNumber:    serial,
		PatrimonyNumber: patrimony,
		CreatedAt:       now.UTC(),
	}
}
