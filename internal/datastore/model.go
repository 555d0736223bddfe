// Package datastore persists fitted spectrum decompositions, either as
// per-plate JSON files or as rows in a SQLite database.
package datastore

import (
	"time"

	"github.com/pfagrelius/skyfit-go/internal/fitter"
)

// FitRecord is one fitted spectrum as stored in the database. Component
// arrays are serialized as JSON columns, keeping the schema flat while
// preserving full per-sample output.
type FitRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Plate     int       `gorm:"index:idx_plate_specno,unique"`
	SpecNo    int       `gorm:"index:idx_plate_specno,unique"`
	Camera    string    `gorm:"index"`
	Wave      []float64 `gorm:"serializer:json"`
	Lines     []float64 `gorm:"serializer:json"`
	Continuum []float64 `gorm:"serializer:json"`
	Residual  []float64 `gorm:"serializer:json"`
	R2         float64
	FitSeconds float64
	CreatedAt  time.Time
}

func toFitRecord(r *fitter.Record) FitRecord {
	return FitRecord{
		Plate:      r.Plate,
		SpecNo:     r.SpecNo,
		Camera:     r.Camera,
		Wave:       r.Wave,
		Lines:      r.Lines,
		Continuum:  r.Continuum,
		Residual:   r.Residual,
		R2:         r.R2,
		FitSeconds: r.FitSeconds,
	}
}

func fromFitRecord(r *FitRecord) fitter.Record {
	return fitter.Record{
		Plate:      r.Plate,
		SpecNo:     r.SpecNo,
		Camera:     r.Camera,
		Wave:       r.Wave,
		Lines:      r.Lines,
		Continuum:  r.Continuum,
		Residual:   r.Residual,
		R2:         r.R2,
		FitSeconds: r.FitSeconds,
	}
}
