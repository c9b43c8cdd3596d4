// Package seed inserts the sample class schedule on startup.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/model"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/tz"
	"go.uber.org/zap"
)

// ClassWriter is the part of the class store seeding needs.
type ClassWriter interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, c *model.Class) error
}

type sample struct {
	name       string
	instructor string
	hour       int
	slots      int
}

var samples = []sample{
	{"Yoga", "Anjali", 6, 10},
	{"Zumba", "Ravi", 8, 8},
	{"HIIT", "Suresh", 18, 5},
}

// SampleClasses returns the sample schedule for the calendar day of now in
// zone, with start times in UTC.
func SampleClasses(now time.Time, zone string) ([]model.Class, error) {
	classes := make([]model.Class, 0, len(samples))
	for _, s := range samples {
		start, err := tz.AtLocalClock(now, zone, s.hour)
		if err != nil {
			return nil, err
		}
		classes = append(classes, model.Class{
			Name:       s.name,
			Instructor: s.instructor,
			StartsAt:   start,
			Slots:      s.slots,
		})
	}
	return classes, nil
}

// Run inserts the sample classes unless the store already has classes.
// It returns the number of classes inserted.
func Run(ctx context.Context, w ClassWriter, now time.Time, zone string, log *zap.Logger) (int, error) {
	n, err := w.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	if n > 0 {
		log.Info("classes already present, skipping seed", zap.Int("count", n))
		return 0, nil
	}

	classes, err := SampleClasses(now, zone)
	if err != nil {
		return 0, err
	}
	for i := range classes {
		if err := w.Create(ctx, &classes[i]); err != nil {
			return i, fmt.Errorf("seed class %s: %w", classes[i].Name, err)
		}
		log.Info("seeded class",
			zap.Int64("id", classes[i].ID),
			zap.String("name", classes[i].Name),
			zap.String("starts_at_utc", tz.FormatUTC(classes[i].StartsAt)),
			zap.Int("slots", classes[i].Slots),
		)
	}
	return len(classes), nil
}
