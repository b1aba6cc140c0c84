package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// Calendar dates cross the driver boundary as midnight-UTC time.Time
// values; the DATE column keeps only the calendar components.

func dateToDB(d domain.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func dateFromDB(t time.Time) domain.Date {
	return domain.NewDate(t.Year(), t.Month(), t.Day())
}

func optionalDateToDB(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := dateToDB(*d)
	return &t
}

func optionalDateFromDB(t *time.Time) *domain.Date {
	if t == nil {
		return nil
	}
	d := dateFromDB(*t)
	return &d
}

// Frequency rules are stored as a JSONB array of canonical tags.

func frequenciesToDB(rules []domain.FrequencyRule) ([]byte, error) {
	tags, err := json.Marshal(domain.FrequencyTags(rules))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frequencies: %w", err)
	}
	return tags, nil
}

func frequenciesFromDB(raw []byte) ([]domain.FrequencyRule, error) {
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frequencies: %w", err)
	}
	// Stored tags are canonical; anything unrecognized (from an older
	// schema version) is dropped rather than failing the read.
	rules, _ := domain.ParseFrequencies(tags)
	return rules, nil
}
