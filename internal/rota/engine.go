// Package rota holds the duty rotation logic. The roster is a single ordered
// list of residents; whoever sits at position 0 is on duty.
package rota

import (
	"context"
	"errors"

	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

var (
	ErrNoResidents        = errors.New("no residents in the roster")
	ErrNotEnoughResidents = errors.New("not enough residents to rotate")
	ErrResidentNotFound   = errors.New("resident not found")
)

// Placeholder is returned by DutyView when a duty slot is unfilled.
const Placeholder = "N/A"

type Engine struct {
	roster store.Collection[models.Resident]
}

func NewEngine(s store.Store) *Engine {
	return &Engine{roster: store.NewCollection[models.Resident](s, store.KeyFlats)}
}

// Advance moves the resident on duty to the back of the roster and returns
// their name. Rosters with fewer than two residents are left untouched.
func (e *Engine) Advance(ctx context.Context) (string, error) {
	var moved string
	err := e.roster.Mutate(ctx, func(flats []models.Resident) ([]models.Resident, error) {
		if len(flats) < 2 {
			return nil, ErrNotEnoughResidents
		}
		head := flats[0]
		moved = head.Name
		next := make([]models.Resident, 0, len(flats))
		next = append(next, flats[1:]...)
		next = append(next, head)
		return next, nil
	})
	if err != nil {
		return "", err
	}
	return moved, nil
}

// Skip rotates like Advance but reports the name of the resident whose turn
// was skipped, for the action log.
func (e *Engine) Skip(ctx context.Context) (string, error) {
	var skipped string
	err := e.roster.Mutate(ctx, func(flats []models.Resident) ([]models.Resident, error) {
		if len(flats) == 0 {
			return nil, ErrNoResidents
		}
		if len(flats) == 1 {
			return nil, ErrNotEnoughResidents
		}
		head := flats[0]
		skipped = head.Name
		next := make([]models.Resident, 0, len(flats))
		next = append(next, flats[1:]...)
		next = append(next, head)
		return next, nil
	})
	if err != nil {
		return "", err
	}
	return skipped, nil
}

// SetCurrent moves the resident with the given id to the front of the roster,
// keeping everyone else in their existing relative order.
func (e *Engine) SetCurrent(ctx context.Context, residentID string) (string, error) {
	var name string
	err := e.roster.Mutate(ctx, func(flats []models.Resident) ([]models.Resident, error) {
		idx := -1
		for i, r := range flats {
			if r.ID == residentID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrResidentNotFound
		}
		name = flats[idx].Name
		next := make([]models.Resident, 0, len(flats))
		next = append(next, flats[idx])
		next = append(next, flats[:idx]...)
		next = append(next, flats[idx+1:]...)
		return next, nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// DutyView reports who is on duty now and who is next, with "N/A" placeholders
// for unfilled slots.
func (e *Engine) DutyView(ctx context.Context) (current, next string, err error) {
	flats, err := e.roster.Load(ctx)
	if err != nil {
		return "", "", err
	}
	current, next = Placeholder, Placeholder
	if len(flats) > 0 {
		current = flats[0].Name
	}
	if len(flats) > 1 {
		next = flats[1].Name
	}
	return current, next, nil
}

// OnDuty returns the resident at the head of the roster.
func (e *Engine) OnDuty(ctx context.Context) (models.Resident, error) {
	flats, err := e.roster.Load(ctx)
	if err != nil {
		return models.Resident{}, err
	}
	if len(flats) == 0 {
		return models.Resident{}, ErrNoResidents
	}
	return flats[0], nil
}
