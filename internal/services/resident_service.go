package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

var (
	ErrResidentNotFound = errors.New("resident not found")
	ErrMissingFields    = errors.New("missing required fields")
)

type ResidentService struct {
	roster store.Collection[models.Resident]
	trail  *audit.Trail
}

func NewResidentService(s store.Store, trail *audit.Trail) *ResidentService {
	return &ResidentService{
		roster: store.NewCollection[models.Resident](s, store.KeyFlats),
		trail:  trail,
	}
}

func (s *ResidentService) List(ctx context.Context) ([]models.Resident, error) {
	return s.roster.Load(ctx)
}

// Add appends a new resident at the tail of the roster.
func (s *ResidentService) Add(ctx context.Context, actor string, req dto.CreateResidentRequest) (models.Resident, error) {
	if req.Name == "" || req.FlatNumber == "" {
		return models.Resident{}, ErrMissingFields
	}
	resident := models.Resident{
		ID:         uuid.NewString(),
		Name:       req.Name,
		FlatNumber: req.FlatNumber,
		Contact:    req.Contact,
		Notes:      req.Notes,
	}
	err := s.roster.Mutate(ctx, func(flats []models.Resident) ([]models.Resident, error) {
		return append(flats, resident), nil
	})
	if err != nil {
		return models.Resident{}, err
	}
	if err := s.trail.RecordAction(ctx, actor, "Resident Added: "+resident.Name); err != nil {
		return models.Resident{}, err
	}
	return resident, nil
}

// Update merges non-nil fields into the resident; position is untouched.
func (s *ResidentService) Update(ctx context.Context, actor, id string, req dto.UpdateResidentRequest) error {
	var name string
	err := s.roster.Mutate(ctx, func(flats []models.Resident) ([]models.Resident, error) {
		for i := range flats {
			if flats[i].ID != id {
				continue
			}
			if req.Name != nil {
				flats[i].Name = *req.Name
			}
			if req.FlatNumber != nil {
				flats[i].FlatNumber = *req.FlatNumber
			}
			if req.Contact != nil {
				flats[i].Contact = *req.Contact
			}
			if req.Notes != nil {
				flats[i].Notes = *req.Notes
			}
			name = flats[i].Name
			return flats, nil
		}
		return nil, ErrResidentNotFound
	})
	if err != nil {
		return err
	}
	return s.trail.RecordAction(ctx, actor, "Resident Updated: "+name)
}

func (s *ResidentService) Delete(ctx context.Context, actor, id string) error {
	var name string
	err := s.roster.Mutate(ctx, func(flats []models.Resident) ([]models.Resident, error) {
		kept := flats[:0:0]
		for _, r := range flats {
			if r.ID == id {
				name = r.Name
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == len(flats) {
			return nil, ErrResidentNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	return s.trail.RecordAction(ctx, actor, "Resident Deleted: "+name)
}

// Reorder replaces the whole roster with the given ordering. The incoming
// roster must keep ids unique.
func (s *ResidentService) Reorder(ctx context.Context, actor string, residents []models.Resident) error {
	seen := make(map[string]struct{}, len(residents))
	for _, r := range residents {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate resident id %s", ErrMissingFields, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	if err := s.roster.Replace(ctx, residents); err != nil {
		return err
	}
	return s.trail.RecordAction(ctx, actor, "Resident duty order updated")
}
