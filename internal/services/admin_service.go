package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

var (
	ErrEmailTaken  = errors.New("admin with this email already exists")
	ErrSelfDelete  = errors.New("cannot delete yourself")
	ErrInvalidRole = errors.New("role must be superuser, editor or viewer")
)

type AdminService struct {
	admins store.Collection[models.Admin]
	trail  *audit.Trail
}

func NewAdminService(s store.Store, trail *audit.Trail) *AdminService {
	return &AdminService{
		admins: store.NewCollection[models.Admin](s, store.KeyAdmins),
		trail:  trail,
	}
}

func (s *AdminService) List(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := s.admins.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, dto.AdminResponse{ID: a.ID, Email: a.Email, Role: a.Role})
	}
	return out, nil
}

// Create adds a new admin. Email uniqueness is enforced here and only here;
// updates do not re-check it.
func (s *AdminService) Create(ctx context.Context, actor string, req dto.CreateAdminRequest) (dto.AdminResponse, error) {
	if req.Email == "" || req.Password == "" {
		return dto.AdminResponse{}, ErrMissingFields
	}
	if !models.ValidRole(req.Role) {
		return dto.AdminResponse{}, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AdminResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := models.Admin{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	err = s.admins.Mutate(ctx, func(admins []models.Admin) ([]models.Admin, error) {
		for _, a := range admins {
			if a.Email == req.Email {
				return nil, ErrEmailTaken
			}
		}
		return append(admins, admin), nil
	})
	if err != nil {
		return dto.AdminResponse{}, err
	}
	if err := s.trail.RecordAction(ctx, actor, fmt.Sprintf("Admin Created: %s with role %s", admin.Email, admin.Role)); err != nil {
		return dto.AdminResponse{}, err
	}
	return dto.AdminResponse{ID: admin.ID, Email: admin.Email, Role: admin.Role}, nil
}

func (s *AdminService) Update(ctx context.Context, actor, id string, req dto.UpdateAdminRequest) error {
	if req.Role != "" && !models.ValidRole(req.Role) {
		return ErrInvalidRole
	}
	var email string
	err := s.admins.Mutate(ctx, func(admins []models.Admin) ([]models.Admin, error) {
		for i := range admins {
			if admins[i].ID != id {
				continue
			}
			if req.Email != "" {
				admins[i].Email = req.Email
			}
			if req.Role != "" {
				admins[i].Role = req.Role
			}
			if req.Password != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
				if err != nil {
					return nil, fmt.Errorf("failed to hash password: %w", err)
				}
				admins[i].PasswordHash = string(hash)
			}
			email = admins[i].Email
			return admins, nil
		}
		return nil, ErrAdminNotFound
	})
	if err != nil {
		return err
	}
	return s.trail.RecordAction(ctx, actor, "Admin Updated: "+email)
}

// Delete removes an admin by id. Admins cannot delete themselves.
func (s *AdminService) Delete(ctx context.Context, actor, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}
	var email string
	err := s.admins.Mutate(ctx, func(admins []models.Admin) ([]models.Admin, error) {
		kept := admins[:0:0]
		for _, a := range admins {
			if a.ID == id {
				email = a.Email
				continue
			}
			kept = append(kept, a)
		}
		if len(kept) == len(admins) {
			return nil, ErrAdminNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	return s.trail.RecordAction(ctx, actor, "Admin Deleted: "+email)
}
