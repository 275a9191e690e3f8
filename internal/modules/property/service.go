package property

import (
	"context"
	"errors"

	"staybook/internal/domain"
	"staybook/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new listing owned by the calling host. Customers cannot
// create listings; admins may create on their own behalf.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreatePropertyRequest) (*domain.Property, error) {
	if actor.Role == domain.RoleCustomer {
		return nil, ErrForbidden
	}

	p := &domain.Property{
		HostID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Beds:        req.Beds,
		Price:       req.Price,
		Status:      domain.PropertyAvailable,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies partial changes. Only the owning host or an admin may
// modify a listing. Host ownership never changes.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdatePropertyRequest) (*domain.Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && p.HostID != actor.ID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Beds != nil {
		p.Beds = *req.Beds
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Status != nil {
		st := domain.PropertyStatus(*req.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		p.Status = st
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a listing. Existing bookings keep their snapshot data and
// are unaffected; only new admissions stop.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && p.HostID != actor.ID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Property, int64, error) {
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	f := repository.PropertyFilter{
		HostID:   q.HostID,
		City:     q.City,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Beds:     q.Beds,
	}
	return s.repo.List(ctx, f, limit, offset)
}
