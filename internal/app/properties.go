package app

import (
	"context"
	"fmt"
	"time"

	"homelyhub/internal/domain"
)

// PropertyService owns listing search and the property CRUD paths.
// Single-property reads go through the cache; every write path invalidates.
type PropertyService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewPropertyService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{repo: r, cache: c, cacheTTL: ttl, now: time.Now}
}

func propertyKey(id string) string { return fmt.Sprintf("property:%s", id) }

func requireActor(a domain.Actor) error {
	if !a.Authenticated() {
		return domain.ErrAuthRequired
	}
	return nil
}

func requireID(id, what string) error {
	if !domain.ValidID(id) {
		return fmt.Errorf("%w: invalid %s id", domain.ErrValidation, what)
	}
	return nil
}

func (s *PropertyService) Search(ctx context.Context, q domain.SearchQuery) (domain.PropertyPage, error) {
	items, total, err := s.repo.ListProperties(ctx, q)
	if err != nil {
		return domain.PropertyPage{}, err
	}
	return domain.PropertyPage{
		Items:      items,
		Count:      len(items),
		Total:      total,
		Pagination: Paginate(q, total),
	}, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (domain.Property, error) {
	if err := requireID(id, "property"); err != nil {
		return domain.Property{}, err
	}
	key := propertyKey(id)
	var p domain.Property
	if ok, _ := s.cache.Get(ctx, key, &p); ok {
		return p, nil
	}
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Set(ctx, key, p, s.cacheTTL)
	return p, nil
}

// Create makes the actor the host of record. Any authenticated actor may
// list a property.
func (s *PropertyService) Create(ctx context.Context, actor domain.Actor, p domain.Property) (domain.Property, error) {
	if err := requireActor(actor); err != nil {
		return domain.Property{}, err
	}
	p.Host = actor.ID
	p.CreatedAt = s.now().UTC()
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}
	id, err := s.repo.CreateProperty(ctx, p)
	if err != nil {
		return domain.Property{}, err
	}
	p.ID = id
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, actor domain.Actor, id string, upd domain.PropertyUpdate) (domain.Property, error) {
	if err := requireActor(actor); err != nil {
		return domain.Property{}, err
	}
	if err := requireID(id, "property"); err != nil {
		return domain.Property{}, err
	}
	// missing resource wins over missing entitlement
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if !actor.CanModify(p.Host) {
		return domain.Property{}, fmt.Errorf("%w: not authorized to update this property", domain.ErrForbidden)
	}
	upd.Apply(&p)
	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}
	if err := s.repo.UpdateProperty(ctx, p); err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Del(ctx, propertyKey(id))
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := requireID(id, "property"); err != nil {
		return err
	}
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(p.Host) {
		return fmt.Errorf("%w: not authorized to delete this property", domain.ErrForbidden)
	}
	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, propertyKey(id))
	return nil
}

// HostProperties lists the actor's own listings, newest first.
func (s *PropertyService) HostProperties(ctx context.Context, actor domain.Actor) ([]domain.Property, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.repo.ListByHost(ctx, actor.ID)
}
