// Package memory holds process-local repositories. State is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"mergingtonactivities/internal/domain"
)

type activityRepository struct {
	mu    sync.RWMutex
	order []string
	byKey map[string]*domain.Activity
}

// NewActivityRepository returns an ActivityRepository seeded with copies of
// the given activities. Activity names must be unique.
func NewActivityRepository(seed domain.ActivityList) (domain.ActivityRepository, error) {
	r := &activityRepository{
		order: make([]string, 0, len(seed)),
		byKey: make(map[string]*domain.Activity, len(seed)),
	}
	for _, a := range seed {
		if _, dup := r.byKey[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate activity %q", domain.ErrInvalidInput, a.Name)
		}
		r.order = append(r.order, a.Name)
		r.byKey[a.Name] = a.Clone()
	}
	return r, nil
}

func (r *activityRepository) List(ctx context.Context) (domain.ActivityList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(domain.ActivityList, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name].Clone())
	}
	return out, nil
}

func (r *activityRepository) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byKey[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *activityRepository) Update(ctx context.Context, name string, fn func(a *domain.Activity) error) (*domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byKey[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// fn works on a copy so a failed update leaves the stored record untouched.
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.Name = current.Name
	r.byKey[name] = next
	return next.Clone(), nil
}
