package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
)

// Activity is an extracurricular offering with fixed metadata and a mutable
// participant roster. Participants are student emails in signup order.
// swagger:model Activity
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// NewActivity returns an Activity with an empty roster.
func NewActivity(name, description, schedule string, maxParticipants int) *Activity {
	return &Activity{
		Name:            name,
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
		Participants:    []string{},
	}
}

// HasParticipant reports whether email is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft is MaxParticipants minus the roster size, floored at zero.
func (a *Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// IsFull reports whether the roster has reached MaxParticipants.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// RemoveParticipant drops email from the roster keeping the order of the rest.
// It returns false if email was not present.
func (a *Activity) RemoveParticipant(email string) bool {
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return false
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return true
}

// Clone returns a deep copy so callers never share the roster slice.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return &c
}

// ActivityList is an ordered set of activities. It marshals to a JSON object
// keyed by activity name, preserving slice order.
type ActivityList []*Activity

// MarshalJSON implements json.Marshaler.
func (l ActivityList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ByName returns the activity with the given name, or nil.
func (l ActivityList) ByName(name string) *Activity {
	for _, a := range l {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// ActivityRepository defines storage operations for activities.
type ActivityRepository interface {
	List(ctx context.Context) (ActivityList, error)
	GetByName(ctx context.Context, name string) (*Activity, error)
	// Update applies fn to the stored activity atomically and returns a snapshot
	// of the result. If fn returns an error the activity is left unchanged.
	Update(ctx context.Context, name string, fn func(a *Activity) error) (*Activity, error)
}

// ActivityService defines the activity directory operations.
type ActivityService interface {
	ListActivities(ctx context.Context) (ActivityList, error)
	GetActivity(ctx context.Context, name string) (*Activity, error)
	// Signup adds email to the activity roster and returns the confirmation message.
	Signup(ctx context.Context, activityName, email string) (string, error)
	// Unregister removes email from the activity roster and returns the confirmation message.
	Unregister(ctx context.Context, activityName, email string) (string, error)
}

// RosterObserver is notified after a roster changes.
type RosterObserver interface {
	ParticipantAdded(activity string, participants int)
	ParticipantRemoved(activity string, participants int)
}

// CatalogFetcher retrieves an activity table published at a remote location.
type CatalogFetcher interface {
	Fetch(ctx context.Context, url string) (ActivityList, error)
}
