package memory

import (
	"time"

	"student-analyzer-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps one analysis session per logged-in user, in process memory only
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// Purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

// Get returns the user's session. A hit slides the expiry window.
func (r *SessionRepository) Get(email string) (*store.Session, bool) {
	x, found := r.cache.Get(email)
	if !found {
		return nil, false
	}
	s := x.(*store.Session)
	r.cache.Set(email, s, cache.DefaultExpiration)
	return s, true
}

// GetOrCreate returns the user's session, creating a fresh one when none exists.
func (r *SessionRepository) GetOrCreate(email string) *store.Session {
	if s, ok := r.Get(email); ok {
		return s
	}

	fresh := store.NewSession(email)
	if err := r.cache.Add(email, fresh, cache.DefaultExpiration); err != nil {
		// Another request created it first
		if s, ok := r.Get(email); ok {
			return s
		}
		r.Save(fresh)
	}
	return fresh
}

func (r *SessionRepository) Delete(email string) {
	r.cache.Delete(email)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
