package service

import (
	"sync"
	"time"

	"github.com/Netcracker/qubership-web-audit-service/session"
	"github.com/google/uuid"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	log "github.com/sirupsen/logrus"
)

// SessionService keeps one session per browser. Sessions expire after ttl of inactivity
// and the least recently used ones are evicted above capacity. Every lookup restarts the ttl.
type SessionService interface {
	GetOrCreate(id string) *session.Session
	Get(id string) (*session.Session, bool)
	Delete(id string)
	Count() int
}

func NewSessionService(analyzer session.Analyzer, statusInterval time.Duration, ttl time.Duration, capacity int) SessionService {
	cache := libcache.LRU.New(capacity)
	cache.SetTTL(ttl)
	cache.RegisterOnExpired(func(key, value interface{}) {
		closeSession(value)
		cache.Delete(key)
	})
	cache.RegisterOnEvicted(func(key, value interface{}) {
		closeSession(value)
	})

	return &sessionServiceImpl{
		cache:          cache,
		analyzer:       analyzer,
		statusInterval: statusInterval,
	}
}

type sessionServiceImpl struct {
	mutex          sync.Mutex
	cache          libcache.Cache
	analyzer       session.Analyzer
	statusInterval time.Duration
}

// GetOrCreate returns the session for id, creating a new one with a fresh id when id is empty or unknown.
func (s *sessionServiceImpl) GetOrCreate(id string) *session.Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id != "" {
		if sess, ok := s.touch(id); ok {
			return sess
		}
	}
	newId := uuid.New().String()
	sess := session.NewSession(newId, s.analyzer, s.statusInterval)
	s.cache.Store(newId, sess)
	log.Debugf("Session %s created", newId)
	return sess
}

func (s *sessionServiceImpl) Get(id string) (*session.Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.touch(id)
}

func (s *sessionServiceImpl) Delete(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if sess, ok := s.load(id); ok {
		sess.Close()
	}
	s.cache.Delete(id)
}

func (s *sessionServiceImpl) Count() int {
	return s.cache.Len()
}

func (s *sessionServiceImpl) load(id string) (*session.Session, bool) {
	value, ok := s.cache.Load(id)
	if !ok {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}

// touch loads the session and stores it again, which replaces the expiry timer without firing eviction.
func (s *sessionServiceImpl) touch(id string) (*session.Session, bool) {
	sess, ok := s.load(id)
	if ok {
		s.cache.Store(id, sess)
	}
	return sess, ok
}

func closeSession(value interface{}) {
	if sess, ok := value.(*session.Session); ok {
		sess.Close()
	}
}
