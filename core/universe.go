package core

import (
	"fmt"
	"sync"
	"time"

	"mmdrill/config"

	log "github.com/sirupsen/logrus"
)

var Config *config.Config
var Sessions map[string]*Session

var sessionsMu sync.RWMutex

func init() {
	Config = config.Default()
	Sessions = make(map[string]*Session)
}

// RegisterSession deals the first board of a new session and adds it to the universe.
func RegisterSession(spot *float64, seed *int64) (*Session, error) {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	session := NewSession(Config, s)
	if err := session.Deal(spot); err != nil {
		return nil, fmt.Errorf("fail to deal first board: %w", err)
	}
	sessionsMu.Lock()
	Sessions[session.Id] = session
	sessionsMu.Unlock()
	return session, nil
}

func GetSession(id string) (*Session, bool) {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	session, exists := Sessions[id]
	return session, exists
}

func RemoveSession(id string) bool {
	sessionsMu.Lock()
	session, exists := Sessions[id]
	delete(Sessions, id)
	sessionsMu.Unlock()
	if exists {
		session.Close()
	}
	return exists
}

// EvictIdle closes every session untouched since before cutoff.
func EvictIdle(cutoff time.Time) int {
	sessionsMu.RLock()
	var idle []string
	for id, session := range Sessions {
		if session.IdleSince().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	sessionsMu.RUnlock()

	for _, id := range idle {
		RemoveSession(id)
	}
	if len(idle) > 0 {
		log.Infof("evicted %d idle sessions", len(idle))
	}
	return len(idle)
}

func SessionCount() int {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	return len(Sessions)
}
