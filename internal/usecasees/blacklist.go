package usecasees

import (
	"strings"
	"sync"

	"dascopy/internal/repository/mongo"

	"github.com/sirupsen/logrus"
)

type blacklistKey struct {
	followerID string
	symbol     string
}

// blacklistUseCase is the per-(follower, symbol) exclusion set. A
// blacklisted symbol is never replicated to that follower. The reason is
// informational only.
type blacklistUseCase struct {
	blacklistRepo mongo.BlacklistRepo

	mu      sync.RWMutex
	entries map[blacklistKey]string

	logger *logrus.Logger
}

func NewBlacklistUseCase(
	blacklistRepo mongo.BlacklistRepo,
	logger *logrus.Logger,
) *blacklistUseCase {
	return &blacklistUseCase{
		blacklistRepo: blacklistRepo,
		entries:       map[blacklistKey]string{},
		logger:        logger,
	}
}

func (u *blacklistUseCase) Load() error {
	entries, err := u.blacklistRepo.LoadAll()
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.entries = map[blacklistKey]string{}
	for _, entry := range entries {
		u.entries[blacklistKey{entry.FollowerID, strings.ToUpper(entry.Symbol)}] = entry.Reason
	}

	u.logger.Infof("loaded %d blacklist entries", len(entries))

	return nil
}

func (u *blacklistUseCase) IsBlacklisted(followerID, symbol string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()

	_, ok := u.entries[blacklistKey{followerID, strings.ToUpper(symbol)}]

	return ok
}

// Add inserts a blacklist entry. Returns false if the pair was already
// blacklisted.
func (u *blacklistUseCase) Add(followerID, symbol, reason string) (bool, error) {
	symbol = strings.ToUpper(symbol)
	key := blacklistKey{followerID, symbol}

	u.mu.RLock()
	_, exists := u.entries[key]
	u.mu.RUnlock()

	if exists {
		return false, nil
	}

	if err := u.blacklistRepo.Insert(followerID, symbol, reason); err != nil {
		return false, err
	}

	u.mu.Lock()
	u.entries[key] = reason
	u.mu.Unlock()

	u.logger.Infof("blacklisted %s on follower %s (reason: %s)", symbol, followerID, reason)

	return true, nil
}

// Remove deletes a blacklist entry. Returns false if the pair was not
// blacklisted.
func (u *blacklistUseCase) Remove(followerID, symbol string) (bool, error) {
	symbol = strings.ToUpper(symbol)
	key := blacklistKey{followerID, symbol}

	u.mu.RLock()
	_, exists := u.entries[key]
	u.mu.RUnlock()

	if !exists {
		return false, nil
	}

	if err := u.blacklistRepo.Delete(followerID, symbol); err != nil {
		return false, err
	}

	u.mu.Lock()
	delete(u.entries, key)
	u.mu.Unlock()

	return true, nil
}

func (u *blacklistUseCase) ForFollower(followerID string) map[string]string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := map[string]string{}
	for key, reason := range u.entries {
		if key.followerID == followerID {
			out[key.symbol] = reason
		}
	}

	return out
}
