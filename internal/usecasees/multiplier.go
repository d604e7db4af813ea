package usecasees

import (
	"math"
	"strings"
	"sync"

	"dascopy/internal/repository/mongo"
	mongoStructs "dascopy/internal/repository/mongo/structs"

	"github.com/sirupsen/logrus"
)

type multiplierKey struct {
	followerID string
	symbol     string
}

// multiplierUseCase resolves the effective quantity multiplier for a
// follower and symbol. A symbol-level user override always wins over the
// follower base multiplier. There is no inferred path; overrides are set
// only by explicit user action (directly or through reconciliation).
type multiplierUseCase struct {
	multiplierRepo mongo.MultiplierRepo

	mu        sync.RWMutex
	base      map[string]float64
	overrides map[multiplierKey]float64
	sources   map[multiplierKey]string

	logger *logrus.Logger
}

func NewMultiplierUseCase(
	multiplierRepo mongo.MultiplierRepo,
	logger *logrus.Logger,
) *multiplierUseCase {
	return &multiplierUseCase{
		multiplierRepo: multiplierRepo,
		base:           map[string]float64{},
		overrides:      map[multiplierKey]float64{},
		sources:        map[multiplierKey]string{},
		logger:         logger,
	}
}

func (u *multiplierUseCase) Load() error {
	entries, err := u.multiplierRepo.LoadAll()
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.overrides = map[multiplierKey]float64{}
	u.sources = map[multiplierKey]string{}

	for _, entry := range entries {
		key := multiplierKey{entry.FollowerID, strings.ToUpper(entry.Symbol)}
		u.overrides[key] = entry.Multiplier
		u.sources[key] = entry.Source
	}

	u.logger.Infof("loaded %d symbol multiplier overrides", len(entries))

	return nil
}

func (u *multiplierUseCase) SetBase(followerID string, multiplier float64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.base[followerID] = multiplier
}

func (u *multiplierUseCase) Effective(followerID, symbol string) float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if mult, ok := u.overrides[multiplierKey{followerID, strings.ToUpper(symbol)}]; ok {
		return mult
	}

	if base, ok := u.base[followerID]; ok {
		return base
	}

	return 1.0
}

func (u *multiplierUseCase) Source(followerID, symbol string) string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if source, ok := u.sources[multiplierKey{followerID, strings.ToUpper(symbol)}]; ok {
		return source
	}

	return mongoStructs.SourceBase
}

// Scale converts a master quantity into a follower quantity. Non-zero
// master quantities never scale below one share.
func (u *multiplierUseCase) Scale(quantity int64, followerID, symbol string) int64 {
	if quantity == 0 {
		return 0
	}

	scaled := int64(math.Round(float64(quantity) * u.Effective(followerID, symbol)))
	if scaled < 1 {
		scaled = 1
	}

	return scaled
}

func (u *multiplierUseCase) SetOverride(followerID, symbol string, multiplier float64) error {
	symbol = strings.ToUpper(symbol)

	if err := u.multiplierRepo.Upsert(followerID, symbol, multiplier, mongoStructs.SourceUserOverride); err != nil {
		return err
	}

	u.mu.Lock()
	key := multiplierKey{followerID, symbol}
	u.overrides[key] = multiplier
	u.sources[key] = mongoStructs.SourceUserOverride
	u.mu.Unlock()

	u.logger.Infof("set multiplier override %s/%s: %.4f", followerID, symbol, multiplier)

	return nil
}

func (u *multiplierUseCase) ClearOverride(followerID, symbol string) error {
	symbol = strings.ToUpper(symbol)

	if err := u.multiplierRepo.Delete(followerID, symbol); err != nil {
		return err
	}

	u.mu.Lock()
	key := multiplierKey{followerID, symbol}
	delete(u.overrides, key)
	delete(u.sources, key)
	u.mu.Unlock()

	return nil
}

func (u *multiplierUseCase) ForFollower(followerID string) map[string]float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := map[string]float64{}
	for key, mult := range u.overrides {
		if key.followerID == followerID {
			out[key.symbol] = mult
		}
	}

	return out
}
