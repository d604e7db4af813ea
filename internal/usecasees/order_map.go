package usecasees

import (
	"sync"

	"dascopy/internal/repository/postgres"
	"dascopy/models"

	"github.com/sirupsen/logrus"
)

// orderMapUseCase is the in-memory order map with write-through to
// postgres. Entries are superseded, never deleted, so cancel/replace
// events stay resolvable across a restart.
type orderMapUseCase struct {
	orderMapRepo postgres.OrderMapRepo

	mu       sync.RWMutex
	byMaster map[int64]map[string]*models.OrderMapping

	logger *logrus.Logger
}

func NewOrderMapUseCase(
	orderMapRepo postgres.OrderMapRepo,
	logger *logrus.Logger,
) *orderMapUseCase {
	return &orderMapUseCase{
		orderMapRepo: orderMapRepo,
		byMaster:     map[int64]map[string]*models.OrderMapping{},
		logger:       logger,
	}
}

// Load restores live mappings from the database after a restart.
func (u *orderMapUseCase) Load() error {
	mappings, err := u.orderMapRepo.GetLive()
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.byMaster = map[int64]map[string]*models.OrderMapping{}
	for i := range mappings {
		m := mappings[i]
		if u.byMaster[m.MasterOrderID] == nil {
			u.byMaster[m.MasterOrderID] = map[string]*models.OrderMapping{}
		}
		u.byMaster[m.MasterOrderID][m.FollowerID] = &m
	}

	u.logger.Infof("restored %d live order mappings", len(mappings))

	return nil
}

func (u *orderMapUseCase) Record(m *models.OrderMapping) error {
	if err := u.orderMapRepo.Store(m); err != nil {
		return err
	}

	u.mu.Lock()
	if u.byMaster[m.MasterOrderID] == nil {
		u.byMaster[m.MasterOrderID] = map[string]*models.OrderMapping{}
	}
	u.byMaster[m.MasterOrderID][m.FollowerID] = m
	u.mu.Unlock()

	return nil
}

func (u *orderMapUseCase) Get(masterOrderID int64, followerID string) *models.OrderMapping {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if followers, ok := u.byMaster[masterOrderID]; ok {
		return followers[followerID]
	}

	return nil
}

// ForMasterOrder returns the follower mappings for one master order.
func (u *orderMapUseCase) ForMasterOrder(masterOrderID int64) map[string]*models.OrderMapping {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := map[string]*models.OrderMapping{}
	for fid, m := range u.byMaster[masterOrderID] {
		out[fid] = m
	}

	return out
}

func (u *orderMapUseCase) SetStatus(m *models.OrderMapping, status string) error {
	u.mu.Lock()
	m.Status = status
	u.mu.Unlock()

	return u.orderMapRepo.SetStatus(m.ID, status)
}

// SetFollowerOrderID updates a mapping in place after a replace.
func (u *orderMapUseCase) SetFollowerOrderID(m *models.OrderMapping, followerOrderID int64) error {
	u.mu.Lock()
	m.FollowerOrderID = followerOrderID
	u.mu.Unlock()

	return u.orderMapRepo.SetFollowerOrderID(m.ID, followerOrderID)
}

func (u *orderMapUseCase) Snapshot() []models.OrderMapping {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var out []models.OrderMapping
	for _, followers := range u.byMaster {
		for _, m := range followers {
			out = append(out, *m)
		}
	}

	return out
}

func (u *orderMapUseCase) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.byMaster = map[int64]map[string]*models.OrderMapping{}
}
