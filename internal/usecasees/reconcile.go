package usecasees

import (
	"fmt"
	"math"
	"sort"

	"dascopy/internal/controllers"
	mongoStructs "dascopy/internal/repository/mongo/structs"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/sirupsen/logrus"
)

// FollowerSession pairs a follower's stored configuration with its live
// broker session.
type FollowerSession struct {
	Follower *models.Follower
	Ctrl     controllers.BrokerCtrl
}

type sessionProvider interface {
	Master() controllers.BrokerCtrl
	FollowerSessions() []FollowerSession
}

type ReconcileStats struct {
	OverridesSet     int `json:"overridesSet"`
	OverridesCleared int `json:"overridesCleared"`
	BlacklistAdded   int `json:"blacklistAdded"`
	BlacklistRemoved int `json:"blacklistRemoved"`
}

// reconcileUseCase compares master and follower positions once per
// connect cycle and turns the user's decisions into multiplier overrides
// and blacklist entries. Applying (or skipping) reconciliation is the
// gate the engine requires before it starts replicating.
type reconcileUseCase struct {
	sessions          sessionProvider
	multiplierUseCase *multiplierUseCase
	blacklistUseCase  *blacklistUseCase

	onApplied func()

	logger *logrus.Logger
}

func NewReconcileUseCase(
	sessions sessionProvider,
	multiplierUseCase *multiplierUseCase,
	blacklistUseCase *blacklistUseCase,
	onApplied func(),
	logger *logrus.Logger,
) *reconcileUseCase {
	return &reconcileUseCase{
		sessions:          sessions,
		multiplierUseCase: multiplierUseCase,
		blacklistUseCase:  blacklistUseCase,
		onApplied:         onApplied,
		logger:            logger,
	}
}

// Compute classifies every symbol the master holds against each
// follower's book. Symbols held only by the follower are excluded: the
// master will never act on them. The computation is pure; running it
// twice without a position change yields identical entries.
func (u *reconcileUseCase) Compute() ([]structs.FollowerReconciliation, error) {
	master := u.sessions.Master()
	if master == nil || !master.IsAlive() {
		return nil, fmt.Errorf("%s", "master session is not connected")
	}

	masterPositions, err := master.GetPositions()
	if err != nil {
		return nil, err
	}

	masterBySymbol := map[string]structs.Position{}
	var symbols []string
	for _, pos := range masterPositions {
		if pos.Quantity == 0 {
			continue
		}
		masterBySymbol[pos.Symbol] = pos
		symbols = append(symbols, pos.Symbol)
	}
	sort.Strings(symbols)

	var out []structs.FollowerReconciliation

	for _, session := range u.sessions.FollowerSessions() {
		if !session.Ctrl.IsAlive() {
			continue
		}

		followerPositions, err := session.Ctrl.GetPositions()
		if err != nil {
			return nil, err
		}

		followerBySymbol := map[string]structs.Position{}
		for _, pos := range followerPositions {
			followerBySymbol[pos.Symbol] = pos
		}

		followerID := session.Follower.ID

		var entries []structs.ReconciliationEntry
		for _, symbol := range symbols {
			masterPos := masterBySymbol[symbol]
			followerPos := followerBySymbol[symbol]

			scenario, inferred := classifyPosition(masterPos.Quantity, followerPos.Quantity)

			defaultAction := structs.ReconcileActionBlacklist
			if scenario == structs.ScenarioCommonSameDir {
				defaultAction = structs.ReconcileActionUseInferred
			}

			entries = append(entries, structs.ReconciliationEntry{
				Symbol:             symbol,
				MasterQty:          masterPos.Quantity,
				FollowerQty:        followerPos.Quantity,
				Scenario:           scenario,
				InferredMultiplier: inferred,
				CurrentMultiplier:  u.multiplierUseCase.Effective(followerID, symbol),
				CurrentSource:      u.multiplierUseCase.Source(followerID, symbol),
				IsBlacklisted:      u.blacklistUseCase.IsBlacklisted(followerID, symbol),
				DefaultAction:      defaultAction,
			})
		}

		if len(entries) > 0 {
			out = append(out, structs.FollowerReconciliation{
				FollowerID:     followerID,
				BaseMultiplier: u.multiplierUseCase.Effective(followerID, ""),
				Entries:        entries,
			})
		}
	}

	return out, nil
}

func classifyPosition(masterQty, followerQty int64) (string, float64) {
	if followerQty == 0 {
		return structs.ScenarioMasterOnly, 0
	}

	sameDir := (masterQty > 0 && followerQty > 0) || (masterQty < 0 && followerQty < 0)
	if !sameDir {
		return structs.ScenarioCommonDiffDir, 0
	}

	inferred := math.Round(math.Abs(float64(followerQty))/math.Abs(float64(masterQty))*10000) / 10000

	return structs.ScenarioCommonSameDir, inferred
}

// Apply writes the user's decisions and releases the engine's
// replication gate.
func (u *reconcileUseCase) Apply(decisions []structs.FollowerDecisions) (*ReconcileStats, error) {
	stats := &ReconcileStats{}

	for _, follower := range decisions {
		for _, decision := range follower.Decisions {
			switch decision.Action {
			case structs.ReconcileActionUseInferred, structs.ReconcileActionManual:
				if decision.Multiplier <= 0 {
					return nil, fmt.Errorf("multiplier required for action %s on %s", decision.Action, decision.Symbol)
				}
				if err := u.multiplierUseCase.SetOverride(follower.FollowerID, decision.Symbol, decision.Multiplier); err != nil {
					return nil, err
				}
				stats.OverridesSet++
			case structs.ReconcileActionUseDefault:
				if err := u.multiplierUseCase.ClearOverride(follower.FollowerID, decision.Symbol); err != nil {
					return nil, err
				}
				stats.OverridesCleared++
			}

			if decision.Blacklist {
				added, err := u.blacklistUseCase.Add(follower.FollowerID, decision.Symbol, mongoStructs.ReasonReconciliation)
				if err != nil {
					return nil, err
				}
				if added {
					stats.BlacklistAdded++
				}
			} else {
				removed, err := u.blacklistUseCase.Remove(follower.FollowerID, decision.Symbol)
				if err != nil {
					return nil, err
				}
				if removed {
					stats.BlacklistRemoved++
				}
			}
		}
	}

	u.logger.Infof("reconciliation applied: %+v", stats)

	if u.onApplied != nil {
		u.onApplied()
	}

	return stats, nil
}
