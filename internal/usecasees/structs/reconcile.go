package structs

const (
	ScenarioCommonSameDir = "COMMON_SAME_DIR"
	ScenarioCommonDiffDir = "COMMON_DIFF_DIR"
	ScenarioMasterOnly    = "MASTER_ONLY"

	ReconcileActionUseInferred = "USE_INFERRED"
	ReconcileActionManual      = "MANUAL"
	ReconcileActionUseDefault  = "USE_DEFAULT"
	ReconcileActionBlacklist   = "BLACKLIST"
)

// ReconciliationEntry compares one symbol's master and follower positions
// before replication starts.
type ReconciliationEntry struct {
	Symbol             string  `json:"symbol"`
	MasterQty          int64   `json:"masterQty"`
	FollowerQty        int64   `json:"followerQty"`
	Scenario           string  `json:"scenario"`
	InferredMultiplier float64 `json:"inferredMultiplier,omitempty"`
	CurrentMultiplier  float64 `json:"currentMultiplier"`
	CurrentSource      string  `json:"currentSource"`
	IsBlacklisted      bool    `json:"isBlacklisted"`
	DefaultAction      string  `json:"defaultAction"`
}

type FollowerReconciliation struct {
	FollowerID     string                `json:"followerId"`
	BaseMultiplier float64               `json:"baseMultiplier"`
	Entries        []ReconciliationEntry `json:"entries"`
}

type ReconcileDecision struct {
	Symbol     string  `json:"symbol"`
	Action     string  `json:"action"`
	Multiplier float64 `json:"multiplier,omitempty"`
	Blacklist  bool    `json:"blacklist"`
}

type FollowerDecisions struct {
	FollowerID string              `json:"followerId"`
	Decisions  []ReconcileDecision `json:"decisions"`
}
