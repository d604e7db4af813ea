package usecasees

import (
	"testing"

	mongoMocks "dascopy/internal/repository/mongo/mocks"
	mongoStructs "dascopy/internal/repository/mongo/structs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newMultiplierForTest(repo *mongoMocks.MultiplierRepo) *multiplierUseCase {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewMultiplierUseCase(repo, logger)
}

func Test_MultiplierScale(t *testing.T) {
	u := newMultiplierForTest(&mongoMocks.MultiplierRepo{})
	u.SetBase("f1", 0.5)

	t.Run("base multiplier", func(t *testing.T) {
		assert.Equal(t, int64(50), u.Scale(100, "f1", "AAPL"))
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		assert.Equal(t, int64(2), u.Scale(3, "f1", "AAPL"))
	})

	t.Run("never scales below one share", func(t *testing.T) {
		u.SetBase("tiny", 0.001)
		assert.Equal(t, int64(1), u.Scale(100, "tiny", "AAPL"))
	})

	t.Run("zero stays zero", func(t *testing.T) {
		assert.Equal(t, int64(0), u.Scale(0, "f1", "AAPL"))
	})

	t.Run("unknown follower defaults to 1.0", func(t *testing.T) {
		assert.Equal(t, int64(100), u.Scale(100, "missing", "AAPL"))
	})
}

func Test_MultiplierOverrideWins(t *testing.T) {
	repo := &mongoMocks.MultiplierRepo{}
	repo.On("Upsert", "f1", "TSLA", 3.0, mongoStructs.SourceUserOverride).Return(nil)
	repo.On("Delete", "f1", "TSLA").Return(nil)

	u := newMultiplierForTest(repo)
	u.SetBase("f1", 2.0)

	assert.NoError(t, u.SetOverride("f1", "tsla", 3.0))

	assert.Equal(t, 3.0, u.Effective("f1", "TSLA"))
	assert.Equal(t, mongoStructs.SourceUserOverride, u.Source("f1", "TSLA"))
	assert.Equal(t, int64(300), u.Scale(100, "f1", "TSLA"))

	// Other symbols keep the base multiplier.
	assert.Equal(t, 2.0, u.Effective("f1", "AAPL"))

	assert.NoError(t, u.ClearOverride("f1", "TSLA"))
	assert.Equal(t, 2.0, u.Effective("f1", "TSLA"))
	assert.Equal(t, mongoStructs.SourceBase, u.Source("f1", "TSLA"))

	repo.AssertExpectations(t)
}

func Test_MultiplierLoad(t *testing.T) {
	repo := &mongoMocks.MultiplierRepo{}
	repo.On("LoadAll").Return([]mongoStructs.SymbolMultiplier{
		{FollowerID: "f1", Symbol: "GME", Multiplier: 0.25, Source: mongoStructs.SourceUserOverride},
	}, nil)

	u := newMultiplierForTest(repo)

	assert.NoError(t, u.Load())
	assert.Equal(t, 0.25, u.Effective("f1", "GME"))
	assert.Equal(t, map[string]float64{"GME": 0.25}, u.ForFollower("f1"))
	assert.Empty(t, u.ForFollower("f2"))
}
