package repository_test

import (
	"testing"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewProfileRepository()

	profiles := []entity.Profile{
		{UserID: "user-c", BiologicalSex: "male", AgeBracket: "30-39", FitnessLevel: "intermediate", TierCode: "M-30-39-INT"},
		{UserID: "user-a", BiologicalSex: "male", AgeBracket: "30-39", FitnessLevel: "intermediate", TierCode: "M-30-39-INT"},
		{UserID: "user-b", BiologicalSex: "female", AgeBracket: "18-29", FitnessLevel: "beginner", TierCode: "F-18-29-BEG"},
	}
	for i := range profiles {
		require.NoError(t, repo.Upsert(ctx, &profiles[i]))
	}

	// Upsert on an existing user replaces the attributes.
	require.NoError(t, repo.Upsert(ctx, &entity.Profile{
		UserID: "user-c", BiologicalSex: "male", AgeBracket: "40-49", FitnessLevel: "intermediate", TierCode: "M-40-49-INT",
	}))

	stored, err := repo.GetByUserID(ctx, "user-c")
	require.NoError(t, err)
	require.Equal(t, "M-40-49-INT", stored.TierCode)
	require.Equal(t, "40-49", stored.AgeBracket)

	found, err := repo.FindByTierCode(ctx, "M-30-39-INT", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "user-a", found[0].UserID)

	n, err := repo.Count(ctx, repository.ProfileFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	n, err = repo.Count(ctx, repository.ProfileFilter{BiologicalSex: "male", FitnessLevel: "intermediate"})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	n, err = repo.Count(ctx, repository.ProfileFilter{TierCode: "F-18-29-BEG"})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	codes, err := repo.DistinctTierCodes(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"F-18-29-BEG", "M-30-39-INT", "M-40-49-INT"}, codes)
}
