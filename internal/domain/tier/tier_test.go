package tier

import (
	"testing"

	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestComputeTierCode(t *testing.T) {
	code, err := ComputeTierCode(Male, Age18To29, Beginner)
	require.NoError(t, err)
	require.Equal(t, "M-18-29-BEG", code)

	code, err = ComputeTierCode(Female, Age60Plus, Advanced)
	require.NoError(t, err)
	require.Equal(t, "F-60+-ADV", code)

	_, err = ComputeTierCode("other", Age18To29, Beginner)
	require.True(t, errorx.Is(err, errorx.InvalidAttribute))

	_, err = ComputeTierCode(Male, "17-", Beginner)
	require.True(t, errorx.Is(err, errorx.InvalidAttribute))

	_, err = ComputeTierCode(Male, Age30To39, "elite")
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func TestParseTierCode_RoundTrip(t *testing.T) {
	count := 0
	for _, sex := range []BiologicalSex{Male, Female} {
		for _, age := range []AgeBracket{Age18To29, Age30To39, Age40To49, Age50To59, Age60Plus} {
			for _, level := range []FitnessLevel{Beginner, Intermediate, Advanced} {
				code, err := ComputeTierCode(sex, age, level)
				require.NoError(t, err)

				attrs, err := ParseTierCode(code)
				require.NoError(t, err)
				require.Equal(t, Attributes{Sex: sex, Age: age, Level: level}, attrs)
				require.True(t, ValidateTierCode(code))
				count++
			}
		}
	}

	require.Equal(t, 30, count)
}

func TestParseTierCode_Invalid(t *testing.T) {
	for _, code := range []string{"", "M", "M-18-29", "X-18-29-BEG", "M-17-29-BEG", "M-18-29-PRO", "-18-29-BEG"} {
		require.False(t, ValidateTierCode(code), code)
	}
}

func TestAllTierCodes(t *testing.T) {
	codes := AllTierCodes()
	require.Len(t, codes, 30)
	require.Equal(t, "M-18-29-BEG", codes[0])
	require.Equal(t, "F-60+-ADV", codes[29])

	seen := map[string]bool{}
	for _, code := range codes {
		require.False(t, seen[code])
		seen[code] = true
	}
}

func TestDisplayName(t *testing.T) {
	name, err := DisplayName("F-40-49-INT")
	require.NoError(t, err)
	require.Equal(t, "Female · 40-49 · Intermediate", name)
}
