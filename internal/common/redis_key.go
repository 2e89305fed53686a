package common

import "fmt"

const LeaderboardGlobalScope = "global"

func RedisKeyLeaderboard(period, tierCode string) string {
	if tierCode == "" {
		tierCode = LeaderboardGlobalScope
	}

	return fmt.Sprintf("leaderboard:%s:%s", period, tierCode)
}

// RedisKeyLeaderboardPattern matches every cached board of period, or every
// board when period is empty.
func RedisKeyLeaderboardPattern(period string) string {
	if period == "" {
		return "leaderboard:*"
	}

	return fmt.Sprintf("leaderboard:%s:*", period)
}
