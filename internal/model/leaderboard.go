package model

import "time"

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"user_id"`
	Points     int64  `json:"points"`
	ActiveDays int    `json:"active_days"`
}

type Leaderboard struct {
	Period     string             `json:"period"`
	TierCode   string             `json:"tier_code"`
	ComputedAt time.Time          `json:"computed_at"`
	Entries    []LeaderboardEntry `json:"entries"`
}

type GetLeaderboardRequest struct {
	Period   string `json:"period"`
	TierCode string `json:"tier_code"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	Period     string             `json:"period"`
	TierCode   string             `json:"tier_code"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
	ComputedAt time.Time          `json:"computed_at"`
	Entries    []LeaderboardEntry `json:"entries"`
}

type GetUserRankRequest struct {
	Period   string `json:"period"`
	TierCode string `json:"tier_code"`
	UserID   string `json:"user_id"`
}

type GetUserRankResponse struct {
	Entry   *LeaderboardEntry  `json:"entry"`
	Total   int                `json:"total"`
	Context []LeaderboardEntry `json:"context"`
}
