package model

type Profile struct {
	UserID          string `json:"user_id"`
	BiologicalSex   string `json:"biological_sex"`
	AgeBracket      string `json:"age_bracket"`
	FitnessLevel    string `json:"fitness_level"`
	TierCode        string `json:"tier_code"`
	TierDisplayName string `json:"tier_display_name"`
}

type UpsertProfileRequest struct {
	UserID        string `json:"user_id"`
	BiologicalSex string `json:"biological_sex"`
	AgeBracket    string `json:"age_bracket"`
	FitnessLevel  string `json:"fitness_level"`
}

type UpsertProfileResponse struct {
	Profile Profile `json:"profile"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type ListProfilesByTierRequest struct {
	TierCode string `json:"tier_code"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type ListProfilesByTierResponse struct {
	Profiles []Profile `json:"profiles"`
	Total    int64     `json:"total"`
}

type CountProfilesRequest struct {
	TierCode      string `json:"tier_code"`
	BiologicalSex string `json:"biological_sex"`
	AgeBracket    string `json:"age_bracket"`
	FitnessLevel  string `json:"fitness_level"`
}

type CountProfilesResponse struct {
	Count int64 `json:"count"`
}
