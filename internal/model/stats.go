package model

// Stats holds platform-wide totals
type Stats struct {
	TotalClubs       int64 `json:"totalClubs"`
	TotalUsers       int64 `json:"totalUsers"`
	TotalEvents      int64 `json:"totalEvents"`
	TotalMemberships int64 `json:"totalMemberships"`
}
