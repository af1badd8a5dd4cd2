package migrator

import "time"

// StatusCount is one row of a grouped status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AdminRecord is the admin-user lookup result joined against users.
type AdminRecord struct {
	ID            int64     `json:"id"`
	Role          string    `json:"role"`
	WalletAddress string    `json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
}

// Report holds the post-migration verification results. Admin is nil when no
// admin user matched the configured wallet; that is a warning, not a failure.
type Report struct {
	Duels   []StatusCount `json:"duels"`
	Markets []StatusCount `json:"markets"`
	Admin   *AdminRecord  `json:"admin"`
}
