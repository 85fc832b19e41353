package order

// QueryOrdersModel represents filter parameters for querying orders.
// Results are always ordered newest-first.
type QueryOrdersModel struct {
	Ids      []int64  `json:"ids,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
	BranchID int64    `json:"branchId,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}
