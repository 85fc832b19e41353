package stats

// Period selects the reporting window for the dashboard.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod parses a period string, defaulting to today.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeek, PeriodMonth:
		return Period(s)
	default:
		return PeriodToday
	}
}

// Summary holds the dashboard headline numbers. Cancelled orders are
// excluded from revenue.
type Summary struct {
	TotalOrders  int   `json:"totalOrders"`
	TotalRevenue int64 `json:"totalRevenue"`
	AverageCheck int64 `json:"averageCheck"`
	ActiveOrders int   `json:"activeOrders"`
}

// DayRevenue is one day's orders and revenue.
type DayRevenue struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// HourRevenue is one hour's orders and revenue for today.
type HourRevenue struct {
	Hour    int   `json:"hour"`
	Orders  int   `json:"orders"`
	Revenue int64 `json:"revenue"`
}

// TopProduct is a best-selling product over the period.
type TopProduct struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

// PaymentRevenue is revenue grouped by payment method.
type PaymentRevenue struct {
	PaymentMethod string `json:"paymentMethod"`
	Revenue       int64  `json:"revenue"`
}

// BranchRevenue is orders and revenue grouped by branch.
type BranchRevenue struct {
	BranchID int64  `json:"branchId"`
	Name     string `json:"name"`
	Orders   int    `json:"orders"`
	Revenue  int64  `json:"revenue"`
}

// Dashboard is the full stats response.
type Dashboard struct {
	Summary          Summary          `json:"summary"`
	RevenueByPayment []PaymentRevenue `json:"revenueByPayment"`
	Last7Days        []DayRevenue     `json:"last7Days"`
	TopProducts      []TopProduct     `json:"topProducts"`
	OrdersByBranch   []BranchRevenue  `json:"ordersByBranch"`
	HourlyToday      []HourRevenue    `json:"hourlyToday"`
}
