package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fastfood-uz/pos/internal/service/models/stats"
)

type statsService interface {
	GetDashboard(ctx context.Context, period stats.Period) (stats.Dashboard, error)
}

func GetStats(w http.ResponseWriter, r *http.Request, service statsService) {
	period := stats.ParsePeriod(r.URL.Query().Get("period"))

	dashboard, err := service.GetDashboard(r.Context(), period)
	if err != nil {
		slog.Error("error while building stats dashboard", "error", err, "period", period)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dashboard); err != nil {
		slog.Error("error while encoding stats response", "error", err)
	}
}
