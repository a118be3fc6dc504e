package stats

import (
	"time"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"go.uber.org/zap"
)

const collectInterval = 15 * time.Minute

// StartCollector samples site activity into the stats history on an
// interval. The history feeds the master dashboard charts.
func StartCollector(s *store.Store, sugar *zap.SugaredLogger) {
	ticker := time.NewTicker(collectInterval)
	go func() {
		// Run once at start
		collect(s, sugar)
		for range ticker.C {
			collect(s, sugar)
		}
	}()
}

func collect(s *store.Store, sugar *zap.SugaredLogger) {
	db := s.DB()

	var resources, feedback, staff int64
	if err := db.Model(&model.Resource{}).Count(&resources).Error; err != nil {
		sugar.Errorw("collector: failed to count resources", "error", err)
		return
	}
	if err := db.Model(&model.Feedback{}).Count(&feedback).Error; err != nil {
		sugar.Errorw("collector: failed to count feedback", "error", err)
		return
	}
	if err := db.Model(&model.StaffAccount{}).Count(&staff).Error; err != nil {
		sugar.Errorw("collector: failed to count staff", "error", err)
		return
	}

	snap := model.StatsSnapshot{
		Resources: resources,
		Feedback:  feedback,
		Staff:     staff,
		Timestamp: time.Now(),
	}
	if err := s.AddStatsSnapshot(&snap); err != nil {
		sugar.Errorw("collector: failed to store snapshot", "error", err)
	}
}
