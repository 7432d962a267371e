package scheduler

import (
	"fmt"
	"log"

	"property-portal/internal/cleanup"
	"property-portal/internal/config"
	"property-portal/internal/models"
	"property-portal/internal/search"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the nightly maintenance job: physical cleanup of
// expired soft-deleted listings followed by a full search reindex.
type Scheduler struct {
	cron         *cron.Cron
	db           *gorm.DB
	cleanup      *cleanup.Service
	searchClient *search.SearchClient
	config       *config.Config
	isRunning    bool
}

// NewScheduler creates a new scheduler
func NewScheduler(db *gorm.DB, searchClient *search.SearchClient, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		db:           db,
		cleanup:      cleanup.NewService(db),
		searchClient: searchClient,
		config:       cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Maintenance.DailyRunEnabled {
		log.Println("Scheduler: Daily maintenance is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Maintenance.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting daily maintenance job...")
		if err := s.runMaintenance(); err != nil {
			log.Printf("Scheduler: Daily maintenance failed: %v", err)
		} else {
			log.Println("Scheduler: Daily maintenance completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Maintenance.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// runMaintenance executes cleanup and search reindex
func (s *Scheduler) runMaintenance() error {
	// Step 1: physical cleanup of expired soft-deleted listings
	cfg := cleanup.Config{
		RetentionDays:    s.config.Maintenance.RetentionDays,
		MaxDeletionCount: s.config.Maintenance.MaxDeletionCount,
	}
	result, err := s.cleanup.PhysicallyDelete(cfg)
	if err != nil {
		log.Printf("Scheduler: Cleanup failed: %v", err)
	} else {
		for _, id := range result.DeletedProperties {
			if err := s.searchClient.RemoveProperty(id); err != nil {
				log.Printf("Scheduler: Failed to remove property %s from index: %v", id, err)
			}
		}
	}

	// Step 2: full reindex of publicly listed properties
	var properties []models.Property
	err = s.db.Where("deleted_at IS NULL AND status <> ?", models.PropertyStatusDraft).
		Find(&properties).Error
	if err != nil {
		return fmt.Errorf("failed to load properties for reindex: %w", err)
	}

	if err := s.searchClient.IndexProperties(properties); err != nil {
		return fmt.Errorf("failed to reindex properties: %w", err)
	}

	log.Printf("Scheduler: Reindexed %d properties", len(properties))
	return nil
}

// RunNow immediately executes the maintenance job (for manual trigger)
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: Manual trigger - starting maintenance job...")
	return s.runMaintenance()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to 2:00 AM if parsing fails
	log.Printf("Scheduler: Failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
