package cleanup

import (
	"fmt"
	"log"
	"time"

	"property-portal/internal/models"

	"gorm.io/gorm"
)

// Service handles physical deletion of old soft-deleted properties
type Service struct {
	db *gorm.DB
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Config holds configuration for cleanup operations
type Config struct {
	RetentionDays    int  // Days to keep soft-deleted properties before physical deletion
	MaxDeletionCount int  // Maximum number of properties to delete in one run (safety limit)
	DryRun           bool // If true, only log what would be deleted without actually deleting
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RetentionDays:    90,
		MaxDeletionCount: 10000,
		DryRun:           false,
	}
}

// Result holds the result of a cleanup operation
type Result struct {
	TargetCount       int       `json:"target_count"`       // Number of properties eligible for deletion
	DeletedCount      int       `json:"deleted_count"`      // Number of properties actually deleted
	ErrorCount        int       `json:"error_count"`        // Number of errors encountered
	DryRun            bool      `json:"dry_run"`            // Whether this was a dry run
	ExecutedAt        time.Time `json:"executed_at"`        // When the cleanup was executed
	DeletedProperties []string  `json:"deleted_properties"` // IDs of deleted properties
	Errors            []string  `json:"errors,omitempty"`   // Error messages
}

// FindExpiredProperties finds soft-deleted properties whose deleted_at
// is older than retentionDays.
func (s *Service) FindExpiredProperties(retentionDays int) ([]models.Property, error) {
	var properties []models.Property

	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	err := s.db.Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoffDate).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired properties: %w", err)
	}

	log.Printf("[Cleanup] Found %d properties soft-deleted before %s", len(properties), cutoffDate.Format("2006-01-02"))
	return properties, nil
}

// PhysicallyDelete removes expired soft-deleted properties together
// with their images, writing a delete-log row for each.
func (s *Service) PhysicallyDelete(config Config) (*Result, error) {
	result := &Result{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	expiredProperties, err := s.FindExpiredProperties(config.RetentionDays)
	if err != nil {
		return nil, err
	}

	result.TargetCount = len(expiredProperties)

	if result.TargetCount == 0 {
		log.Println("[Cleanup] No expired properties found for deletion")
		return result, nil
	}

	// Safety check: abort if too many properties would be deleted
	if result.TargetCount > config.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d properties exceed max deletion limit of %d",
			result.TargetCount, config.MaxDeletionCount)
	}

	log.Printf("[Cleanup] Starting: %d properties to delete (retention: %d days, dry-run: %v)",
		result.TargetCount, config.RetentionDays, config.DryRun)

	for _, prop := range expiredProperties {
		if config.DryRun {
			log.Printf("[Cleanup] [DRY-RUN] Would delete property %s (%s)", prop.ID, prop.Title)
			result.DeletedProperties = append(result.DeletedProperties, prop.ID)
			result.DeletedCount++
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			deleteLog := models.DeleteLog{
				PropertyID: prop.ID,
				Title:      prop.Title,
				Slug:       prop.Slug,
				RemovedAt:  prop.DeletedAt,
				Reason:     models.DeleteReasonExpired,
			}
			if err := tx.Create(&deleteLog).Error; err != nil {
				return err
			}
			if err := tx.Where("property_id = ?", prop.ID).Delete(&models.PropertyImage{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Property{}, "id = ?", prop.ID).Error
		})
		if err != nil {
			errMsg := fmt.Sprintf("Failed to delete property %s: %v", prop.ID, err)
			log.Printf("[Cleanup] ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		log.Printf("[Cleanup] Physically deleted property %s (%s)", prop.ID, prop.Title)
		result.DeletedProperties = append(result.DeletedProperties, prop.ID)
		result.DeletedCount++
	}

	log.Printf("[Cleanup] Completed: %d/%d deleted, %d errors (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.ErrorCount, config.DryRun)

	return result, nil
}

// GetDeleteStats returns statistics about deleted properties
func (s *Service) GetDeleteStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalDeleted int64
	if err := s.db.Model(&models.DeleteLog{}).Count(&totalDeleted).Error; err != nil {
		return nil, err
	}
	stats["total_deleted"] = totalDeleted

	var reasonCounts []struct {
		Reason string
		Count  int64
	}
	if err := s.db.Model(&models.DeleteLog{}).
		Select("reason, count(*) as count").
		Group("reason").
		Scan(&reasonCounts).Error; err != nil {
		return nil, err
	}

	reasonMap := make(map[string]int64)
	for _, rc := range reasonCounts {
		reasonMap[rc.Reason] = rc.Count
	}
	stats["by_reason"] = reasonMap

	var recentDeleted int64
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if err := s.db.Model(&models.DeleteLog{}).
		Where("deleted_at >= ?", thirtyDaysAgo).
		Count(&recentDeleted).Error; err != nil {
		return nil, err
	}
	stats["deleted_last_30_days"] = recentDeleted

	// Soft-deleted rows still waiting out the retention window
	var currentRemoved int64
	if err := s.db.Model(&models.Property{}).
		Where("deleted_at IS NOT NULL").
		Count(&currentRemoved).Error; err != nil {
		return nil, err
	}
	stats["currently_soft_deleted"] = currentRemoved

	return stats, nil
}

// GetRecentDeleteLogs returns recent delete log entries
func (s *Service) GetRecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	var logs []models.DeleteLog
	err := s.db.Order("deleted_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
