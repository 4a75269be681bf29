package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	blocklistdomain "github.com/callshield/callshield/internal/blocklist/domain"
	callhistorydomain "github.com/callshield/callshield/internal/callhistory/domain"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	settingsdomain "github.com/callshield/callshield/internal/settings/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaultSettings creates the settings row with defaults when the
// table is empty. Startup aborts if this fails.
func EnsureDefaultSettings(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing settingsdomain.UserSettings
		err := tx.WithContext(ctx).Order("id asc").First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		settings := settingsdomain.Defaults()
		settings.ID = node.Generate()
		return tx.WithContext(ctx).Create(&settings).Error
	})
}

// EnsureIntelligenceDataset loads the bundled phone intelligence records
// so lookups work offline out of the box. Records already present are
// left untouched.
func EnsureIntelligenceDataset(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range intelligenceDataset() {
			var existing phonedomain.PhoneNumber
			err := tx.WithContext(ctx).
				Where("normalized_number = ?", record.NormalizedNumber).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			record.ID = node.Generate()
			record.Source = phonedomain.SourceDatabase
			record.Metadata = datatypes.JSONMap{}
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureDemoData loads demo call history and block records for local
// development. Skipped when any call history already exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&callhistorydomain.CallRecord{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, record := range demoCallHistory() {
			record.ID = node.Generate()
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
		for _, record := range demoBlockedNumbers() {
			record.ID = node.Generate()
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func daysAgo(days int) time.Time {
	return time.Now().Add(-time.Duration(days) * 24 * time.Hour)
}

func hoursAgo(hours int) time.Time {
	return time.Now().Add(-time.Duration(hours) * time.Hour)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intelligenceDataset() []phonedomain.PhoneNumber {
	return []phonedomain.PhoneNumber{
		{
			Number:           "+27 11 234 5678",
			NormalizedNumber: "0112345678",
			Classification:   phonedomain.ClassificationHighSpam,
			Category:         phonedomain.CategoryTelemarketer,
			SpamScore:        92,
			ReportCount:      847,
			LastReported:     timePtr(daysAgo(2)),
		},
		{
			Number:           "+27 87 575 9404",
			NormalizedNumber: "0875759404",
			Name:             "FNB Customer Service",
			Classification:   phonedomain.ClassificationVerified,
			Category:         phonedomain.CategoryBank,
			VerifiedBusiness: true,
		},
		{
			Number:           "+27 21 555 6789",
			NormalizedNumber: "0215556789",
			Classification:   phonedomain.ClassificationLowSpam,
			Category:         phonedomain.CategoryUnknown,
			SpamScore:        45,
			ReportCount:      12,
			LastReported:     timePtr(daysAgo(7)),
		},
		{
			Number:           "+27 11 111 2222",
			NormalizedNumber: "0111112222",
			Classification:   phonedomain.ClassificationHighSpam,
			Category:         phonedomain.CategoryDebtCollector,
			SpamScore:        85,
			ReportCount:      234,
			LastReported:     timePtr(daysAgo(14)),
		},
		{
			Number:           "+27 82 333 4444",
			NormalizedNumber: "0823334444",
			Name:             "Mom",
			Classification:   phonedomain.ClassificationContact,
			Category:         phonedomain.CategoryPersonal,
		},
		{
			Number:           "+27 82 999 8888",
			NormalizedNumber: "0829998888",
			Classification:   phonedomain.ClassificationUnknown,
			Category:         phonedomain.CategoryUnknown,
		},
		{
			Number:           "+27 10 500 1234",
			NormalizedNumber: "0105001234",
			Name:             "Vodacom",
			Classification:   phonedomain.ClassificationVerified,
			Category:         phonedomain.CategoryTelecoms,
			VerifiedBusiness: true,
		},
		{
			Number:           "+27 11 999 0000",
			NormalizedNumber: "0119990000",
			Classification:   phonedomain.ClassificationHighSpam,
			Category:         phonedomain.CategoryScam,
			SpamScore:        98,
			ReportCount:      1523,
			LastReported:     timePtr(daysAgo(1)),
		},
	}
}

func demoCallHistory() []callhistorydomain.CallRecord {
	return []callhistorydomain.CallRecord{
		{
			PhoneNumber:      "+27 82 333 4444",
			NormalizedNumber: "0823334444",
			CallerName:       "Mom",
			Direction:        callhistorydomain.DirectionIncoming,
			Timestamp:        hoursAgo(2),
			Duration:         300,
			Classification:   phonedomain.ClassificationContact,
		},
		{
			PhoneNumber:      "+27 11 234 5678",
			NormalizedNumber: "0112345678",
			Direction:        callhistorydomain.DirectionMissed,
			Timestamp:        hoursAgo(4),
			Classification:   phonedomain.ClassificationHighSpam,
			SpamScore:        92,
			Blocked:          true,
		},
		{
			PhoneNumber:      "+27 87 575 9404",
			NormalizedNumber: "0875759404",
			CallerName:       "FNB Customer Service",
			Direction:        callhistorydomain.DirectionIncoming,
			Timestamp:        hoursAgo(24),
			Duration:         180,
			Classification:   phonedomain.ClassificationVerified,
		},
		{
			PhoneNumber:      "+27 82 999 8888",
			NormalizedNumber: "0829998888",
			Direction:        callhistorydomain.DirectionMissed,
			Timestamp:        hoursAgo(26),
			Classification:   phonedomain.ClassificationUnknown,
		},
		{
			PhoneNumber:      "+27 21 555 6789",
			NormalizedNumber: "0215556789",
			Direction:        callhistorydomain.DirectionMissed,
			Timestamp:        daysAgo(3),
			Classification:   phonedomain.ClassificationLowSpam,
			SpamScore:        45,
		},
		{
			PhoneNumber:      "+27 11 111 2222",
			NormalizedNumber: "0111112222",
			Direction:        callhistorydomain.DirectionIncoming,
			Timestamp:        daysAgo(3),
			Classification:   phonedomain.ClassificationHighSpam,
			SpamScore:        85,
			Blocked:          true,
		},
		{
			PhoneNumber:      "+27 10 500 1234",
			NormalizedNumber: "0105001234",
			CallerName:       "Vodacom",
			Direction:        callhistorydomain.DirectionIncoming,
			Timestamp:        daysAgo(5),
			Duration:         120,
			Classification:   phonedomain.ClassificationVerified,
		},
		{
			PhoneNumber:      "+27 11 999 0000",
			NormalizedNumber: "0119990000",
			Direction:        callhistorydomain.DirectionMissed,
			Timestamp:        daysAgo(6),
			Classification:   phonedomain.ClassificationHighSpam,
			SpamScore:        98,
			Blocked:          true,
		},
		{
			PhoneNumber:      "+27 82 333 4444",
			NormalizedNumber: "0823334444",
			CallerName:       "Mom",
			Direction:        callhistorydomain.DirectionOutgoing,
			Timestamp:        daysAgo(7),
			Duration:         420,
			Classification:   phonedomain.ClassificationContact,
		},
	}
}

func demoBlockedNumbers() []blocklistdomain.BlockedNumber {
	return []blocklistdomain.BlockedNumber{
		{
			PhoneNumber:      "+27 11 234 5678",
			NormalizedNumber: "0112345678",
			BlockedAt:        daysAgo(2),
			Reason:           "Telemarketer",
			AutoBlocked:      true,
		},
		{
			PhoneNumber:      "+27 21 555 6789",
			NormalizedNumber: "0215556789",
			BlockedAt:        daysAgo(7),
			Reason:           "Scam attempt",
		},
		{
			PhoneNumber:      "+27 11 111 2222",
			NormalizedNumber: "0111112222",
			BlockedAt:        daysAgo(14),
			Reason:           "Debt collector",
			AutoBlocked:      true,
		},
		{
			PhoneNumber:      "+27 11 999 0000",
			NormalizedNumber: "0119990000",
			BlockedAt:        daysAgo(1),
			Reason:           "SARS impersonation scam",
			AutoBlocked:      true,
		},
	}
}
