package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/fatih/color"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const legacyResidenceColumn = "residence"

// residence is the five-level Rwandan address the current schema stores.
type residence struct {
	Province string
	District string
	Sector   string
	Cell     string
	Village  string
}

// splitResidence reads "Province, District, Sector, Cell, Village". Missing
// trailing parts are left empty; extra parts are folded into the village.
func splitResidence(value string) (residence, bool) {
	raw := strings.Split(value, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return residence{}, false
	}
	if len(parts) > 5 {
		parts = append(parts[:4], strings.Join(parts[4:], ", "))
	}
	for len(parts) < 5 {
		parts = append(parts, "")
	}
	return residence{
		Province: parts[0],
		District: parts[1],
		Sector:   parts[2],
		Cell:     parts[3],
		Village:  parts[4],
	}, true
}

type legacyRow struct {
	ID        string
	Residence *string
}

// migrateResidence copies the legacy residence column into the address
// columns, keeping any part that is already filled, then drops it.
func migrateResidence(ctx context.Context, gdb *gorm.DB) error {
	migrated, err := migrateResidenceRows(ctx, gdb)
	if err != nil {
		return err
	}
	if migrated < 0 {
		color.Yellow("No legacy residence column found, nothing to do")
		return nil
	}
	color.Green("Migrated residence for %d applications", migrated)
	return nil
}

// migrateResidenceRows returns -1 when the legacy column is absent.
func migrateResidenceRows(ctx context.Context, gdb *gorm.DB) (int, error) {
	gdb = gdb.WithContext(ctx)
	if !gdb.Migrator().HasColumn(&models.Application{}, legacyResidenceColumn) {
		return -1, nil
	}

	migrated := 0
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var rows []legacyRow
		err := tx.Model(&models.Application{}).
			Select("id", legacyResidenceColumn).
			Where(legacyResidenceColumn + " IS NOT NULL").
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("read residence: %w", err)
		}

		for _, row := range rows {
			r, ok := splitResidence(*row.Residence)
			if !ok {
				continue
			}
			var current models.Application
			if err := tx.Select("id", "province", "district", "sector", "cell", "village").
				Where("id = ?", row.ID).First(&current).Error; err != nil {
				return err
			}
			updates := map[string]interface{}{}
			keep := func(column, existing, value string) {
				if strings.TrimSpace(existing) == "" && value != "" {
					updates[column] = value
				}
			}
			keep("province", current.Province, r.Province)
			keep("district", current.District, r.District)
			keep("sector", current.Sector, r.Sector)
			keep("cell", current.Cell, r.Cell)
			keep("village", current.Village, r.Village)
			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(&current).Updates(updates).Error; err != nil {
				return fmt.Errorf("update application %s: %w", row.ID, err)
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := dropLegacyColumn(gdb); err != nil {
		return migrated, err
	}
	return migrated, nil
}

// dropLegacyColumn removes the residence column. The sqlite migrator can
// report success and leave the column in place; a plain DROP COLUMN
// (sqlite 3.35+) covers that case.
func dropLegacyColumn(gdb *gorm.DB) error {
	migrator := gdb.Migrator()
	if err := migrator.DropColumn(&models.Application{}, legacyResidenceColumn); err != nil {
		return fmt.Errorf("drop residence column: %w", err)
	}
	if !migrator.HasColumn(&models.Application{}, legacyResidenceColumn) {
		return nil
	}

	table := gdb.NamingStrategy.TableName("Application")
	if err := gdb.Exec("ALTER TABLE ? DROP COLUMN ?", clause.Table{Name: table}, clause.Column{Name: legacyResidenceColumn}).Error; err != nil {
		return fmt.Errorf("drop residence column: %w", err)
	}
	if migrator.HasColumn(&models.Application{}, legacyResidenceColumn) {
		return fmt.Errorf("drop residence column: column %q is still present", legacyResidenceColumn)
	}
	return nil
}
