package database

import (
	"context"
	"fmt"

	"repairwip/model"

	"github.com/jmoiron/sqlx"
)

const UnitColumns = `serial_number, model_name, mo_number, product_line, wip_group, error_flag, work_flag,
	test_group, test_code, error_item_code, error_desc, check_in_date, aging_day`

// GetPrimaryUnits returns the units currently in the repair area.
func GetPrimaryUnits(ctx context.Context, db *sqlx.DB, filters model.UnitFilters) ([]model.UnitRow, error) {
	rows, err := selectUnits(ctx, db, "wip_units", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to select primary units: %w", err)
	}
	return rows, nil
}

// GetReworkUnits returns the units in the finished-goods rework flow.
func GetReworkUnits(ctx context.Context, db *sqlx.DB, filters model.UnitFilters) ([]model.UnitRow, error) {
	rows, err := selectUnits(ctx, db, "rework_units", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to select rework units: %w", err)
	}
	return rows, nil
}

func selectUnits(ctx context.Context, db *sqlx.DB, table string, filters model.UnitFilters) ([]model.UnitRow, error) {
	query := `SELECT ` + UnitColumns + ` FROM ` + table + ` u WHERE 1=1 `
	var args []interface{}
	if filters.ProductLine != "" {
		query += " AND u.product_line = ? "
		args = append(args, filters.ProductLine)
	}
	if filters.Model != "" {
		query += " AND u.model_name = ? "
		args = append(args, filters.Model)
	}
	if filters.MoPrefix != "" {
		query += " AND u.mo_number LIKE ? "
		args = append(args, filters.MoPrefix+"%")
	}
	query += " ORDER BY u.id "

	var rows []model.UnitRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rows, nil
}
