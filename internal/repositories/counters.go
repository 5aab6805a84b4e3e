package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// incrementColumn adds n to a denormalized counter. Columns are fixed
// identifiers, never user input.
func incrementColumn(tx *gorm.DB, model interface{}, id uint, column string, n int64) error {
	return tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", n)).Error
}

// decrementColumn subtracts n from a counter without going below zero.
func decrementColumn(tx *gorm.DB, model interface{}, id uint, column string, n int64) error {
	return tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" > ? THEN "+column+" - ? ELSE 0 END", n, n)).Error
}

// insertIfAbsent inserts value unless a unique key already holds an equal row.
// It reports whether a row was written.
func insertIfAbsent(tx *gorm.DB, value interface{}) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// readCounter loads a single counter column.
func readCounter(tx *gorm.DB, model interface{}, id uint, column string) (int64, error) {
	var n int64
	err := tx.Model(model).Where("id = ?", id).Select(column).Scan(&n).Error
	return n, err
}
