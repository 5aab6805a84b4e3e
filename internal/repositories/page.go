package repositories

import (
	"math"

	"gorm.io/gorm"
)

// maxOffset bounds how far a page can reach so (Number-1)*Limit never wraps.
const maxOffset = math.MaxInt32

// Page is a 1-based page window.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if p.Number-1 > maxOffset/p.Limit {
		return maxOffset
	}
	return (p.Number - 1) * p.Limit
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}
