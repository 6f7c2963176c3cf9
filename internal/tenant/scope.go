package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every tenant-owned table carries
// a company_id column, so repos chain this instead of repeating the Where.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
