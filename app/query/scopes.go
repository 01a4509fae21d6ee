package query

import "gorm.io/gorm"

// FilterScope applies the plan's joins and predicates. It is shared by the count
// and the page query so both see the same filter.
func (p Plan) FilterScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, j := range p.Joins {
			db = db.Joins(j)
		}
		for _, c := range p.Where {
			db = db.Where(c.SQL, c.Args...)
		}
		return db
	}
}

// PageScope applies ordering and the skip/take window.
func (p Plan) PageScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(p.Order).Offset(p.Skip).Limit(p.Take)
	}
}
