// Package reports serves the executive and expiration reports and the
// grouped counts the dashboard shares with them.
package reports

import (
	"gorm.io/gorm"
)

// CountBy groups q by column and returns the row count per value. NULL
// values are counted under the empty key.
func CountBy(q *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		K *string
		N int64
	}
	if err := q.Select(column + " AS k, COUNT(*) AS n").Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := ""
		if r.K != nil {
			key = *r.K
		}
		out[key] += r.N
	}
	return out, nil
}

// Count runs q.Count.
func Count(q *gorm.DB) (int64, error) {
	var n int64
	err := q.Count(&n).Error
	return n, err
}
