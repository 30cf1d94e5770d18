package dao

import "database/sql"

type NullString struct {
	sql.NullString
}

// AsString returns the empty string when the column was NULL.
func (ns *NullString) AsString() string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
