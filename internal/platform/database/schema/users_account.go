// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column name definitions for every
// relation the repositories touch. Queries are built from these values so a
// column rename is a one-line change.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	Username    string
	Password    string
	TOTPSecret  string
	ActiveToken string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	Username:    "username",
	Password:    "passwordhash",
	TOTPSecret:  "totpsecret",
	ActiveToken: "activetoken",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.Username, t.Password, t.TOTPSecret, t.ActiveToken,
		t.CreatedAt, t.UpdatedAt,
	}
}
