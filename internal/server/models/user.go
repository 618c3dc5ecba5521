// Package models holds the server-side domain types persisted in postgres
// and returned by the HTTP API.
package models

import "time"

// Role values. A role is assigned when the account is created and no API
// operation changes it afterwards.
const (
	RoleStudent     = "student"
	RoleSiteManager = "site_manager"
)

// Languages accepted for User.PreferredLanguage.
var Languages = []string{"fr", "ln", "sw", "en", "kg"}

// ValidLanguage reports whether lang is one of Languages.
func ValidLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	University        string    `json:"university,omitempty"`
	Year              string    `json:"year,omitempty"`
	Field             string    `json:"field,omitempty"`
	PreferredLanguage string    `json:"preferredLanguage"`
	Avatar            string    `json:"avatar,omitempty"`
	FavoriteJobs      []string  `json:"favoriteJobs"`
	Progress          Progress  `json:"progress"`
	CreatedAt         time.Time `json:"createdAt"`
	LastActive        time.Time `json:"lastActive"`
}

// ProfileUpdate carries the user-editable fields of PUT /users/me. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	Name              *string `json:"name"`
	University        *string `json:"university"`
	Year              *string `json:"year"`
	Field             *string `json:"field"`
	PreferredLanguage *string `json:"preferredLanguage"`
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.University == nil && u.Year == nil && u.Field == nil && u.PreferredLanguage == nil
}

// UserStats backs GET /users/stats.
type UserStats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalStudents     int `json:"totalStudents"`
	TotalAdmins       int `json:"totalAdmins"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
	ActiveUsers       int `json:"activeUsers"`
}
