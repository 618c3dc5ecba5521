package models

import "time"

// PlatformStatistics is the snapshot refreshed by the scheduler and served
// by GET /admin/statistics.
type PlatformStatistics struct {
	TotalUsers          int       `json:"totalUsers"`
	TotalStudents       int       `json:"totalStudents"`
	TotalJobs           int       `json:"totalJobs"`
	TotalSectors        int       `json:"totalSectors"`
	TotalCompanies      int       `json:"totalCompanies"`
	TotalTrainings      int       `json:"totalTrainings"`
	TotalFavorites      int       `json:"totalFavorites"`
	PendingTestimonials int       `json:"pendingTestimonials"`
	LastUpdated         time.Time `json:"lastUpdated"`
}

// SectorStat is one row of the dashboard sector breakdown.
type SectorStat struct {
	SectorID string        `json:"id"`
	Name     LocalizedText `json:"name"`
	JobCount int           `json:"jobCount"`
	Growth   float64       `json:"growth"`
}

// Dashboard backs GET /admin/dashboard.
type Dashboard struct {
	Totals      DashboardTotals `json:"totals"`
	RecentUsers []*User         `json:"recentUsers"`
	RecentJobs  []*Job          `json:"recentJobs"`
	SectorStats []SectorStat    `json:"sectorStats"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

type DashboardTotals struct {
	Jobs                int `json:"jobs"`
	Users               int `json:"users"`
	Companies           int `json:"companies"`
	PendingTestimonials int `json:"pendingTestimonials"`
}
