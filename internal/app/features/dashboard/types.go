// internal/app/features/dashboard/types.go
package dashboard

import (
	"github.com/tantrafest/tantra/internal/app/store/queries/overview"
	"github.com/tantrafest/tantra/internal/app/system/viewdata"
)

type statCard struct {
	Label string
	Value int
}

type eventItem struct {
	ID       string
	Name     string
	DeptID   string
	DeptName string
	Date     string
	Open     bool
}

type deptCard struct {
	ID      string
	Name    string
	LogoURL string
}

type dashboardData struct {
	viewdata.BaseVM
	Stats       []statCard
	Events      []eventItem
	Departments []deptCard
}

func (d *dashboardData) fill(sum overview.Summary) {
	d.Stats = []statCard{
		{"Departments", sum.TotalDepartments},
		{"Events", sum.TotalEvents},
		{"Registrations", sum.TotalRegistrations},
		{"Unique participants", sum.UniqueParticipants},
	}
	d.Events = make([]eventItem, 0, len(sum.Events))
	for _, e := range sum.Events {
		d.Events = append(d.Events, eventItem{
			ID:       e.ID,
			Name:     e.Name,
			DeptID:   e.DepartmentRef(),
			DeptName: e.DeptName,
			Date:     e.Date,
			Open:     e.Status.Open,
		})
	}
	d.Departments = make([]deptCard, 0, len(sum.Departments))
	for _, dep := range sum.Departments {
		d.Departments = append(d.Departments, deptCard{ID: dep.ID, Name: dep.Name, LogoURL: dep.LogoURL})
	}
}
