// internal/app/features/jobs/types.go
package jobsfeature

import (
	"strconv"

	jobstore "github.com/dalemusser/stratajobs/internal/app/store/jobs"
	"github.com/dalemusser/stratajobs/internal/app/system/formutil"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/stratajobs/internal/domain/models"
)

// JobVM is the view model for a single job.
type JobVM struct {
	ID           string
	Title        string
	Salary       string
	EmployerName string
	PostedAt     string
}

// JobListVM is the view model for the jobs index page.
type JobListVM struct {
	viewdata.BaseVM
	Jobs     []JobVM
	Page     int
	HasPrev  bool
	HasMore  bool
	PrevHref string
	NextHref string
}

// JobDetailVM is the view model for the job detail page.
type JobDetailVM struct {
	viewdata.BaseVM
	Job     JobVM
	CanEdit bool
}

// JobFormVM backs both the create and the edit form.
type JobFormVM struct {
	formutil.Base
	ID     string // empty on create
	Title  string
	Salary string
}

func toJobVM(j models.Job) JobVM {
	vm := JobVM{
		ID:       j.ID.Hex(),
		Title:    j.Title,
		Salary:   j.Salary,
		PostedAt: j.CreatedAt.Format("Jan 2, 2006"),
	}
	if j.Employer != nil {
		vm.EmployerName = j.Employer.Name
	}
	return vm
}

func toListVM(base viewdata.BaseVM, res jobstore.ListResult) JobListVM {
	vm := JobListVM{
		BaseVM:  base,
		Jobs:    make([]JobVM, len(res.Jobs)),
		Page:    res.Page,
		HasPrev: res.Page > 1,
		HasMore: res.HasMore,
	}
	for i, j := range res.Jobs {
		vm.Jobs[i] = toJobVM(j)
	}
	if vm.HasPrev {
		vm.PrevHref = pageHref(res.Page - 1)
	}
	if vm.HasMore {
		vm.NextHref = pageHref(res.Page + 1)
	}
	return vm
}

func pageHref(page int) string {
	if page <= 1 {
		return "/jobs"
	}
	return "/jobs?page=" + strconv.Itoa(page)
}
