package employee_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/employee-directory/internal"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
	"github.com/frahmantamala/employee-directory/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeReadRepository keeps preloaded rows in memory.
type fakeReadRepository struct {
	rows      []*employeeDatamodel.Employee
	failWith  error
	countCall int
}

func (f *fakeReadRepository) GetAggregate(_ context.Context, id int64) (*employeeDatamodel.Employee, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeReadRepository) ListByHireDateDesc(_ context.Context, limit int) ([]*employeeDatamodel.Employee, error) {
	sorted := append([]*employeeDatamodel.Employee(nil), f.rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HireDate.After(*sorted[j].HireDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// matching applies the position and workstation parts of a filter.
func (f *fakeReadRepository) matching(filter employee.ListFilter) []*employeeDatamodel.Employee {
	var rows []*employeeDatamodel.Employee
	for _, row := range f.rows {
		if filter.Position != "" && row.Position != filter.Position {
			continue
		}
		if filter.WorkstationID != nil && (row.WorkstationID == nil || *row.WorkstationID != *filter.WorkstationID) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func (f *fakeReadRepository) ListByName(_ context.Context, filter employee.ListFilter, offset, count int) ([]*employeeDatamodel.Employee, error) {
	sorted := f.matching(filter)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LastName != sorted[j].LastName {
			return sorted[i].LastName < sorted[j].LastName
		}
		return sorted[i].FirstName < sorted[j].FirstName
	})
	if offset >= len(sorted) {
		return nil, nil
	}
	end := offset + count
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (f *fakeReadRepository) Count(_ context.Context, filter employee.ListFilter) (int64, error) {
	f.countCall++
	return int64(len(f.matching(filter))), nil
}

type prefixURLs struct{}

func (prefixURLs) URL(relPath string) string {
	return "/media/" + relPath
}

var _ = Describe("Reader", func() {
	var (
		repo   *fakeReadRepository
		reader *employee.Reader
		ctx    context.Context
		today  time.Time
	)

	BeforeEach(func() {
		today = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
		repo = &fakeReadRepository{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		reader = employee.NewReader(repo, prefixURLs{}, internal.DirectoryConfig{}, logger).
			WithClock(func() time.Time { return today })
		ctx = context.Background()
	})

	Describe("GetDetail", func() {
		It("returns not found for an unknown id", func() {
			_, err := reader.GetDetail(ctx, 99)
			Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())
		})

		It("propagates store failures", func() {
			repo.failWith = errors.New("connection refused")
			_, err := reader.GetDetail(ctx, 1)
			Expect(err).To(MatchError("connection refused"))
		})

		It("splits images into cover and gallery by display order", func() {
			created := today.Add(-time.Hour)
			repo.rows = []*employeeDatamodel.Employee{{
				ID: 1, FirstName: "Anna", LastName: "Ivanova", HireDate: date(2024, time.May, 1),
				Images: []employeeDatamodel.EmployeeImage{
					{ID: 10, FilePath: "a.jpg", DisplayOrder: 2, CreatedAt: created},
					{ID: 11, FilePath: "b.jpg", DisplayOrder: 0, CreatedAt: created},
					{ID: 12, FilePath: "c.jpg", DisplayOrder: 1, CreatedAt: created},
				},
			}}

			view, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.CoverImage).NotTo(BeNil())
			Expect(view.CoverImage.Order).To(Equal(0))
			Expect(view.CoverImage.URL).To(Equal("/media/b.jpg"))
			Expect(view.GalleryImages).To(HaveLen(2))
			Expect(view.GalleryImages[0].Order).To(Equal(1))
			Expect(view.GalleryImages[1].Order).To(Equal(2))
		})

		It("breaks order ties by creation time", func() {
			repo.rows = []*employeeDatamodel.Employee{{
				ID: 1,
				Images: []employeeDatamodel.EmployeeImage{
					{ID: 2, FilePath: "late.jpg", CreatedAt: today},
					{ID: 3, FilePath: "early.jpg", CreatedAt: today.Add(-time.Minute)},
				},
			}}

			view, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.CoverImage.FilePath).To(Equal("early.jpg"))
		})

		It("has no cover and an empty gallery without images", func() {
			repo.rows = []*employeeDatamodel.Employee{{ID: 1}}

			view, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.CoverImage).To(BeNil())
			Expect(view.GalleryImages).NotTo(BeNil())
			Expect(view.GalleryImages).To(BeEmpty())
		})

		It("reports zero experience for a future hire date", func() {
			repo.rows = []*employeeDatamodel.Employee{{ID: 1, HireDate: date(2024, time.December, 1)}}

			view, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.WorkExperienceDays).To(BeZero())
			Expect(*view.HireDate).To(Equal("2024-12-01"))
		})

		It("includes the desk and named skill ratings in stored order", func() {
			repo.rows = []*employeeDatamodel.Employee{{
				ID: 1, FirstName: "Ivan", LastName: "Petrov", Position: "Developer",
				Workstation: &workstationDatamodel.Workstation{ID: 4, DeskNumber: "5", Name: "Window", IsActive: true},
				Skills: []employeeDatamodel.EmployeeSkill{
					{SkillID: 2, Level: 9, Skill: &skillDatamodel.Skill{ID: 2, Name: "Go"}},
					{SkillID: 1, Level: 4, Skill: &skillDatamodel.Skill{ID: 1, Name: "SQL"}},
				},
			}}

			view, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.FullName).To(Equal("Petrov Ivan"))
			Expect(view.Workstation.DeskNumber).To(Equal("5"))
			Expect(view.Skills).To(Equal([]employee.SkillRatingView{
				{SkillID: 2, Name: "Go", Level: 9},
				{SkillID: 1, Name: "SQL", Level: 4},
			}))
		})

		It("returns identical views for repeated calls", func() {
			repo.rows = []*employeeDatamodel.Employee{{
				ID: 1, FirstName: "Anna", HireDate: date(2020, time.January, 1),
				Images: []employeeDatamodel.EmployeeImage{{ID: 1, FilePath: "x.jpg"}, {ID: 2, FilePath: "y.jpg", DisplayOrder: 1}},
			}}

			first, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			second, err := reader.GetDetail(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Describe("ListRecent", func() {
		BeforeEach(func() {
			for i := 1; i <= 10; i++ {
				repo.rows = append(repo.rows, &employeeDatamodel.Employee{
					ID:        int64(i),
					FirstName: fmt.Sprintf("E%02d", i),
					HireDate:  date(2020, time.Month(i), 1),
				})
			}
		})

		It("returns the latest hires first with the total", func() {
			recent, err := reader.ListRecent(ctx, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(recent.TotalEmployees).To(Equal(int64(10)))
			Expect(recent.Employees).To(HaveLen(4))

			ids := make([]int64, 0, 4)
			for _, e := range recent.Employees {
				ids = append(ids, e.ID)
			}
			Expect(ids).To(Equal([]int64{10, 9, 8, 7}))
		})

		It("falls back to the configured limit", func() {
			recent, err := reader.ListRecent(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(recent.Employees).To(HaveLen(internal.DefaultRecentLimit))
		})
	})

	Describe("ListAll", func() {
		BeforeEach(func() {
			for i, last := range []string{"Orlov", "Ivanova", "Petrov", "Antonov", "Smirnov"} {
				repo.rows = append(repo.rows, &employeeDatamodel.Employee{ID: int64(i + 1), LastName: last})
			}
		})

		It("pages by name", func() {
			page, err := reader.ListAll(ctx, 1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(5)))
			Expect(page.TotalPages).To(Equal(3))
			Expect(page.HasNext).To(BeTrue())
			Expect(page.HasPrevious).To(BeFalse())
			Expect(page.Employees[0].LastName).To(Equal("Antonov"))
			Expect(page.Employees[1].LastName).To(Equal("Ivanova"))

			last, err := reader.ListAll(ctx, 3, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(last.Employees).To(HaveLen(1))
			Expect(last.Employees[0].LastName).To(Equal("Smirnov"))
			Expect(last.HasNext).To(BeFalse())
		})

		It("treats a page below one as the first page", func() {
			page, err := reader.ListAll(ctx, -3, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Page).To(Equal(1))
		})

		It("uses the default page size", func() {
			page, err := reader.ListAll(ctx, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.PageSize).To(Equal(internal.DefaultPageSize))
			Expect(page.Employees).To(HaveLen(5))
		})

		It("returns an empty page past the end", func() {
			page, err := reader.ListAll(ctx, 9, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Employees).NotTo(BeNil())
			Expect(page.Employees).To(BeEmpty())
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			desk := int64(3)
			repo.rows = []*employeeDatamodel.Employee{
				{ID: 1, LastName: "Orlov", Position: "Tester"},
				{ID: 2, LastName: "Ivanova", Position: "Developer", WorkstationID: &desk},
				{ID: 3, LastName: "Petrov", Position: "Developer"},
			}
		})

		It("pages within the filtered employees", func() {
			page, err := reader.Search(ctx, employee.ListFilter{Position: "Developer"}, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
			Expect(page.TotalPages).To(Equal(2))
			Expect(page.Employees).To(HaveLen(1))
			Expect(page.Employees[0].LastName).To(Equal("Ivanova"))
		})

		It("combines filters", func() {
			desk := int64(3)
			page, err := reader.Search(ctx, employee.ListFilter{Position: "Developer", WorkstationID: &desk}, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Employees).To(HaveLen(1))
			Expect(page.Employees[0].ID).To(Equal(int64(2)))
		})

		It("returns an empty first page when nothing matches", func() {
			page, err := reader.Search(ctx, employee.ListFilter{Position: "Designer"}, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeZero())
			Expect(page.Employees).To(BeEmpty())
			Expect(page.HasNext).To(BeFalse())
		})
	})
})
