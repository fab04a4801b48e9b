package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-directory/internal"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
)

// ReadRepository loads employee aggregates. Every method returns rows with
// their workstation, skills (with names) and images preloaded, using a fixed
// number of queries regardless of how many rows come back.
type ReadRepository interface {
	GetAggregate(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	ListByHireDateDesc(ctx context.Context, limit int) ([]*employeeDatamodel.Employee, error)
	ListByName(ctx context.Context, filter ListFilter, offset, count int) ([]*employeeDatamodel.Employee, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

// ListFilter narrows the directory listing. Zero values match everyone.
// Query is matched against last name, first name and email.
type ListFilter struct {
	Query         string
	Position      string
	WorkstationID *int64
}

// Reader assembles read-only employee views. It holds no mutable state.
type Reader struct {
	repo   ReadRepository
	urls   URLBuilder
	cfg    internal.DirectoryConfig
	now    func() time.Time
	logger *slog.Logger
}

func NewReader(repo ReadRepository, urls URLBuilder, cfg internal.DirectoryConfig, logger *slog.Logger) *Reader {
	return &Reader{
		repo:   repo,
		urls:   urls,
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock returns a copy of the reader that uses now for work experience.
func (r *Reader) WithClock(now func() time.Time) *Reader {
	cp := *r
	cp.now = now
	return &cp
}

func (r *Reader) GetDetail(ctx context.Context, id int64) (*EmployeeView, error) {
	row, err := r.repo.GetAggregate(ctx, id)
	if err != nil {
		r.logger.Error("failed to load employee", "employee_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	view := buildView(row, r.urls, r.now())
	return &view, nil
}

// ListRecent returns the latest hires, newest first, with the total headcount.
func (r *Reader) ListRecent(ctx context.Context, limit int) (*RecentEmployees, error) {
	if limit <= 0 {
		limit = r.cfg.RecentLimitOrDefault()
	}

	rows, err := r.repo.ListByHireDateDesc(ctx, limit)
	if err != nil {
		r.logger.Error("failed to list recent employees", "limit", limit, "error", err)
		return nil, err
	}

	total, err := r.repo.Count(ctx, ListFilter{})
	if err != nil {
		r.logger.Error("failed to count employees", "error", err)
		return nil, err
	}

	return &RecentEmployees{
		Employees:      r.views(rows),
		TotalEmployees: total,
	}, nil
}

// ListAll pages through employees ordered by last name, first name and id.
// A page past the end is empty rather than an error.
func (r *Reader) ListAll(ctx context.Context, page, pageSize int) (*EmployeePage, error) {
	return r.Search(ctx, ListFilter{}, page, pageSize)
}

// Search is ListAll restricted to the employees matching filter.
func (r *Reader) Search(ctx context.Context, filter ListFilter, page, pageSize int) (*EmployeePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = r.cfg.PageSizeOrDefault()
	}

	total, err := r.repo.Count(ctx, filter)
	if err != nil {
		r.logger.Error("failed to count employees", "error", err)
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	result := &EmployeePage{
		Employees:   []EmployeeSummaryView{},
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}

	offset := (page - 1) * pageSize
	if int64(offset) >= total {
		return result, nil
	}

	rows, err := r.repo.ListByName(ctx, filter, offset, pageSize)
	if err != nil {
		r.logger.Error("failed to list employees", "page", page, "page_size", pageSize, "error", err)
		return nil, err
	}

	result.Employees = r.views(rows)
	return result, nil
}

func (r *Reader) views(rows []*employeeDatamodel.Employee) []EmployeeSummaryView {
	now := r.now()
	views := make([]EmployeeSummaryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, buildView(row, r.urls, now))
	}
	return views
}
