package employee

import (
	"sort"
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
)

type WorkstationView struct {
	ID         int64  `json:"id"`
	DeskNumber string `json:"desk_number"`
	Name       string `json:"name"`
	Location   string `json:"location,omitempty"`
	IsActive   bool   `json:"is_active"`
}

type ImageView struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	FilePath  string    `json:"file_path"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

type SkillRatingView struct {
	SkillID int64  `json:"skill_id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
}

// EmployeeView is the assembled aggregate: the employee, its desk, its
// images split into cover and gallery, and its skill ratings.
type EmployeeView struct {
	ID                 int64             `json:"id"`
	FullName           string            `json:"full_name"`
	FirstName          string            `json:"first_name"`
	LastName           string            `json:"last_name"`
	Gender             Gender            `json:"gender,omitempty"`
	Position           string            `json:"position"`
	HireDate           *string           `json:"hire_date"`
	WorkExperienceDays int               `json:"work_experience_days"`
	Email              string            `json:"email"`
	Description        string            `json:"description"`
	Workstation        *WorkstationView  `json:"workstation"`
	CoverImage         *ImageView        `json:"cover_image"`
	GalleryImages      []ImageView       `json:"gallery_images"`
	Skills             []SkillRatingView `json:"skills"`
}

// EmployeeSummaryView is what list pages show. It carries the full
// aggregate so cards can render a cover image and skills.
type EmployeeSummaryView = EmployeeView

type RecentEmployees struct {
	Employees      []EmployeeSummaryView `json:"employees"`
	TotalEmployees int64                 `json:"total_employees"`
}

type EmployeePage struct {
	Employees   []EmployeeSummaryView `json:"employees"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	Total       int64                 `json:"total"`
	TotalPages  int                   `json:"total_pages"`
	HasNext     bool                  `json:"has_next"`
	HasPrevious bool                  `json:"has_previous"`
}

// URLBuilder turns a stored file path into a public URL.
type URLBuilder interface {
	URL(relPath string) string
}

func sortImages(images []employeeDatamodel.EmployeeImage) {
	sort.SliceStable(images, func(i, j int) bool {
		a, b := images[i], images[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func imageViews(images []employeeDatamodel.EmployeeImage, urls URLBuilder) []ImageView {
	sorted := append([]employeeDatamodel.EmployeeImage(nil), images...)
	sortImages(sorted)

	views := make([]ImageView, 0, len(sorted))
	for _, img := range sorted {
		views = append(views, ImageView{
			ID:        img.ID,
			URL:       urls.URL(img.FilePath),
			FilePath:  img.FilePath,
			Order:     img.DisplayOrder,
			CreatedAt: img.CreatedAt,
		})
	}
	return views
}

func skillViews(skills []employeeDatamodel.EmployeeSkill) []SkillRatingView {
	views := make([]SkillRatingView, 0, len(skills))
	for _, s := range skills {
		view := SkillRatingView{SkillID: s.SkillID, Level: s.Level}
		if s.Skill != nil {
			view.Name = s.Skill.Name
		}
		views = append(views, view)
	}
	return views
}

func workstationView(ws *workstationDatamodel.Workstation) *WorkstationView {
	if ws == nil {
		return nil
	}
	return &WorkstationView{
		ID:         ws.ID,
		DeskNumber: ws.DeskNumber,
		Name:       ws.Name,
		Location:   ws.Location,
		IsActive:   ws.IsActive,
	}
}

// buildView assembles the view of a preloaded employee row.
func buildView(row *employeeDatamodel.Employee, urls URLBuilder, now time.Time) EmployeeView {
	view := EmployeeView{
		ID:                 row.ID,
		FullName:           FullName(row.FirstName, row.LastName),
		FirstName:          row.FirstName,
		LastName:           row.LastName,
		Gender:             Gender(row.Gender),
		Position:           row.Position,
		WorkExperienceDays: WorkExperienceDays(row.HireDate, now),
		Email:              row.Email,
		Description:        row.Description,
		Workstation:        workstationView(row.Workstation),
		GalleryImages:      []ImageView{},
		Skills:             skillViews(row.Skills),
	}

	if row.HireDate != nil {
		formatted := row.HireDate.Format(time.DateOnly)
		view.HireDate = &formatted
	}

	images := imageViews(row.Images, urls)
	if len(images) > 0 {
		cover := images[0]
		view.CoverImage = &cover
		view.GalleryImages = images[1:]
	}

	return view
}
