package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/frahmantamala/employee-directory/internal"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/skill"
	"github.com/frahmantamala/employee-directory/internal/workstation"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample desks, skills and employees for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApplication()
		if err != nil {
			log.Fatalf("failed to init application: %v", err)
		}
		defer app.Close()

		ctx := context.Background()

		if clearData {
			if err := clearDirectory(app.DB.Gorm); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			app.Logger.Info("existing directory data cleared")
		}

		desks, err := seedWorkstations(ctx, app)
		if err != nil {
			log.Fatalf("failed to seed workstations: %v", err)
		}

		skills, err := seedSkills(ctx, app)
		if err != nil {
			log.Fatalf("failed to seed skills: %v", err)
		}

		if err := seedEmployees(ctx, app, desks, skills); err != nil {
			log.Fatalf("failed to seed employees: %v", err)
		}

		app.Logger.Info("directory seeded",
			"workstations", len(desks),
			"skills", len(skills))
	},
}

// clearDirectory removes rows child tables first. Stored image files are
// left for the media sweep.
func clearDirectory(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&employeeDatamodel.EmployeeImage{},
			&employeeDatamodel.EmployeeSkill{},
			&employeeDatamodel.Employee{},
			&skillDatamodel.Skill{},
			&workstationDatamodel.Workstation{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// seedWorkstations returns workstation ids keyed by desk number.
func seedWorkstations(ctx context.Context, app *application) (map[string]int64, error) {
	inactive := false
	desks := []workstation.CreateWorkstationDTO{
		{DeskNumber: "1", Name: "Window 1", Location: "Floor 2, east wing", Equipment: "27\" monitor, docking station"},
		{DeskNumber: "2", Name: "Window 2", Location: "Floor 2, east wing", Equipment: "27\" monitor"},
		{DeskNumber: "3", Name: "Window 3", Location: "Floor 2, east wing"},
		{DeskNumber: "4", Name: "Corner", Location: "Floor 2, east wing", Equipment: "two 24\" monitors"},
		{DeskNumber: "5", Name: "Open space 5", Location: "Floor 2, open space"},
		{DeskNumber: "6", Name: "Open space 6", Location: "Floor 2, open space"},
		{DeskNumber: "7", Name: "Open space 7", Location: "Floor 2, open space"},
		{DeskNumber: "8", Name: "Open space 8", Location: "Floor 2, open space", IsActive: &inactive, Notes: "chair broken"},
		{DeskNumber: "A-1", Name: "Hot desk", Location: "Lobby", Notes: "not numbered, free seating"},
	}

	ids := make(map[string]int64, len(desks))
	for i := range desks {
		ws, err := app.Workstations.CreateWorkstation(ctx, &desks[i])
		if errors.Is(err, internal.ErrDeskNumberTaken) {
			existing, listErr := app.Workstations.ListWorkstations(ctx, workstation.ListFilter{})
			if listErr != nil {
				return nil, listErr
			}
			for _, e := range existing {
				ids[e.DeskNumber] = e.ID
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		ids[ws.DeskNumber] = ws.ID
	}
	return ids, nil
}

// seedSkills returns skill ids keyed by name.
func seedSkills(ctx context.Context, app *application) (map[string]int64, error) {
	skills := []skill.CreateSkillDTO{
		{Name: "Go", Description: "Backend services"},
		{Name: "SQL", Description: "Relational databases"},
		{Name: "TypeScript", Description: "Frontend applications"},
		{Name: "Test automation", Description: "Automated regression suites"},
		{Name: "Communication"},
	}

	ids := make(map[string]int64, len(skills))
	for i := range skills {
		sk, err := app.Skills.CreateSkill(ctx, &skills[i])
		if errors.Is(err, internal.ErrSkillNameTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ids[sk.Name] = sk.ID
	}

	existing, err := app.Skills.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	for _, sk := range existing {
		ids[sk.Name] = sk.ID
	}
	return ids, nil
}

type seedEmployee struct {
	first, last, gender, email, position, hired, desk string
	skills                                           map[string]int
}

// seedEmployees seats people through the employee service, so the placement
// rule is enforced on the sample data too.
func seedEmployees(ctx context.Context, app *application, desks, skills map[string]int64) error {
	people := []seedEmployee{
		{"Anna", "Ivanova", "female", "anna.ivanova@example.com", "Backend developer", "2021-03-15", "1",
			map[string]int{"Go": 9, "SQL": 7}},
		{"Boris", "Smirnov", "male", "boris.smirnov@example.com", "Frontend developer", "2022-07-01", "2",
			map[string]int{"TypeScript": 8}},
		{"Chen", "Li", "other", "chen.li@example.com", "Project manager", "2019-11-20", "3",
			map[string]int{"Communication": 9}},
		{"Daria", "Orlova", "female", "daria.orlova@example.com", "QA tester", "2023-02-01", "4",
			map[string]int{"Test automation": 8, "SQL": 5}},
		{"Emil", "Novak", "male", "emil.novak@example.com", "Designer", "2024-05-06", "5", nil},
		{"Farida", "Karimova", "female", "farida.karimova@example.com", "Tester", "2024-09-02", "A-1",
			map[string]int{"Test automation": 6}},
		{"Georg", "Weber", "male", "georg.weber@example.com", "Developer", "", "", map[string]int{"Go": 4}},
	}

	for _, p := range people {
		dto := &employee.CreateEmployeeDTO{
			FirstName: p.first,
			LastName:  p.last,
			Gender:    p.gender,
			Email:     p.email,
			Position:  p.position,
		}
		if p.hired != "" {
			hired := p.hired
			dto.HireDate = &hired
		}
		if id, ok := desks[p.desk]; ok {
			dto.WorkstationID = &id
		}

		emp, err := app.Employees.CreateEmployee(ctx, dto)
		if errors.Is(err, internal.ErrEmailTaken) {
			app.Logger.Info("employee already seeded", "email", p.email)
			continue
		}
		if err != nil {
			return err
		}

		for name, level := range p.skills {
			skillID, ok := skills[name]
			if !ok {
				continue
			}
			if _, err := app.Employees.SetSkillLevel(ctx, emp.ID, skillID, &employee.SetSkillLevelDTO{Level: level}); err != nil {
				return err
			}
		}
	}
	return nil
}
