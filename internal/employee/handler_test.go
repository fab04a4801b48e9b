package employee_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/database"
	"github.com/frahmantamala/employee-directory/internal/core/events"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	"github.com/frahmantamala/employee-directory/internal/media"
	"github.com/frahmantamala/employee-directory/internal/placement"
	placementPostgres "github.com/frahmantamala/employee-directory/internal/placement/postgres"
	"github.com/frahmantamala/employee-directory/internal/skill"
	skillPostgres "github.com/frahmantamala/employee-directory/internal/skill/postgres"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/frahmantamala/employee-directory/internal/workstation"
	workstationPostgres "github.com/frahmantamala/employee-directory/internal/workstation/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee Handler Integration", func() {
	var (
		handle    *database.Handle
		router    *chi.Mux
		bus       *events.EventBus
		releaser  *media.Releaser
		mediaRoot string
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		var err error
		handle, err = database.Open(internal.DatabaseConfig{
			Driver:       internal.DriverSQLite,
			Source:       ":memory:",
			MaxOpenConns: 1,
		}, database.NewGormLogger(slogger, "error"))
		Expect(err).NotTo(HaveOccurred())
		Expect(database.AutoMigrate(handle.Gorm)).To(Succeed())

		mediaRoot = GinkgoT().TempDir()
		store := media.NewLocalStore(mediaRoot, "")
		bus = events.NewEventBus(slogger)
		releaser = media.NewReleaser(store, media.ReleaserConfig{MaxWorkers: 1}, slogger)
		releaser.Subscribe(bus)

		checker := placement.NewService(placementPostgres.NewOccupancyRepository(handle.SQLX), slogger)
		workstations := workstation.NewService(workstationPostgres.NewWorkstationRepository(handle.Gorm), checker, slogger)
		skills := skill.NewService(skillPostgres.NewSkillRepository(handle.Gorm), slogger)

		repo := employeePostgres.NewEmployeeRepository(handle.Gorm)
		reader := employee.NewReader(repo, store, internal.DirectoryConfig{}, slogger)
		service := employee.NewService(repo, checker, workstations, skills, store, bus, slogger)

		base := transport.NewBaseHandler(slogger)
		handler := employee.NewHandler(base, reader, service)
		wsHandler := workstation.NewHandler(base, workstations)
		skillHandler := skill.NewHandler(base, skills)

		router = chi.NewRouter()
		router.Post("/workstations", wsHandler.CreateWorkstation)
		router.Post("/skills", skillHandler.CreateSkill)
		router.Get("/employees", handler.ListEmployees)
		router.Get("/employees/recent", handler.ListRecent)
		router.Post("/employees", handler.CreateEmployee)
		router.Get("/employees/{id}", handler.GetEmployee)
		router.Patch("/employees/{id}", handler.UpdateEmployee)
		router.Delete("/employees/{id}", handler.DeleteEmployee)
		router.Put("/employees/{id}/workstation", handler.AssignWorkstation)
		router.Post("/employees/{id}/placement-check", handler.CheckPlacement)
		router.Put("/employees/{id}/skills/{skillID}", handler.SetSkillLevel)
		router.Delete("/employees/{id}/skills/{skillID}", handler.RemoveSkill)
		router.Post("/employees/{id}/images", handler.AddImage)
		router.Delete("/employees/{id}/images/{imageID}", handler.DeleteImage)
	})

	AfterEach(func() {
		bus.Wait()
		releaser.Shutdown()
		Expect(handle.Close()).To(Succeed())
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, into interface{}) {
		Expect(json.NewDecoder(w.Body).Decode(into)).To(Succeed())
	}

	createDesk := func(number string) int64 {
		w := do(http.MethodPost, "/workstations", fmt.Sprintf(`{"desk_number":%q,"name":"Desk %s"}`, number, number))
		Expect(w.Code).To(Equal(http.StatusCreated))
		var ws workstation.Workstation
		decode(w, &ws)
		return ws.ID
	}

	createEmployee := func(first, last, position, hireDate string, desk int64) employee.EmployeeView {
		fields := []string{
			fmt.Sprintf(`"first_name":%q`, first),
			fmt.Sprintf(`"last_name":%q`, last),
			fmt.Sprintf(`"email":"%s.%s@example.com"`, strings.ToLower(first), strings.ToLower(last)),
			fmt.Sprintf(`"position":%q`, position),
		}
		if hireDate != "" {
			fields = append(fields, fmt.Sprintf(`"hire_date":%q`, hireDate))
		}
		if desk != 0 {
			fields = append(fields, fmt.Sprintf(`"workstation_id":%d`, desk))
		}
		w := do(http.MethodPost, "/employees", "{"+strings.Join(fields, ",")+"}")
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
		var view employee.EmployeeView
		decode(w, &view)
		return view
	}

	errorCode := func(w *httptest.ResponseRecorder) internal.ErrorCode {
		var resp struct {
			Error struct {
				Code internal.ErrorCode `json:"code"`
			} `json:"error"`
		}
		decode(w, &resp)
		return resp.Error.Code
	}

	It("creates an employee and returns the assembled view", func() {
		desk := createDesk("12")
		view := createEmployee("Anna", "Ivanova", "Designer", "2023-04-01", desk)

		Expect(view.FullName).To(Equal("Ivanova Anna"))
		Expect(*view.HireDate).To(Equal("2023-04-01"))
		Expect(view.Workstation.DeskNumber).To(Equal("12"))
		Expect(view.CoverImage).To(BeNil())
		Expect(view.GalleryImages).To(BeEmpty())

		w := do(http.MethodGet, fmt.Sprintf("/employees/%d", view.ID), "")
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("answers 404 for unknown employees", func() {
		w := do(http.MethodGet, "/employees/999", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(errorCode(w)).To(Equal(internal.ErrCodeEmployeeNotFound))
	})

	It("rejects a developer seated next to a tester", func() {
		createEmployee("Tess", "Qa", "Tester", "", createDesk("5"))
		desk := createDesk("6")

		w := do(http.MethodPost, "/employees", fmt.Sprintf(
			`{"first_name":"Dev","last_name":"Ops","email":"dev@example.com","position":"Developer","workstation_id":%d}`, desk))
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(errorCode(w)).To(Equal(internal.ErrCodePlacementConflict))

		w = do(http.MethodGet, "/employees", "")
		var page employee.EmployeePage
		decode(w, &page)
		Expect(page.Total).To(Equal(int64(1)))
	})

	It("checks a placement without saving it", func() {
		createEmployee("Dev", "One", "Backend developer", "", createDesk("1"))
		tester := createEmployee("Tess", "Qa", "Tester", "", 0)
		desk := createDesk("2")

		w := do(http.MethodPost, fmt.Sprintf("/employees/%d/placement-check", tester.ID), fmt.Sprintf(`{"workstation_id":%d}`, desk))
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp employee.PlacementCheckResponse
		decode(w, &resp)
		Expect(resp.OK).To(BeFalse())
		Expect(resp.Conflicts).To(HaveLen(1))
		Expect(resp.Conflicts[0].DeskB).To(Equal("1"))

		w = do(http.MethodGet, fmt.Sprintf("/employees/%d", tester.ID), "")
		var view employee.EmployeeView
		decode(w, &view)
		Expect(view.Workstation).To(BeNil())
	})

	It("moves an employee between desks", func() {
		emp := createEmployee("Pat", "Lee", "Analyst", "", 0)
		desk := createDesk("40")

		w := do(http.MethodPut, fmt.Sprintf("/employees/%d/workstation", emp.ID), fmt.Sprintf(`{"workstation_id":%d}`, desk))
		Expect(w.Code).To(Equal(http.StatusOK))
		var view employee.EmployeeView
		decode(w, &view)
		Expect(view.Workstation.ID).To(Equal(desk))

		w = do(http.MethodPut, fmt.Sprintf("/employees/%d/workstation", emp.ID), `{"workstation_id":null}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		decode(w, &view)
		Expect(view.Workstation).To(BeNil())
	})

	It("lists recent hires and pages by name", func() {
		createEmployee("Boris", "Petrov", "Manager", "2020-01-10", 0)
		createEmployee("Anna", "Antonova", "Manager", "2024-03-01", 0)
		createEmployee("Ivan", "Sidorov", "Manager", "", 0)

		w := do(http.MethodGet, "/employees/recent?limit=2", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var recent employee.RecentEmployees
		decode(w, &recent)
		Expect(recent.TotalEmployees).To(Equal(int64(3)))
		Expect(recent.Employees).To(HaveLen(2))
		Expect(recent.Employees[0].LastName).To(Equal("Antonova"))
		Expect(recent.Employees[1].LastName).To(Equal("Petrov"))

		w = do(http.MethodGet, "/employees?page=2&page_size=2", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var page employee.EmployeePage
		decode(w, &page)
		Expect(page.Employees).To(HaveLen(1))
		Expect(page.Employees[0].LastName).To(Equal("Sidorov"))
		Expect(page.HasPrevious).To(BeTrue())
	})

	It("rates skills within the scale", func() {
		emp := createEmployee("Pat", "Lee", "Developer", "", 0)
		w := do(http.MethodPost, "/skills", `{"name":"Go"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var sk skill.SkillResponse
		decode(w, &sk)

		path := fmt.Sprintf("/employees/%d/skills/%d", emp.ID, sk.ID)
		Expect(do(http.MethodPut, path, `{"level":11}`).Code).To(Equal(http.StatusBadRequest))

		w = do(http.MethodPut, path, `{"level":7}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		var skills employee.SkillsResponse
		decode(w, &skills)
		Expect(skills.Skills).To(Equal([]employee.SkillRatingView{{SkillID: sk.ID, Name: "Go", Level: 7}}))

		Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNotFound))
	})

	It("registers images and releases their files on delete", func() {
		emp := createEmployee("Pat", "Lee", "Developer", "", 0)
		Expect(os.MkdirAll(filepath.Join(mediaRoot, "photos"), 0o755)).To(Succeed())
		for _, name := range []string{"cover.jpg", "desk.jpg"} {
			Expect(os.WriteFile(filepath.Join(mediaRoot, "photos", name), []byte("img"), 0o644)).To(Succeed())
		}

		imagesPath := fmt.Sprintf("/employees/%d/images", emp.ID)
		Expect(do(http.MethodPost, imagesPath, `{"file_path":"photos/missing.jpg"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, imagesPath, `{"file_path":"photos/desk.jpg","order":1}`).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodPost, imagesPath, `{"file_path":"photos/cover.jpg","order":0}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var images employee.ImagesResponse
		decode(w, &images)
		Expect(images.CoverImage.URL).To(Equal("/media/photos/cover.jpg"))
		Expect(images.GalleryImages).To(HaveLen(1))

		Expect(do(http.MethodDelete, fmt.Sprintf("/employees/%d", emp.ID), "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, fmt.Sprintf("/employees/%d", emp.ID), "").Code).To(Equal(http.StatusNotFound))

		bus.Wait()
		releaser.Wait()
		Expect(filepath.Join(mediaRoot, "photos", "cover.jpg")).NotTo(BeAnExistingFile())
		Expect(filepath.Join(mediaRoot, "photos", "desk.jpg")).NotTo(BeAnExistingFile())
	})

	It("never releases a file another employee's image still shows", func() {
		owner := createEmployee("Pat", "Lee", "Developer", "", 0)
		other := createEmployee("Sam", "Kim", "Manager", "", 0)
		Expect(os.MkdirAll(filepath.Join(mediaRoot, "photos"), 0o755)).To(Succeed())
		for _, name := range []string{"a.jpg", "b.jpg"} {
			Expect(os.WriteFile(filepath.Join(mediaRoot, "photos", name), []byte("img"), 0o644)).To(Succeed())
		}

		ownerImages := fmt.Sprintf("/employees/%d/images", owner.ID)
		otherImages := fmt.Sprintf("/employees/%d/images", other.ID)
		Expect(do(http.MethodPost, ownerImages, `{"file_path":"photos/a.jpg"}`).Code).To(Equal(http.StatusCreated))

		for _, p := range []string{"photos/a.jpg", "./photos/a.jpg"} {
			w := do(http.MethodPost, otherImages, fmt.Sprintf(`{"file_path":%q}`, p))
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(errorCode(w)).To(Equal(internal.ErrCodeImagePathTaken))
		}
		Expect(do(http.MethodPost, otherImages, `{"file_path":"photos/b.jpg"}`).Code).To(Equal(http.StatusCreated))

		Expect(do(http.MethodDelete, fmt.Sprintf("/employees/%d", owner.ID), "").Code).To(Equal(http.StatusNoContent))
		bus.Wait()
		releaser.Wait()

		Expect(filepath.Join(mediaRoot, "photos", "a.jpg")).NotTo(BeAnExistingFile())
		Expect(filepath.Join(mediaRoot, "photos", "b.jpg")).To(BeAnExistingFile())

		result, err := media.Sweep(context.Background(), media.NewLocalStore(mediaRoot, ""),
			employeePostgres.NewEmployeeRepository(handle.Gorm), false, slog.New(slog.NewTextHandler(io.Discard, nil)))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Orphans).To(BeEmpty())
		Expect(filepath.Join(mediaRoot, "photos", "b.jpg")).To(BeAnExistingFile())
	})

	It("searches and filters the directory", func() {
		desk := createDesk("12")
		createEmployee("Anna", "Ivanova", "Developer", "", desk)
		createEmployee("Ivan", "Petrov", "Developer", "", 0)
		createEmployee("Olga", "Ivanova", "Tester", "", 0)

		list := func(query string) []string {
			w := do(http.MethodGet, "/employees?"+query, "")
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
			var page employee.EmployeePage
			decode(w, &page)
			Expect(page.Total).To(Equal(int64(len(page.Employees))))
			names := make([]string, 0, len(page.Employees))
			for _, e := range page.Employees {
				names = append(names, e.FullName)
			}
			return names
		}

		Expect(list("q=ivanova")).To(Equal([]string{"Ivanova Anna", "Ivanova Olga"}))
		Expect(list("q=ivan.petrov")).To(Equal([]string{"Petrov Ivan"}))
		Expect(list("position=Developer")).To(Equal([]string{"Ivanova Anna", "Petrov Ivan"}))
		Expect(list(fmt.Sprintf("workstation_id=%d", desk))).To(Equal([]string{"Ivanova Anna"}))
		Expect(list("q=ivanova&position=Tester")).To(Equal([]string{"Ivanova Olga"}))

		w := do(http.MethodGet, "/employees?workstation_id=abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal(internal.ErrCodeInvalidRequest))
	})

	It("rejects unknown fields in the body", func() {
		w := do(http.MethodPost, "/employees", `{"first_name":"A","nickname":"B"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal(internal.ErrCodeInvalidRequest))
	})
})
