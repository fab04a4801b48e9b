package skill_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/frahmantamala/employee-directory/internal"
	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
	"github.com/frahmantamala/employee-directory/internal/skill"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockRepository implements skill.RepositoryAPI for testing
type MockRepository struct {
	skills     map[int64]*skillDatamodel.Skill
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		skills: make(map[int64]*skillDatamodel.Skill),
		nextID: 1,
	}
}

func (m *MockRepository) GetAll(context.Context) ([]*skillDatamodel.Skill, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*skillDatamodel.Skill
	for id := int64(1); id < m.nextID; id++ {
		if s, ok := m.skills[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*skillDatamodel.Skill, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.skills[id], nil
}

func (m *MockRepository) Create(_ context.Context, s *skillDatamodel.Skill) error {
	if m.shouldFail {
		return m.failError
	}
	for _, existing := range m.skills {
		if existing.Name == s.Name {
			return internal.ErrSkillNameTaken
		}
	}
	s.ID = m.nextID
	m.nextID++
	m.skills[s.ID] = s
	return nil
}

func (m *MockRepository) Update(_ context.Context, s *skillDatamodel.Skill) error {
	if m.shouldFail {
		return m.failError
	}
	m.skills[s.ID] = s
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	if _, ok := m.skills[id]; !ok {
		return false, nil
	}
	delete(m.skills, id)
	return true, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("Skill Service", func() {
	var (
		mockRepo *MockRepository
		service  *skill.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = skill.NewService(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("CreateSkill", func() {
		It("should create a skill with a trimmed name", func() {
			s, err := service.CreateSkill(ctx, &skill.CreateSkillDTO{Name: "  Go  ", Description: "Backend language"})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.ID).To(Equal(int64(1)))
			Expect(s.Name).To(Equal("Go"))
		})

		It("should reject an empty name", func() {
			_, err := service.CreateSkill(ctx, &skill.CreateSkillDTO{Name: " "})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should surface duplicate names as a conflict", func() {
			_, err := service.CreateSkill(ctx, &skill.CreateSkillDTO{Name: "SQL"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateSkill(ctx, &skill.CreateSkillDTO{Name: "SQL"})
			Expect(errors.Is(err, internal.ErrSkillNameTaken)).To(BeTrue())
		})
	})

	Describe("GetSkill", func() {
		It("should return not found for an unknown id", func() {
			_, err := service.GetSkill(ctx, 42)
			Expect(errors.Is(err, internal.ErrSkillNotFound)).To(BeTrue())
		})

		It("should propagate repository errors", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))
			_, err := service.GetSkill(ctx, 1)
			Expect(err).To(MatchError("database error"))
		})
	})

	Describe("UpdateSkill", func() {
		It("should only change provided fields", func() {
			created, err := service.CreateSkill(ctx, &skill.CreateSkillDTO{Name: "Docker", Description: "Containers"})
			Expect(err).NotTo(HaveOccurred())

			name := "Kubernetes"
			updated, err := service.UpdateSkill(ctx, created.ID, &skill.UpdateSkillDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Kubernetes"))
			Expect(updated.Description).To(Equal("Containers"))
		})
	})

	Describe("DeleteSkill", func() {
		It("should return not found when nothing was deleted", func() {
			Expect(errors.Is(service.DeleteSkill(ctx, 9), internal.ErrSkillNotFound)).To(BeTrue())
		})

		It("should delete an existing skill", func() {
			created, err := service.CreateSkill(ctx, &skill.CreateSkillDTO{Name: "Python"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.DeleteSkill(ctx, created.ID)).To(Succeed())

			skills, err := service.ListSkills(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(skills).To(BeEmpty())
		})
	})
})
