package media_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/frahmantamala/employee-directory/internal/media"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type staticReferences []string

func (s staticReferences) ListImagePaths(context.Context) ([]string, error) {
	return s, nil
}

var _ = Describe("Sweep", func() {
	var (
		root   string
		store  *media.LocalStore
		logger *slog.Logger
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		store = media.NewLocalStore(root, "")
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))

		writeFile(root, "employee_images/kept.jpg")
		writeFile(root, "employee_images/orphan.jpg")
	})

	It("only reports orphans on a dry run", func() {
		result, err := media.Sweep(context.Background(), store, staticReferences{"employee_images/kept.jpg"}, true, logger)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Scanned).To(Equal(2))
		Expect(result.Orphans).To(ConsistOf("employee_images/orphan.jpg"))
		Expect(result.Released).To(BeZero())

		exists, err := store.Exists("employee_images/orphan.jpg")
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})

	It("removes unreferenced files", func() {
		result, err := media.Sweep(context.Background(), store, staticReferences{"employee_images/kept.jpg"}, false, logger)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Released).To(Equal(1))

		exists, _ := store.Exists("employee_images/orphan.jpg")
		Expect(exists).To(BeFalse())
		exists, _ = store.Exists("employee_images/kept.jpg")
		Expect(exists).To(BeTrue())
	})

	It("keeps files referenced through a non-canonical path", func() {
		exists, err := store.Exists("./employee_images/kept.jpg")
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())

		refs := staticReferences{"./employee_images/kept.jpg", "employee_images//orphan.jpg"}
		result, err := media.Sweep(context.Background(), store, refs, false, logger)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Orphans).To(BeEmpty())

		exists, _ = store.Exists("employee_images/kept.jpg")
		Expect(exists).To(BeTrue())
		exists, _ = store.Exists("employee_images/orphan.jpg")
		Expect(exists).To(BeTrue())
	})
})
