package media_test

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/frahmantamala/employee-directory/internal/media"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func writeFile(root, rel string) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	Expect(os.MkdirAll(filepath.Dir(full), 0o755)).To(Succeed())
	Expect(os.WriteFile(full, []byte("jpeg"), 0o644)).To(Succeed())
}

var _ = Describe("LocalStore", func() {
	var (
		root  string
		store *media.LocalStore
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		store = media.NewLocalStore(root, "/media")
	})

	It("builds public urls under the base url", func() {
		Expect(store.URL("employee_images/a b.jpg")).To(Equal("/media/employee_images/a%20b.jpg"))
		Expect(store.URL("")).To(BeEmpty())
	})

	It("removes a stored file", func() {
		writeFile(root, "employee_images/1.jpg")

		Expect(store.Remove("employee_images/1.jpg")).To(Succeed())

		exists, err := store.Exists("employee_images/1.jpg")
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeFalse())
	})

	It("treats a missing file as already removed", func() {
		Expect(store.Remove("employee_images/missing.jpg")).To(Succeed())
	})

	It("rejects paths that leave the root", func() {
		err := store.Remove("../outside.jpg")
		Expect(errors.Is(err, media.ErrPathOutsideRoot)).To(BeTrue())

		err = store.Remove("/etc/passwd")
		Expect(errors.Is(err, media.ErrPathOutsideRoot)).To(BeTrue())
	})

	It("walks every regular file", func() {
		writeFile(root, "employee_images/1.jpg")
		writeFile(root, "employee_images/2019/2.jpg")

		var seen []string
		Expect(store.Walk(func(rel string) error {
			seen = append(seen, rel)
			return nil
		})).To(Succeed())
		Expect(seen).To(ConsistOf("employee_images/1.jpg", "employee_images/2019/2.jpg"))
	})

	It("walks a missing root as empty", func() {
		missing := media.NewLocalStore(filepath.Join(root, "nope"), "")
		Expect(missing.Walk(func(string) error {
			Fail("no files expected")
			return nil
		})).To(Succeed())
	})
})

var _ = Describe("CleanPath", func() {
	DescribeTable("canonicalises paths inside the root",
		func(raw, expected string) {
			clean, err := media.CleanPath(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(clean).To(Equal(expected))
		},
		Entry("already canonical", "photos/a.jpg", "photos/a.jpg"),
		Entry("leading dot segment", "./photos/a.jpg", "photos/a.jpg"),
		Entry("inner dot segment and double slash", "photos/.//a.jpg", "photos/a.jpg"),
		Entry("backslashes", `photos\a.jpg`, "photos/a.jpg"),
		Entry("surrounding space", "  a.jpg ", "a.jpg"),
	)

	DescribeTable("rejects paths that are not inside the root",
		func(raw string) {
			_, err := media.CleanPath(raw)
			Expect(err).To(MatchError(media.ErrPathOutsideRoot))
		},
		Entry("empty", ""),
		Entry("absolute", "/etc/passwd"),
		Entry("parent", "../a.jpg"),
		Entry("parent in the middle", "photos/../../a.jpg"),
		Entry("the root", "."),
		Entry("the root with a slash", "./"),
	)
})
