package fsio_test

import (
	"github.com/kardolus/quickpatch/internal/fsio"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUnitFsio(t *testing.T) {
	spec.Run(t, "Testing document file IO", testFsio, spec.Report(report.Terminal{}))
}

func testFsio(t *testing.T, when spec.G, it spec.S) {
	var (
		dir    string
		reader *fsio.RealReader
		writer *fsio.RealWriter
	)

	it.Before(func() {
		RegisterTestingT(t)
		dir = t.TempDir()
		reader = &fsio.RealReader{}
		writer = &fsio.RealWriter{}
	})

	when("WriteFile()", func() {
		it("replaces the content of an existing file and keeps its mode", func() {
			target := filepath.Join(dir, "script.sh")
			Expect(os.WriteFile(target, []byte("echo old\n"), 0o750)).To(Succeed())

			Expect(writer.WriteFile(target, []byte("echo new\n"))).To(Succeed())

			data, err := reader.ReadFile(target)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("echo new\n"))

			st, err := os.Stat(target)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Mode().Perm()).To(Equal(os.FileMode(0o750)))
		})

		it("creates a missing file", func() {
			target := filepath.Join(dir, "new.txt")

			Expect(writer.WriteFile(target, []byte("hello"))).To(Succeed())

			data, err := reader.ReadFile(target)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("hello"))
		})

		it("leaves no temp files behind", func() {
			target := filepath.Join(dir, "doc.txt")
			Expect(os.WriteFile(target, []byte("a"), 0o644)).To(Succeed())

			Expect(writer.WriteFile(target, []byte("b"))).To(Succeed())

			entries, err := os.ReadDir(dir)
			Expect(err).NotTo(HaveOccurred())

			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			Expect(names).To(ConsistOf("doc.txt", "doc.txt.lock"))
		})

		it("fails when the directory does not exist", func() {
			err := writer.WriteFile(filepath.Join(dir, "missing", "doc.txt"), []byte("x"))
			Expect(err).To(HaveOccurred())
		})
	})

	when("FileLock", func() {
		it("can be taken again after it is released", func() {
			target := filepath.Join(dir, "doc.txt")

			first := fsio.NewFileLock(target)
			Expect(first.Lock()).To(Succeed())
			Expect(first.Unlock()).To(Succeed())

			second := fsio.NewFileLock(target)
			Expect(second.Lock()).To(Succeed())
			Expect(second.Unlock()).To(Succeed())
		})

		it("keeps a later locker out while a waiter holds the lock", func() {
			target := filepath.Join(dir, "diffs.json")

			first := fsio.NewFileLock(target)
			Expect(first.Lock()).To(Succeed())

			second := fsio.NewFileLock(target)
			secondLocked := make(chan error, 1)
			go func() { secondLocked <- second.Lock() }()
			Consistently(secondLocked, 200*time.Millisecond).ShouldNot(Receive())

			Expect(first.Unlock()).To(Succeed())
			Eventually(secondLocked, 5*time.Second).Should(Receive(BeNil()))

			third := fsio.NewFileLock(target)
			thirdLocked := make(chan error, 1)
			go func() { thirdLocked <- third.Lock() }()
			Consistently(thirdLocked, 300*time.Millisecond).ShouldNot(Receive())

			Expect(second.Unlock()).To(Succeed())
			Eventually(thirdLocked, 5*time.Second).Should(Receive(BeNil()))
			Expect(third.Unlock()).To(Succeed())
		})

		it("tolerates unlocking a lock that was never taken", func() {
			Expect(fsio.NewFileLock(filepath.Join(dir, "x")).Unlock()).To(Succeed())
		})
	})
}
