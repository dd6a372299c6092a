package integration_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kardolus/quickpatch/test"
	"github.com/onsi/gomega/gexec"

	. "github.com/onsi/gomega"
)

var (
	onceBuild  sync.Once
	binaryPath string
)

func buildBinary() error {
	var err error
	onceBuild.Do(func() {
		binaryPath, err = gexec.Build(
			"github.com/kardolus/quickpatch/cmd/quickpatch",
			"-ldflags",
			fmt.Sprintf("-X main.GitCommit=%s -X main.GitVersion=%s", gitCommit, gitVersion))
	})
	return err
}

// runCLI starts the binary with stdin and waits for it to exit.
func runCLI(stdin string, args ...string) *gexec.Session {
	command := exec.Command(binaryPath, append([]string{"--no-color"}, args...)...)
	command.Stdin = strings.NewReader(stdin)

	session, err := gexec.Start(command, nil, nil)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	EventuallyWithOffset(1, session).Should(gexec.Exit())

	return session
}

func copyFixture(fixture, dir, name string) string {
	target := filepath.Join(dir, name)
	ExpectWithOffset(1, os.WriteFile(target, []byte(test.FileToString(fixture)), 0o644)).To(Succeed())
	return target
}

func readString(name string) string {
	data, err := os.ReadFile(name)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return string(data)
}
