package test

import (
	. "github.com/onsi/gomega"
	"os"
	"path"
	"path/filepath"
	"runtime"
)

func FileToBytes(fileName string) ([]byte, error) {
	_, thisFile, _, _ := runtime.Caller(0)

	urlPath, err := filepath.Abs(path.Join(thisFile, "..", "data", fileName))
	if err != nil {
		return nil, err
	}

	Expect(urlPath).To(BeAnExistingFile())

	return os.ReadFile(urlPath)
}

func FileToString(fileName string) string {
	b, err := FileToBytes(fileName)
	Expect(err).NotTo(HaveOccurred())
	return string(b)
}
