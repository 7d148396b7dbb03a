package utils

import (
	"io"
	"os"
	"strings"
)

// ReadFromStdin reads piped standard input. It returns "" without blocking
// when stdin is a terminal or an empty file.
func ReadFromStdin() (string, error) {
	return readFrom(os.Stdin)
}

func readFrom(f *os.File) (string, error) {
	stat, err := f.Stat()
	if err != nil {
		return "", err
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	if stat.Mode().IsRegular() && stat.Size() == 0 {
		return "", nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
