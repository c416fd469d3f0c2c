package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const docSep = "\n---\n"

// eachDoc calls f on every document of every file, "-" or no files
// meaning standard input, writing separators between results.
func eachDoc(w io.Writer, in io.Reader, files []string, f func(w io.Writer, doc []byte) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	first := true
	for _, file := range files {
		d, err := readFile(file, in)
		if err != nil {
			return err
		}
		for i, doc := range bytes.Split(d, []byte(docSep)) {
			if !first {
				if _, err := w.Write([]byte("---\n")); err != nil {
					return err
				}
			}
			first = false
			if err := f(w, doc); err != nil {
				return fmt.Errorf("error processing %s document %d: %w", file, i, err)
			}
		}
	}
	return nil
}

func readFile(file string, in io.Reader) ([]byte, error) {
	if file == "-" {
		d, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("error reading: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	return d, nil
}
