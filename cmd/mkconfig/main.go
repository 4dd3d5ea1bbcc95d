//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"macromedia/config"
)

func main() {
	var (
		outPath   = flag.String("out", "", "Write the built-in configuration to this file (- for stdout).")
		checkPath = flag.String("check", "", "Validate this configuration file.")
	)
	flag.Parse()

	switch {
	case *checkPath != "":
		if err := check(os.Stdout, *checkPath); err != nil {
			fatalf("%v", err)
		}
	case *outPath != "":
		if err := writeDefault(*outPath); err != nil {
			fatalf("%v", err)
		}
	default:
		fatalf("usage: mkconfig -out pad.yaml\n       mkconfig -check pad.yaml")
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func writeDefault(path string) error {
	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func check(w io.Writer, path string) error {
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: ok (%dx%d matrix, %s, tick %v)\n",
		path, len(c.Matrix.Rows), len(c.Matrix.Columns), c.Matrix.Orientation, c.Tick)
	return err
}
