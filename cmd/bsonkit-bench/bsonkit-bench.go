package main

import (
	"context"
	"flag"
	"os"

	"github.com/ikmak/bsonkit/benchmark"
)

func main() {
	err := mainReal()
	if err != nil {
		os.Stderr.Write([]byte(err.Error() + "\n"))
		os.Exit(-1)
	}
}

func mainReal() error {
	outputName := flag.String("output", "perf.json", "path of the perf report")
	flag.Parse()

	file, err := os.Create(*outputName)
	if err != nil {
		return err
	}
	defer file.Close()

	return benchmark.RunAll(context.Background(), file)
}
