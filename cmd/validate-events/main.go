package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/activity-consumer/pkg/validate"
)

// CLI-приложение для офлайн-валидации событий активности.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	ctx := context.Background()
	eventValidator := validate.NewEventValidator()

	format := validate.InputFormat(*formatStr)

	// stdin вариант: считаем, что jsonl
	path := *inputPath
	if path == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		path = "/dev/stdin"
	}

	summary, err := validate.ValidateFile(ctx, eventValidator, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
