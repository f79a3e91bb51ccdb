package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/sarchlab/bfzk/config"
	"github.com/sarchlab/bfzk/core"
	"github.com/sarchlab/bfzk/program"
	"github.com/sarchlab/bfzk/verify"
)

// main checks every program of a suite against its compiled form
func main() {
	suitePath := os.Getenv("BFZK_SUITE_YAML")
	if suitePath == "" {
		suitePath = "test/suite/suite.yaml"
	}

	cfg := config.Default().WithMaxSteps(10_000_000)
	if cfgPath := os.Getenv("BFZK_CONFIG_YAML"); cfgPath != "" {
		var err error
		cfg, err = config.LoadFromYAML(cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	suite, err := program.LoadSuite(suitePath)
	if err != nil {
		log.Fatal(err)
	}

	reports := make([]*verify.VerificationReport, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		p, err := c.Program()
		if err != nil {
			log.Fatalf("%s: %v", c.Name, err)
		}

		in, err := c.Inputs()
		if err != nil {
			log.Fatalf("%s: %v", c.Name, err)
		}

		report := verify.GenerateReport(c.Name, p, in, cfg)
		if expected, ok := c.Expected(); ok {
			report.WithExpected(expected)
		}

		report.WriteReport(os.Stdout)
		reports = append(reports, report)
	}

	verify.WriteSummary(os.Stdout, reports)

	for _, r := range reports {
		if !r.OK() {
			log.Fatalf("%s verification failed", r.Name)
		}
	}
}
