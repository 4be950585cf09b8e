package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/samber/lo"
	flag "github.com/spf13/pflag"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

const resultsFile = "benchmark_results.csv"

type TestMetadata struct {
	Name     string
	Groups   int
	Lessons  int // Lessons per group
	Teachers int
	Input    []model.LessonRequirement
}

type BenchmarkResult struct {
	Strategy    model.ProbeStrategy
	Test        TestMetadata
	Seed        uint64
	Duration    int64 // Microseconds
	Placed      uint64
	Abandoned   uint64
	Recoverable int
	FillRatio   float64
	Valid       bool
}

func main() {
	seedsPtr := flag.Int("seeds", 20, "number of seeds to run per test and strategy")
	filePathPtr := flag.String("file", "", "optional input file benchmarked along with the generated tests")
	flag.Parse()
	seeds := *seedsPtr

	tests := getTests()
	if *filePathPtr != "" {
		input, err := model.InputFromFile(*filePathPtr)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		tests = append(tests, newTest(*filePathPtr, input))
	}
	strategies := getStrategies()
	results := make([]BenchmarkResult, 0, len(tests)*len(strategies)*seeds)

	for _, test := range tests {
		for _, strategy := range strategies {
			fmt.Printf("Benchmarking test \"%v\" with strategy \"%v\" over %v seeds\n", test.Name, strategy, seeds)
			for seed := range uint64(seeds) {
				results = append(results, measure(strategy, test, seed+1))
			}
		}
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

func getTests() []TestMetadata {
	shapes := [][3]int{
		{1, 10, 5},  // Single group, light load
		{4, 12, 6},  // Typical school
		{8, 20, 8},  // Dense week
		{10, 24, 6}, // Over-subscribed teachers
	}
	return lo.Map(shapes, func(shape [3]int, _ int) TestMetadata {
		groups, lessons, teachers := shape[0], shape[1], shape[2]
		test := newTest(fmt.Sprintf("generated-%vx%vx%v", groups, lessons, teachers), generateWorkload(groups, lessons, teachers))
		test.Groups, test.Lessons, test.Teachers = groups, lessons, teachers
		return test
	})
}

func newTest(name string, input []model.LessonRequirement) TestMetadata {
	groups := lo.Uniq(lo.Map(input, func(requirement model.LessonRequirement, _ int) string { return requirement.Group }))
	teachers := lo.Uniq(lo.Map(input, func(requirement model.LessonRequirement, _ int) string { return requirement.Teacher }))
	return TestMetadata{
		Name:     name,
		Groups:   len(groups),
		Lessons:  len(input) / max(len(groups), 1),
		Teachers: len(teachers),
		Input:    input,
	}
}

// generateWorkload builds groups × lessons requirements over seven subjects and a shared pool of teachers
func generateWorkload(groups, lessons, teachers int) []model.LessonRequirement {
	requirements := make([]model.LessonRequirement, 0, groups*lessons)
	for group := range groups {
		for lesson := range lessons {
			requirements = append(requirements, model.LessonRequirement{
				Id:      uint64(len(requirements)),
				Group:   fmt.Sprintf("%v%c", 5+group/3, 'A'+rune(group%3)),
				Subject: fmt.Sprintf("subject-%v", lesson%7),
				Teacher: fmt.Sprintf("teacher-%v", (group+lesson)%teachers),
			})
		}
	}
	return requirements
}

func getStrategies() []model.ProbeStrategy {
	return []model.ProbeStrategy{model.JitterProbe, model.ExhaustiveProbe}
}

func measure(strategy model.ProbeStrategy, test TestMetadata, seed uint64) BenchmarkResult {
	options := model.DefaultOptions()
	options.Strategy = strategy
	timetabler := model.NewRandomizedTimetabler(options, model.NewRandomizer(seed), nil)

	start := time.Now()
	timetable, err := timetabler.Build(test.Input)
	duration := time.Since(start)
	if err != nil {
		log.Fatalf("an error occurred during the construction at test \"%v\" using strategy \"%v\" and seed %v: %v", test.Name, strategy, seed, err)
	}

	recoverable, err := model.RecoverableLessons(timetable)
	if err != nil {
		log.Fatalf("cannot compute recoverable lessons: %v", err)
	}

	stats := timetable.TotalStats()
	return BenchmarkResult{
		Strategy:    strategy,
		Test:        test,
		Seed:        seed,
		Duration:    duration.Microseconds(),
		Placed:      stats.Placed,
		Abandoned:   stats.Abandoned,
		Recoverable: lo.Sum(lo.Values(recoverable)),
		FillRatio:   stats.FillRatio(),
		Valid:       timetabler.Verify(timetable, test.Input),
	}
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Strategy", "Test", "Groups", "Lessons", "Teachers", "Seed", "Duration(us)", "Placed", "Abandoned", "Recoverable", "FillRatio", "Valid"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			string(result.Strategy),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Groups),
			fmt.Sprintf("%d", result.Test.Lessons),
			fmt.Sprintf("%d", result.Test.Teachers),
			fmt.Sprintf("%d", result.Seed),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.Placed),
			fmt.Sprintf("%d", result.Abandoned),
			fmt.Sprintf("%d", result.Recoverable),
			fmt.Sprintf("%.3f", result.FillRatio),
			fmt.Sprintf("%v", result.Valid),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
