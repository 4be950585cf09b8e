package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultAttempts = 5
	DefaultProbes   = 3

	// Upper bounds keep every build finite and short
	MaxAttempts = 1000
	MaxProbes   = 1000
)

type ProbeStrategy string

const (
	// Draw Probes time slots with replacement from the shuffled candidates (duplicates possible)
	JitterProbe ProbeStrategy = "jitter"
	// Try every shuffled candidate once
	ExhaustiveProbe ProbeStrategy = "exhaustive"
)

type Options struct {
	Catalog  Catalog
	Attempts uint64        `validate:"min=1,max=1000"`
	Probes   uint64        `validate:"min=1,max=1000"`
	Strategy ProbeStrategy `validate:"oneof=jitter exhaustive"`
}

func DefaultOptions() Options {
	return Options{
		Catalog:  DefaultCatalog(),
		Attempts: DefaultAttempts,
		Probes:   DefaultProbes,
		Strategy: JitterProbe,
	}
}

func (options Options) Validate() error {
	if err := validator.New().Struct(options); err != nil {
		return fmt.Errorf("invalid timetabler options: %w", err)
	}
	return options.Catalog.Validate()
}

type Timetabler interface {
	// Build places as many requirements as it can. Requirements that cannot be placed are recorded as abandoned
	// on the returned timetable; an error is only returned for invalid options or requirements.
	Build(requirements []LessonRequirement) (*Timetable, error)

	Verify(timetable *Timetable, requirements []LessonRequirement) bool
}
