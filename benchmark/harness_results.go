// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

type BenchResult struct {
	Name       string
	Trials     int
	Duration   time.Duration
	Raw        []Result
	DataSize   int
	Operations int
	hasErrors  *bool
}

type Result struct {
	Duration   time.Duration
	Iterations int
	Error      error
}

type Metric struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// PerfFormat renders the result as the metric maps the perf tooling ingests:
// a throughput entry, plus a size-adjusted entry when the case declares a
// data size.
func (r *BenchResult) PerfFormat() ([]interface{}, error) {
	timings := r.timings()

	median, err := stats.Median(timings)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(timings)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(timings)
	if err != nil {
		return nil, err
	}

	out := []interface{}{
		r.perfEntry("-throughput", r.getThroughput(median), r.getThroughput(min), r.getThroughput(max)),
	}
	if r.DataSize > 0 {
		out = append(out, r.perfEntry("-MB-adjusted", r.adjustResults(median), r.adjustResults(min), r.adjustResults(max)))
	}

	return out, nil
}

func (r *BenchResult) perfEntry(suffix string, median, min, max float64) interface{} {
	return map[string]interface{}{
		"info": map[string]interface{}{
			"test_name": r.Name + suffix,
			"args": map[string]interface{}{
				"threads": 1,
			},
		},
		"metrics": []Metric{
			{Name: "seconds", Value: r.Duration.Round(time.Millisecond).Seconds()},
			{Name: "ops_per_second", Value: median},
			{Name: "ops_per_second_min", Value: min},
			{Name: "ops_per_second_max", Value: max},
		},
	}
}

func (r *BenchResult) timings() []float64 {
	out := make([]float64, 0, len(r.Raw))
	for _, trial := range r.Raw {
		out = append(out, trial.Duration.Seconds())
	}
	return out
}

func (r *BenchResult) adjustResults(data float64) float64 { return float64(r.DataSize) / data }
func (r *BenchResult) getThroughput(data float64) float64 { return float64(r.Operations) / data }

func (r *BenchResult) String() string {
	return fmt.Sprintf("name=%s, trials=%d, secs=%s", r.Name, r.Trials, r.Duration)
}

func (r *BenchResult) HasErrors() bool {
	if r.hasErrors == nil {
		var val bool
		for _, res := range r.Raw {
			if res.Error != nil {
				val = true
				break
			}
		}
		r.hasErrors = &val
	}

	return *r.hasErrors
}

func (r *BenchResult) errReport() []string {
	errs := []string{}
	for _, res := range r.Raw {
		if res.Error != nil {
			errs = append(errs, res.Error.Error())
		}
	}
	return errs
}
