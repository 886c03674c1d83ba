// Package harness provides conformance testing for gatesimp problems.
//
// A scenario names a problem file and a list of input sequences. The
// harness builds the problem, runs every sequence through the real engine
// and checks the outcome.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: clifford_t_basics
//	description: "What this scenario validates"
//	problem: ../problems/clifford_t.cue
//	cases:
//	  - name: adjoint_pair
//	    sequence: "T Td"
//	    expect:
//	      removed: 1
//	      result: "I"
//	      fired: [adjoint]
//	  - sequence: [SX, H, H, T]
//
// The problem path is resolved against the scenario file's directory.
// Sequences and results may be written as a string or a YAML list.
//
// # Checks
//
// Expectations are optional per field:
//
//   - removed: operators removed by the run
//   - result: the simplified sequence
//   - fired: rule IDs in firing order
//
// Every case is also checked against properties that hold for any rule
// set: length accounting (len(input) = len(output) + removed), firing
// accounting (the firings remove exactly `removed` operators) and
// idempotence (simplifying the output removes nothing).
//
// # Golden Traces
//
// RunWithGolden snapshots every case's firing trace as canonical JSON in
// testdata/golden/{name}.golden. The engine is deterministic, so traces are
// stable across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/clifford_t_basics.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
