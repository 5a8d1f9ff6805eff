// Package actuator reports optimizer decisions.
//
// The actuator is the last stage of a run. It turns each Decision into a
// Report and writes it in one of the supported formats:
//
//   - text: the problem listing followed by the selection and its totals
//   - yaml: a YAML sequence of reports
//   - json: a JSON array of reports
//
// # Text Output
//
//	problem: textbook
//	capacity: 50
//	[0] value: 60, weight: 10
//	[1] value: 100, weight: 20
//	[2] value: 120, weight: 30
//	solution: [0 1 1]
//	selected: [1 2]
//	value: 220, weight: 50
//	evaluations: 8
//
// Problems without a feasible candidate report "solution: none".
package actuator
