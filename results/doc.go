// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package results projects the tally into chart-ready form.

	r := results.Project(store.Snapshot())
	results.Summary(r) // "1,204 votes cast"
	results.Leaders(r) // ["Candidate B"]

Labels and counts follow the ballot order and are never nil.
*/
package results
