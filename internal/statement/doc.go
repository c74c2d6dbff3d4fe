// Package statement turns a stored statement document into a Report.
//
// Pages are processed independently by a Processor, fanned out over a Pool
// that stores each result at its page index, and folded into statement-wide
// statistics by Aggregate. A page that cannot be read or parsed contributes
// nothing; only failures outside the per-page pipeline abort a run.
package statement
