// Package report writes simulation results as CSV tables, PNG plots and an
// HTML histogram page.
package report
