// Package match resolves source library entries to catalog records by
// scoring every title-variant pair and classifying results by confidence.
package match
