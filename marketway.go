// Package marketway locates products inside a physical market and produces
// walking directions from the market entrance to the matching line.
//
// The market is a set of numbered aisles, each holding an ordered sequence of
// lines (stalls or sections). This package contains the domain types, the
// layout index, the keyword locator and the directions synthesizer, plus the
// service interfaces implemented by subpackages. Following the Standard
// Package Layout, implementations live in subdirectories named after their
// primary dependency (e.g., sqlite/, gemini/, gin/).
package marketway
