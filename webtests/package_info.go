// Package webtests contains the browser and API test suites and the test API they are written
// against.
//
// Test runner infrastructure that is not specific to browsers or web applications, such as
// filtering, markers and result reporting, is in the lower-level framework package. Artifact
// capture for failed browser tests is in the capture package; this package only decides when a
// capture session begins and ends.
package webtests
