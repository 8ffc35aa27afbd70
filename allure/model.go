// Package allure writes test results and failure artifacts in the Allure results format, so that
// a run can be rendered with "allure generate".
package allure

const StageFinished = "finished"

const (
	StatusPass   = "passed"
	StatusFail   = "failed"
	StatusSkip   = "skipped"
	StatusBroken = "broken"
)

type Test struct {
	UUID          string         `json:"uuid"`
	HistoryID     string         `json:"historyId"`
	Name          string         `json:"name"`
	FullName      string         `json:"fullName"`
	Status        string         `json:"status"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Stage         string         `json:"stage"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
	Labels        []Label        `json:"labels"`
	Parameters    []Parameter    `json:"parameters,omitempty"`
	Attachments   []Attachment   `json:"attachments"`
}

type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}
