package model

import (
	"strings"

	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Repository identifies a repository on the hosting service
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses "owner/name" into a Repository
func ParseRepository(s string) (Repository, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Repository{}, goerr.New("repositoryName cannot be blank",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "repositoryName"))
	}

	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, goerr.New("repositoryName must be in owner/name form",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "repositoryName"),
			goerr.V("value", s))
	}

	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ReleaseRequest describes the release to create
type ReleaseRequest struct {
	TagName         string
	Commitish       string // Optional branch, tag or SHA the tag is created from
	Name            string // Optional release title, the hosting service uses the tag when empty
	Description     string
	DescriptionFile string
	PreRelease      bool
	Draft           bool
}

// Release is a release created on the hosting service
type Release struct {
	ID        int64
	TagName   string
	HTMLURL   string
	UploadURL string
}

// ReleaseResult is returned by a completed publish operation
type ReleaseResult struct {
	HTMLURL  string
	Outcomes []UploadOutcome
}

// Succeeded returns successful outcomes in selection order
func (r *ReleaseResult) Succeeded() []UploadOutcome {
	var out []UploadOutcome
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns failed outcomes in selection order
func (r *ReleaseResult) Failed() []UploadOutcome {
	var out []UploadOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			out = append(out, o)
		}
	}
	return out
}

// PublishStage is a step of a single publish operation
type PublishStage int

const (
	StageValidating PublishStage = iota
	StageDescriptionResolved
	StageReleaseCreated
	StageUploading
	StageCompleted
	StageFailed
)

func (s PublishStage) String() string {
	switch s {
	case StageValidating:
		return "validating"
	case StageDescriptionResolved:
		return "description_resolved"
	case StageReleaseCreated:
		return "release_created"
	case StageUploading:
		return "uploading"
	case StageCompleted:
		return "completed"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}
