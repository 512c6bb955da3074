package error

import (
	"fmt"
	"net/http"
	"strings"
)

type PublishStage string

const (
	PublishStageInitialize  PublishStage = "initialize"
	PublishStagePublish     PublishStage = "publish"
	PublishStageStatusCheck PublishStage = "status_check"
	PublishStageDelete      PublishStage = "delete"
)

// PublishError is returned by the publish orchestrator for failures in the
// remote media lifecycle. Local orchestration state is never mutated by the
// failing call itself.
type PublishError struct {
	Stage  PublishStage
	Reason string
}

func NewPublishError(stage PublishStage, reason string) PublishError {
	return PublishError{Stage: stage, Reason: reason}
}

func (err PublishError) Error() string {
	if err.Reason == "" {
		return fmt.Sprintf("publish %s", err.Stage)
	}
	return fmt.Sprintf("publish %s: %s", err.Stage, err.Reason)
}

func (err PublishError) ErrCode() string {
	return "PUBLISH_" + strings.ToUpper(string(err.Stage)) + "_ERROR"
}

func (err PublishError) StatusCode() int {
	return http.StatusBadGateway
}
