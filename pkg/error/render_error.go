package error

import (
	"fmt"
	"net/http"
)

type RenderStage string

const (
	RenderStageSubmission    RenderStage = "submission"
	RenderStageRemoteFailure RenderStage = "remote_failure"
	RenderStageTimeout       RenderStage = "timeout"
)

// RenderError is returned by the render orchestrator. The stage tells the
// caller whether the submit call failed, the remote service reported a failed
// render, or the polling budget ran out.
type RenderError struct {
	Stage  RenderStage
	Reason string
}

func NewRenderError(stage RenderStage, reason string) RenderError {
	return RenderError{Stage: stage, Reason: reason}
}

func (err RenderError) Error() string {
	if err.Reason == "" {
		return fmt.Sprintf("render %s", err.Stage)
	}
	return fmt.Sprintf("render %s: %s", err.Stage, err.Reason)
}

func (err RenderError) ErrCode() string {
	switch err.Stage {
	case RenderStageSubmission:
		return "RENDER_SUBMISSION_ERROR"
	case RenderStageTimeout:
		return "RENDER_TIMEOUT"
	default:
		return "RENDER_REMOTE_FAILURE"
	}
}

func (err RenderError) StatusCode() int {
	if err.Stage == RenderStageTimeout {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
