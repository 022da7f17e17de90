/*
Copyright The Serverless Kubeless Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package deployer

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason classifies why a deployment step failed. Reasons are stable API,
// error messages are not.
type Reason string

const (
	ReasonInvalidEventConfiguration  Reason = "InvalidEventConfiguration"
	ReasonUnsupportedEventType       Reason = "UnsupportedEventType"
	ReasonDeploymentSubmissionFailed Reason = "DeploymentSubmissionFailed"
	ReasonDeploymentUpdateFailed     Reason = "DeploymentUpdateFailed"
	ReasonDeploymentTimeout          Reason = "DeploymentTimeout"
	ReasonDeploymentCrashLoop        Reason = "DeploymentCrashLoop"
	ReasonIngressProvisioningFailed  Reason = "IngressProvisioningFailed"
	ReasonBatchDeploymentFailed      Reason = "BatchDeploymentFailed"
)

// DeploymentError attaches a stable failure reason to an error surfaced
// while deploying one function. The batch aggregate carries
// ReasonBatchDeploymentFailed and wraps every collected per-function error.
type DeploymentError struct {
	Reason   Reason
	Function string
	Err      error
}

func (e *DeploymentError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("function %s: %s: %v", e.Function, e.Reason, e.Err)
}

func (e *DeploymentError) Unwrap() error { return e.Err }

// HasReason reports whether err carries the given failure reason.
func HasReason(err error, reason Reason) bool {
	var de *DeploymentError
	return errors.As(err, &de) && de.Reason == reason
}
