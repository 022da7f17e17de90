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
	"context"
	"time"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"

	kerr "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"
)

// createAndWait submits fn as a new resource and waits for its pods to roll
// out. A name conflict is not an error: the function is already deployed and
// only --force may replace it, so it resolves false with a hint in the log.
func (d *Deployer) createAndWait(ctx context.Context, fn *api.Function) (deployed bool, err error) {
	since := d.clock.Now()
	if _, err := d.functions.Functions(fn.Namespace).Create(ctx, fn, metav1.CreateOptions{}); err != nil {
		if kerr.IsAlreadyExists(err) || kerr.IsConflict(err) {
			klog.Infof("The function %s already exists. Redeploy it with --force if you need to update it", fn.Name)
			return false, nil
		}
		return false, &DeploymentError{
			Reason:   ReasonDeploymentSubmissionFailed,
			Function: fn.Name,
			Err:      err,
		}
	}
	if err := d.waitForRollout(ctx, fn.Name, fn.Namespace, since); err != nil {
		return false, err
	}
	klog.Infof("Function %s successfully deployed", fn.Name)
	return true, nil
}

// updateAndWait replaces the stored definition of fn and waits for the new
// pods to roll out. The caller copies the resourceVersion of the existing
// object into fn before calling.
func (d *Deployer) updateAndWait(ctx context.Context, fn *api.Function) error {
	since := d.clock.Now()
	if _, err := d.functions.Functions(fn.Namespace).Update(ctx, fn, metav1.UpdateOptions{}); err != nil {
		return &DeploymentError{
			Reason:   ReasonDeploymentUpdateFailed,
			Function: fn.Name,
			Err:      err,
		}
	}
	if err := d.waitForRollout(ctx, fn.Name, fn.Namespace, since); err != nil {
		return err
	}
	klog.Infof("Function %s successfully redeployed", fn.Name)
	return nil
}

func (d *Deployer) waitForRollout(ctx context.Context, name, namespace string, since time.Time) error {
	p := &podPoller{
		pods:     d.kube.CoreV1().Pods(namespace),
		function: name,
		// the apiserver stores CreationTimestamp at second precision, a
		// sub-second cutoff would read pods born within the submission
		// second as stale
		since:    since.Truncate(time.Second),
		interval: d.interval,
		verbose:  d.Verbose,
		log:      d.log.WithValues("function", name, "namespace", namespace),
	}
	return p.Wait(ctx)
}
