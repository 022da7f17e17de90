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
	"fmt"
	"reflect"
	"time"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"

	"github.com/pkg/errors"
	core "k8s.io/api/core/v1"
	kerr "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	utilnet "k8s.io/apimachinery/pkg/util/net"
	"k8s.io/apimachinery/pkg/util/wait"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/klog/v2"
	core_util "kmodules.xyz/client-go/core/v1"
)

const (
	pollInterval = 2 * time.Second
	// consecutive empty observations tolerated before giving up
	maxEmptyRetries = 3
	// consecutive all-ready observations required before declaring success
	stableThreshold = 2
	// restarts of the first container tolerated before declaring a crash loop
	maxRestartCount = 2
)

type pollState int

const (
	statePolling pollState = iota
	stateSucceeded
	stateGivenUp
	stateFatal
)

// podPoller decides whether one submitted function rolled out. Each tick it
// observes the function's pods and feeds them into a small state machine;
// the timer mechanics live in Wait, the verdict logic in observe.
type podPoller struct {
	pods     corev1client.PodInterface
	function string
	// since anchors the poll to the submission: pods created earlier belong
	// to a previous deployment of the same name and are ignored.
	since    time.Time
	interval time.Duration
	verbose  bool
	log      klog.Logger

	state      pollState
	retries    int
	stable     int
	failure    error
	lastStatus []string
}

// Wait drives the state machine at a fixed interval until it reaches a
// terminal state, or the context ends first.
func (p *podPoller) Wait(ctx context.Context) error {
	if p.interval == 0 {
		p.interval = pollInterval
	}
	err := wait.PollUntilContextCancel(ctx, p.interval, true, func(ctx context.Context) (bool, error) {
		pods, err := p.pods.List(ctx, metav1.ListOptions{
			LabelSelector: labels.Set{api.LabelFunction: p.function}.String(),
		})
		if err != nil {
			if isTransientTimeout(err) {
				p.log.V(2).Info("pod listing timed out, retrying", "error", err.Error())
				return false, nil
			}
			return false, errors.Wrap(err, "failed to list the function pods")
		}
		p.observe(pods.Items)

		switch p.state {
		case stateSucceeded:
			return true, nil
		case stateGivenUp:
			return false, &DeploymentError{
				Reason:   ReasonDeploymentTimeout,
				Function: p.function,
				Err:      errors.Errorf("no pod appeared for the function after %d observations", p.retries),
			}
		case stateFatal:
			return false, &DeploymentError{
				Reason:   ReasonDeploymentCrashLoop,
				Function: p.function,
				Err:      p.failure,
			}
		}
		return false, nil
	})
	if err != nil && wait.Interrupted(err) {
		return &DeploymentError{
			Reason:   ReasonDeploymentTimeout,
			Function: p.function,
			Err:      err,
		}
	}
	return err
}

// observe feeds one tick of pod observations into the state machine. Only
// the first container status of each pod takes part in the verdict.
func (p *podPoller) observe(pods []core.Pod) {
	fresh := make([]*core.Pod, 0, len(pods))
	for i := range pods {
		if pods[i].CreationTimestamp.Time.Before(p.since) {
			continue
		}
		fresh = append(fresh, &pods[i])
	}

	if len(fresh) == 0 {
		p.retries++
		if p.retries > maxEmptyRetries {
			p.state = stateGivenUp
		}
		return
	}

	running := 0
	for _, pod := range fresh {
		if len(pod.Status.ContainerStatuses) == 0 {
			continue
		}
		status := pod.Status.ContainerStatuses[0]
		switch {
		case status.Ready:
			running++
		case status.RestartCount > maxRestartCount:
			p.state = stateFatal
			p.failure = errors.Errorf("pod %s is crash looping, restarted %d times", pod.Name, status.RestartCount)
			return
		}
	}

	if running == len(fresh) {
		p.stable++
		if p.stable >= stableThreshold {
			p.state = stateSucceeded
		}
		return
	}

	// readiness flapped, start the stability count over
	p.stable = 0
	if p.verbose {
		p.logStatus(fresh)
	}
}

// logStatus prints the per-pod state, but only when it changed since the
// last line, so a slow image pull does not flood the output.
func (p *podPoller) logStatus(pods []*core.Pod) {
	status := make([]string, 0, len(pods))
	for _, pod := range pods {
		status = append(status, fmt.Sprintf("%s: %s", pod.Name, core_util.GetPodStatus(pod)))
	}
	if reflect.DeepEqual(status, p.lastStatus) {
		return
	}
	p.lastStatus = status
	p.log.Info("waiting for the function pods to become ready", "pods", status)
}

// isTransientTimeout separates a timed out list call, which only costs one
// tick, from transport failures that end the poll.
func isTransientTimeout(err error) bool {
	return utilnet.IsTimeout(err) || kerr.IsTimeout(err) || kerr.IsServerTimeout(err)
}
