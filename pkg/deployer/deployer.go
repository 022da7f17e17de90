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

// Package deployer turns function descriptors into Function resources on the
// cluster, waits for their pods to roll out and provisions ingress rules for
// the HTTP endpoints among them.
package deployer

import (
	"net/url"
	"time"

	cs "github.com/dimagoldin/serverless-kubeless/client/clientset"

	"k8s.io/client-go/kubernetes"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"
)

// Options tune one deployment run.
type Options struct {
	// Namespace, when set, overrides the target namespace of every function.
	Namespace string
	// Force redeploys functions whose definition changed on the cluster
	// instead of reporting the conflict.
	Force bool
	// Verbose adds per-pod progress lines while waiting for a rollout.
	Verbose bool
	// Hostname is the default host of provisioned ingress rules, used when
	// an event does not pick its own. The CLI derives it from the cluster
	// endpoint unless the provider configuration sets one.
	Hostname string
}

// Deployer carries the clients shared by every function deployed in one run.
// It keeps no state between runs.
type Deployer struct {
	kube      kubernetes.Interface
	functions cs.FunctionGetter
	clock     clock.PassiveClock
	log       klog.Logger
	interval  time.Duration

	Options
}

func New(kube kubernetes.Interface, functions cs.FunctionGetter, opts Options) *Deployer {
	return &Deployer{
		kube:      kube,
		functions: functions,
		clock:     clock.RealClock{},
		log:       klog.NewKlogr(),
		interval:  pollInterval,
		Options:   opts,
	}
}

// DefaultHostname derives a wildcard DNS name from the cluster API endpoint,
// so provisioned ingress rules resolve without the user owning a domain.
func DefaultHostname(clusterHost string) string {
	u, err := url.Parse(clusterHost)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return u.Hostname() + ".nip.io"
}
