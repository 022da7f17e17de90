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
	"sync"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"

	"github.com/pkg/errors"
	stringz "gomodules.xyz/x/strings"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"
)

// BatchResult accounts for one deployment run. Every scheduled function×event
// pair reports exactly once, failures land in Errors without stopping the
// siblings.
type BatchResult struct {
	Expected  int
	Completed int
	Errors    []error
}

// Run deploys every function×event pair concurrently and waits for all of
// them to settle. Functions without a handler are not scheduled at all. When
// any pair failed, the returned error aggregates every collected failure.
func (d *Deployer) Run(ctx context.Context, functions []*service.Function) (*BatchResult, error) {
	type operation struct {
		fn        *service.Function
		namespace string
		events    []service.Event
	}

	var ops []operation
	expected := 0
	for _, fn := range functions {
		if fn.Handler == "" {
			klog.Infof("Skipping function %s: it declares no handler", fn.Name)
			continue
		}
		op := operation{
			fn:        fn,
			namespace: stringz.Val(d.Namespace, stringz.Val(fn.Namespace, metav1.NamespaceDefault)),
			events:    fn.EffectiveEvents(),
		}
		ops = append(ops, op)
		expected += len(op.events)
	}

	result := &BatchResult{Expected: expected}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		result.Completed++
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	for _, op := range ops {
		wg.Add(1)
		go func(op operation) {
			defer wg.Done()
			existing, err := d.functions.Functions(op.namespace).List(ctx, metav1.ListOptions{})
			if err != nil {
				err = errors.Wrapf(err, "failed to list the functions deployed in namespace %s", op.namespace)
				for range op.events {
					record(err)
				}
				return
			}
			for i := range op.events {
				wg.Add(1)
				go func(evt service.Event) {
					defer wg.Done()
					record(d.deployEvent(ctx, op.fn, evt, op.namespace, existing.Items))
				}(op.events[i])
			}
		}(op)
	}
	wg.Wait()

	if len(result.Errors) > 0 {
		return result, &DeploymentError{
			Reason: ReasonBatchDeploymentFailed,
			Err:    utilerrors.NewAggregate(result.Errors),
		}
	}
	return result, nil
}

// deployEvent settles one function×event pair. A nil return means the pair
// was deployed, redeployed or legitimately skipped.
func (d *Deployer) deployEvent(ctx context.Context, fn *service.Function, evt service.Event, namespace string, existing []api.Function) error {
	manifest, err := BuildFunction(fn, evt, namespace)
	if err != nil {
		return err
	}

	prior := findFunction(existing, manifest.Name)
	switch {
	case prior != nil && api.FunctionEqual(prior, manifest):
		klog.Infof("Function %s has not changed. Skipping deployment", manifest.Name)
		return nil
	case prior != nil && d.Force:
		// a redeploy keeps whatever ingress rules the original deployment
		// provisioned, so the ingress step never runs on this path
		manifest.ResourceVersion = prior.ResourceVersion
		return d.updateAndWait(ctx, manifest)
	default:
		deployed, err := d.createAndWait(ctx, manifest)
		if err != nil || !deployed {
			return err
		}
		return d.ensureIngress(ctx, manifest.Name, evt, namespace)
	}
}

func findFunction(items []api.Function, name string) *api.Function {
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}
	}
	return nil
}
