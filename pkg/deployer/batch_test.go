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
	"testing"
	"time"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	csfake "github.com/dimagoldin/serverless-kubeless/client/clientset/fake"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func testDescriptor(name string) *service.Function {
	return &service.Function{
		Name:    name,
		Handler: "handler." + name,
		Runtime: "python2.7",
		Text:    "def " + name + "(): pass",
	}
}

func TestRunSkipsFunctionsWithoutHandler(t *testing.T) {
	kube := k8sfake.NewSimpleClientset()
	functions := csfake.NewFakeKubelessClient()
	d := testDeployer(kube, functions, Options{})

	docs := testDescriptor("docs")
	docs.Handler = ""
	result, err := d.Run(context.Background(), []*service.Function{docs})
	require.NoError(t, err)
	assert.Zero(t, result.Expected)
	assert.Zero(t, result.Completed)
	assert.Empty(t, result.Errors)
	assert.Empty(t, functions.Actions(), "a skipped function must cause no API traffic")
	assert.Empty(t, kube.Actions())
}

func TestRunSkipsUnchangedFunction(t *testing.T) {
	manifest, err := BuildFunction(testDescriptor("hello"), service.Event{Type: service.EventTypeHTTP, Path: "/"}, metav1.NamespaceDefault)
	require.NoError(t, err)

	kube := k8sfake.NewSimpleClientset()
	functions := csfake.NewFakeKubelessClient(manifest)
	d := testDeployer(kube, functions, Options{})

	result, err := d.Run(context.Background(), []*service.Function{testDescriptor("hello")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expected)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 1, countActions(functions.Actions(), "list", "functions"))
	assert.Zero(t, countActions(functions.Actions(), "create", "functions"))
	assert.Zero(t, countActions(functions.Actions(), "update", "functions"))
	assert.Empty(t, kube.Actions(), "an unchanged function needs no rollout and no ingress")
}

func TestRunForceRedeploysChangedFunction(t *testing.T) {
	stale := testDescriptor("hello")
	stale.Text = "def hello(): return 'old'"
	prior, err := BuildFunction(stale, service.Event{Type: service.EventTypeHTTP, Path: "/hello"}, metav1.NamespaceDefault)
	require.NoError(t, err)
	prior.ResourceVersion = "7"

	kube := k8sfake.NewSimpleClientset(podPtr(readyPod("hello-1", pollBase.Add(time.Minute))))
	functions := csfake.NewFakeKubelessClient(prior)
	d := testDeployer(kube, functions, Options{Force: true})

	fresh := testDescriptor("hello")
	fresh.Events = []service.Event{{Type: service.EventTypeHTTP, Path: "/hello"}}
	result, err := d.Run(context.Background(), []*service.Function{fresh})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 1, countActions(functions.Actions(), "update", "functions"))
	assert.Zero(t, countActions(functions.Actions(), "create", "functions"))
	assert.Zero(t, countActions(kube.Actions(), "create", "ingresses"),
		"a redeploy keeps the ingress rules of the original deployment")

	var updated *api.Function
	for _, action := range functions.Actions() {
		if update, ok := action.(k8stesting.UpdateAction); ok && action.Matches("update", "functions") {
			updated = update.GetObject().(*api.Function)
		}
	}
	require.NotNil(t, updated)
	assert.Equal(t, "7", updated.ResourceVersion,
		"the update must carry the resourceVersion of the live object or the apiserver rejects it")
}

func TestRunReportsConflictWithoutForce(t *testing.T) {
	stale := testDescriptor("hello")
	stale.Text = "def hello(): return 'old'"
	prior, err := BuildFunction(stale, service.Event{Type: service.EventTypeHTTP, Path: "/"}, metav1.NamespaceDefault)
	require.NoError(t, err)

	kube := k8sfake.NewSimpleClientset()
	functions := csfake.NewFakeKubelessClient(prior)
	d := testDeployer(kube, functions, Options{})

	result, err := d.Run(context.Background(), []*service.Function{testDescriptor("hello")})
	require.NoError(t, err, "an unforced conflict is reported in the log, not as a failure")
	assert.Equal(t, 1, result.Completed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, countActions(functions.Actions(), "create", "functions"))
	assert.Zero(t, countActions(functions.Actions(), "update", "functions"))
	assert.Empty(t, kube.Actions())
}

func TestRunDeploysNewFunctionWithIngress(t *testing.T) {
	kube := k8sfake.NewSimpleClientset(podPtr(readyPod("hello-1", pollBase.Add(time.Minute))))
	functions := csfake.NewFakeKubelessClient()
	d := testDeployer(kube, functions, Options{})

	fn := testDescriptor("hello")
	fn.Events = []service.Event{{Type: service.EventTypeHTTP, Path: "/hello"}}
	result, err := d.Run(context.Background(), []*service.Function{fn})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expected)
	assert.Equal(t, 1, result.Completed)

	deployed, err := functions.Functions(metav1.NamespaceDefault).Get(context.Background(), "hello", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "handler.hello", deployed.Spec.Handler)

	ing, err := kube.NetworkingV1beta1().Ingresses(metav1.NamespaceDefault).Get(context.Background(), "ingress-hello", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/hello", ing.Spec.Rules[0].HTTP.Paths[0].Path)
}

func TestRunSchedulesEveryEvent(t *testing.T) {
	kube := k8sfake.NewSimpleClientset(podPtr(readyPod("hello-1", pollBase.Add(time.Minute))))
	functions := csfake.NewFakeKubelessClient()
	d := testDeployer(kube, functions, Options{})

	fn := testDescriptor("hello")
	fn.Events = []service.Event{
		{Type: service.EventTypeHTTP, Path: "/a"},
		{Type: service.EventTypeHTTP, Path: "/b"},
	}
	result, err := d.Run(context.Background(), []*service.Function{fn})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Expected)
	assert.Equal(t, 2, result.Completed)
	assert.Empty(t, result.Errors)
	// both events race to create the same resource, exactly one wins and
	// provisions its ingress rule
	assert.Equal(t, 2, countActions(functions.Actions(), "create", "functions"))
	assert.Equal(t, 1, countActions(kube.Actions(), "create", "ingresses"))
}

func TestRunAggregatesFailures(t *testing.T) {
	kube := k8sfake.NewSimpleClientset(podPtr(readyPod("hello-1", pollBase.Add(time.Minute))))
	functions := csfake.NewFakeKubelessClient()
	d := testDeployer(kube, functions, Options{})

	broken := testDescriptor("broken")
	broken.Events = []service.Event{{Type: service.EventTypeTrigger}}
	result, err := d.Run(context.Background(), []*service.Function{broken, testDescriptor("hello")})
	require.Error(t, err)
	assert.True(t, HasReason(err, ReasonBatchDeploymentFailed))

	assert.Equal(t, 2, result.Expected)
	assert.Equal(t, 2, result.Completed, "a failed sibling must not stop the others")
	require.Len(t, result.Errors, 1)
	assert.True(t, HasReason(result.Errors[0], ReasonInvalidEventConfiguration))

	_, err = functions.Functions(metav1.NamespaceDefault).Get(context.Background(), "hello", metav1.GetOptions{})
	assert.NoError(t, err, "the healthy function still deploys")
}

func TestRunRecordsListFailuresPerEvent(t *testing.T) {
	kube := k8sfake.NewSimpleClientset()
	functions := csfake.NewFakeKubelessClient()
	functions.PrependReactor("list", "functions", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("etcdserver: request timed out")
	})
	d := testDeployer(kube, functions, Options{})

	fn := testDescriptor("hello")
	fn.Events = []service.Event{
		{Type: service.EventTypeHTTP, Path: "/a"},
		{Type: service.EventTypeHTTP, Path: "/b"},
	}
	result, err := d.Run(context.Background(), []*service.Function{fn})
	require.Error(t, err)
	assert.True(t, HasReason(err, ReasonBatchDeploymentFailed))
	assert.Equal(t, 2, result.Expected)
	assert.Equal(t, 2, result.Completed, "every scheduled pair reports even when the listing fails")
	assert.Len(t, result.Errors, 2)
	assert.Zero(t, countActions(functions.Actions(), "create", "functions"))
}

func TestRunHonorsNamespaceOverride(t *testing.T) {
	pod := readyPod("hello-1", pollBase.Add(time.Minute))
	pod.Namespace = "production"
	kube := k8sfake.NewSimpleClientset(&pod)
	functions := csfake.NewFakeKubelessClient()
	d := testDeployer(kube, functions, Options{Namespace: "production"})

	fn := testDescriptor("hello")
	fn.Namespace = "staging"
	result, err := d.Run(context.Background(), []*service.Function{fn})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)

	deployed, err := functions.Functions("production").Get(context.Background(), "hello", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "production", deployed.Namespace)
}
