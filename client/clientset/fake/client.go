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
package fake

import (
	"github.com/dimagoldin/serverless-kubeless/client/clientset"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/testing"
)

type FakeKubelessClient struct {
	*testing.Fake
}

var _ clientset.Interface = &FakeKubelessClient{}

// NewFakeKubelessClient returns a clientset backed by an object tracker
// preloaded with the given objects. Reactors may be prepended to simulate
// API failures.
func NewFakeKubelessClient(objects ...runtime.Object) *FakeKubelessClient {
	o := testing.NewObjectTracker(clientset.Scheme, clientset.Codecs.UniversalDecoder())
	for _, obj := range objects {
		if err := o.Add(obj); err != nil {
			panic(err)
		}
	}

	fakePtr := testing.Fake{}
	fakePtr.AddReactor("*", "*", testing.ObjectReaction(o))
	fakePtr.AddWatchReactor("*", testing.DefaultWatchReactor(watch.NewFake(), nil))

	return &FakeKubelessClient{&fakePtr}
}

func (c *FakeKubelessClient) Functions(ns string) clientset.FunctionInterface {
	return &FakeFunctions{c.Fake, ns}
}

// RESTClient returns a RESTClient that is used to communicate
// with API server by this client implementation.
func (c *FakeKubelessClient) RESTClient() rest.Interface {
	var ret *rest.RESTClient
	return ret
}
