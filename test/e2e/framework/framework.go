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
package framework

import (
	cs "github.com/dimagoldin/serverless-kubeless/client/clientset"

	"gomodules.xyz/x/crypto/rand"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

type Framework struct {
	KubeClient     kubernetes.Interface
	KubelessClient cs.Interface
	ClientConfig   *rest.Config
	namespace      string
}

func New(kubeClient kubernetes.Interface, kubelessClient cs.Interface, clientConfig *rest.Config) *Framework {
	return &Framework{
		KubeClient:     kubeClient,
		KubelessClient: kubelessClient,
		ClientConfig:   clientConfig,
		namespace:      rand.WithUniqSuffix("test-kubeless"),
	}
}

func (f *Framework) Invoke() *Invocation {
	return &Invocation{
		Framework: f,
		app:       rand.WithUniqSuffix("fn"),
	}
}

// Invocation scopes one spec: every function it fabricates carries a unique
// name, so specs never step on each other's resources.
type Invocation struct {
	*Framework
	app string
}

func (fi *Invocation) App() string {
	return fi.app
}
