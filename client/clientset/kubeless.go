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
package clientset

import (
	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/rest"
)

const defaultAPIPath = "/apis"

var (
	Scheme         = runtime.NewScheme()
	Codecs         = serializer.NewCodecFactory(Scheme)
	ParameterCodec = runtime.NewParameterCodec(Scheme)
)

func init() {
	utilruntime.Must(api.AddToScheme(Scheme))
}

type Interface interface {
	RESTClient() rest.Interface
	FunctionGetter
}

// KubelessClient is used to interact with the kubeless.io API group.
type KubelessClient struct {
	restClient rest.Interface
}

var _ Interface = &KubelessClient{}

func (c *KubelessClient) Functions(namespace string) FunctionInterface {
	return newFunctions(c, namespace)
}

// NewForConfig creates a new KubelessClient for the given config.
func NewForConfig(c *rest.Config) (*KubelessClient, error) {
	config := *c
	setConfigDefaults(&config)
	client, err := rest.RESTClientFor(&config)
	if err != nil {
		return nil, err
	}
	return &KubelessClient{client}, nil
}

// NewForConfigOrDie creates a new KubelessClient for the given config and
// panics if there is an error in the config.
func NewForConfigOrDie(c *rest.Config) *KubelessClient {
	client, err := NewForConfig(c)
	if err != nil {
		panic(err)
	}
	return client
}

// New creates a new KubelessClient for the given RESTClient.
func New(c rest.Interface) *KubelessClient {
	return &KubelessClient{c}
}

func setConfigDefaults(config *rest.Config) {
	gv := api.SchemeGroupVersion
	config.GroupVersion = &gv
	config.APIPath = defaultAPIPath
	config.NegotiatedSerializer = Codecs.WithoutConversion()
	if config.UserAgent == "" {
		config.UserAgent = rest.DefaultKubernetesUserAgent()
	}
}

// RESTClient returns a RESTClient that is used to communicate
// with the API server by this client implementation.
func (c *KubelessClient) RESTClient() rest.Interface {
	if c == nil {
		return nil
	}
	return c.restClient
}
