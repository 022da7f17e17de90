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
package v1beta1

import (
	"reflect"

	"gomodules.xyz/pointer"
	crdv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"kmodules.xyz/client-go/apiextensions"
)

// FunctionEqual decides whether two objects describe the same deployment.
// Identity is the metadata name plus a deep-equal spec; annotations, labels
// and server-populated metadata do not participate.
func FunctionEqual(old, new *Function) bool {
	if old == nil || new == nil {
		return old == new
	}
	if old.Name != new.Name {
		return false
	}
	return reflect.DeepEqual(old.Spec, new.Spec)
}

func (Function) CustomResourceDefinition() *apiextensions.CustomResourceDefinition {
	return &apiextensions.CustomResourceDefinition{
		V1: &crdv1.CustomResourceDefinition{
			ObjectMeta: metav1.ObjectMeta{
				Name:   ResourcePluralFunction + "." + GroupName,
				Labels: map[string]string{"app": "serverless-kubeless"},
			},
			Spec: crdv1.CustomResourceDefinitionSpec{
				Group: GroupName,
				Names: crdv1.CustomResourceDefinitionNames{
					Plural:     ResourcePluralFunction,
					Singular:   ResourceSingularFunction,
					Kind:       ResourceKindFunction,
					ShortNames: []string{"fn"},
					Categories: []string{"serverless", "kubeless"},
				},
				Scope: crdv1.NamespaceScoped,
				Versions: []crdv1.CustomResourceDefinitionVersion{
					{
						Name:    SchemeGroupVersion.Version,
						Served:  true,
						Storage: true,
						Schema: &crdv1.CustomResourceValidation{
							OpenAPIV3Schema: &crdv1.JSONSchemaProps{
								Type: "object",
								Properties: map[string]crdv1.JSONSchemaProps{
									"spec": {
										Type:                   "object",
										XPreserveUnknownFields: pointer.BoolP(true),
									},
								},
							},
						},
						AdditionalPrinterColumns: []crdv1.CustomResourceColumnDefinition{
							{
								Name:     "Handler",
								Type:     "string",
								JSONPath: ".spec.handler",
							},
							{
								Name:     "Runtime",
								Type:     "string",
								JSONPath: ".spec.runtime",
							},
							{
								Name:     "Type",
								Type:     "string",
								JSONPath: ".spec.type",
							},
							{
								Name:     "Age",
								Type:     "date",
								JSONPath: ".metadata.creationTimestamp",
							},
						},
					},
				},
			},
		},
	}
}
