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
	"strings"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"

	stringz "gomodules.xyz/x/strings"
	networking "k8s.io/api/networking/v1beta1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/klog/v2"
)

// Every function pod serves its HTTP endpoint on this port, so every ingress
// backend points at it.
const functionPort = 8080

const (
	ingressClassAnnotation  = "kubernetes.io/ingress.class"
	rewriteTargetAnnotation = "ingress.kubernetes.io/rewrite-target"
)

// BuildIngress turns the routing parameters of one HTTP event into the
// ingress rule exposing the function's service. It performs no I/O.
func BuildIngress(function, path, hostname string) *networking.Ingress {
	return &networking.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: networking.SchemeGroupVersion.String(),
			Kind:       "Ingress",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   "ingress-" + function,
			Labels: map[string]string{api.LabelFunction: function},
			Annotations: map[string]string{
				ingressClassAnnotation:  "nginx",
				rewriteTargetAnnotation: "/",
			},
		},
		Spec: networking.IngressSpec{
			Rules: []networking.IngressRule{
				{
					Host: hostname,
					IngressRuleValue: networking.IngressRuleValue{
						HTTP: &networking.HTTPIngressRuleValue{
							Paths: []networking.HTTPIngressPath{
								{
									Path: path,
									Backend: networking.IngressBackend{
										ServiceName: function,
										ServicePort: intstr.FromInt32(functionPort),
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// ensureIngress exposes one freshly deployed HTTP endpoint through an ingress
// rule. Events served at the root path on the default hostname need no rule
// and are skipped. A submission failure does not roll the function back.
func (d *Deployer) ensureIngress(ctx context.Context, function string, evt service.Event, namespace string) error {
	if evt.Type != service.EventTypeHTTP || (isRootPath(evt.Path) && evt.Hostname == "") {
		if d.Verbose {
			klog.Infof("Skipping ingress rule generation for function %s: it uses the default path and hostname", function)
		}
		return nil
	}

	path := evt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	hostname := stringz.Val(evt.Hostname, d.Hostname)

	ing := BuildIngress(function, path, hostname)
	if _, err := d.kube.NetworkingV1beta1().Ingresses(namespace).Create(ctx, ing, metav1.CreateOptions{}); err != nil {
		return &DeploymentError{
			Reason:   ReasonIngressProvisioningFailed,
			Function: function,
			Err:      err,
		}
	}
	klog.Infof("Deployed ingress rule for function %s: http://%s%s", function, hostname, path)
	return nil
}

func isRootPath(path string) bool {
	return path == "" || path == "/"
}
