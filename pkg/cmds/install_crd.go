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
package cmds

import (
	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"

	"github.com/spf13/cobra"
	crd_cs "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
	"kmodules.xyz/client-go/apiextensions"
)

func NewCmdInstallCRD() *cobra.Command {
	var (
		masterURL      string
		kubeconfigPath string
	)

	cmd := &cobra.Command{
		Use:               "install-crd",
		Short:             "Register the Function custom resource definition and wait for it to be established",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := clientcmd.BuildConfigFromFlags(masterURL, kubeconfigPath)
			if err != nil {
				return err
			}
			crdClient, err := crd_cs.NewForConfig(config)
			if err != nil {
				return err
			}
			crds := []*apiextensions.CustomResourceDefinition{
				api.Function{}.CustomResourceDefinition(),
			}
			if err := apiextensions.RegisterCRDs(crdClient, crds); err != nil {
				return err
			}
			klog.Infof("Successfully installed the %s CRD", api.ResourcePluralFunction+"."+api.GroupName)
			return nil
		},
	}

	cmd.Flags().StringVar(&masterURL, "master", "", "The address of the Kubernetes API server (overrides any value in kubeconfig)")
	cmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to kubeconfig file with authorization information (the master location is set by the master flag).")
	return cmd
}
