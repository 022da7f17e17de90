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
	"context"
	"time"

	cs "github.com/dimagoldin/serverless-kubeless/client/clientset"
	"github.com/dimagoldin/serverless-kubeless/pkg/deployer"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gomodules.xyz/flags"
	stringz "gomodules.xyz/x/strings"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
)

type deployOptions struct {
	masterURL      string
	kubeconfigPath string
	serviceFile    string
	timeout        time.Duration

	deployer.Options
}

func (opt *deployOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&opt.masterURL, "master", "", "The address of the Kubernetes API server (overrides any value in kubeconfig)")
	fs.StringVar(&opt.kubeconfigPath, "kubeconfig", "", "Path to kubeconfig file with authorization information (the master location is set by the master flag).")
	fs.StringVar(&opt.serviceFile, "service-file", "serverless.yml", "Path to the service configuration file")
	fs.StringVar(&opt.Namespace, "namespace", "", "Deploy every function into this namespace instead of the one its configuration picks")
	fs.BoolVar(&opt.Verbose, "verbose", false, "Log the state of the function pods while waiting for them to roll out")
	fs.StringVar(&opt.Hostname, "hostname", "", "Default hostname of provisioned ingress rules (derived from the cluster endpoint when empty)")
	fs.DurationVar(&opt.timeout, "timeout", 0, "Give up on the whole deployment after this duration (0 means no deadline)")
}

// run deploys the functions of the configured service. When only is
// non-empty, just that function is deployed and a changed definition is
// redeployed without asking for --force, mirroring a targeted rollout.
func (opt *deployOptions) run(only string) error {
	svc, err := service.Load(opt.serviceFile)
	if err != nil {
		return err
	}
	fns := svc.Ordered()
	if only != "" {
		fn, found := svc.Functions[only]
		if !found || fn == nil {
			return errors.Errorf("the service does not declare a function named %s", only)
		}
		fns = []*service.Function{fn}
		opt.Force = true
	}

	config, err := clientcmd.BuildConfigFromFlags(opt.masterURL, opt.kubeconfigPath)
	if err != nil {
		return errors.Wrap(err, "could not get Kubernetes config")
	}
	kubeClient, err := kubernetes.NewForConfig(config)
	if err != nil {
		return err
	}
	kubelessClient, err := cs.NewForConfig(config)
	if err != nil {
		return err
	}
	opt.Hostname = stringz.Val(opt.Hostname, stringz.Val(svc.Provider.Hostname, deployer.DefaultHostname(config.Host)))

	ctx := context.Background()
	if opt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.timeout)
		defer cancel()
	}

	result, err := deployer.New(kubeClient, kubelessClient, opt.Options).Run(ctx, fns)
	if err != nil {
		return err
	}
	klog.Infof("Deployed service %s: %d operations completed", svc.Service, result.Completed)
	return nil
}

func NewCmdDeploy() *cobra.Command {
	opt := deployOptions{}

	cmd := &cobra.Command{
		Use:               "deploy",
		Short:             "Deploy every function of a service to the cluster",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opt.run("")
		},
	}
	opt.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&opt.Force, "force", false, "Redeploy functions that already exist on the cluster with a different definition")
	return cmd
}

func NewCmdDeployFunction() *cobra.Command {
	var (
		opt      deployOptions
		function string
	)

	cmd := &cobra.Command{
		Use:               "deploy-function",
		Short:             "Deploy a single function of a service, redeploying it if its definition changed",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.EnsureRequiredFlags(cmd, "function")
			return opt.run(function)
		},
	}
	opt.addFlags(cmd.Flags())
	cmd.Flags().StringVarP(&function, "function", "f", "", "Name of the function to deploy")
	return cmd
}
