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
	"flag"

	"github.com/spf13/cobra"
	"gomodules.xyz/flags"
	v "gomodules.xyz/x/version"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "kubeless-deployer",
		Short:             `Deploy serverless functions to Kubeless`,
		Long:              `kubeless-deployer installs the functions of a serverless service on a Kubernetes cluster running Kubeless, waits for them to roll out and exposes their HTTP endpoints through ingress rules.`,
		DisableAutoGenTag: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			flags.PrintFlags(c.Flags())
		},
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(v.NewCmdVersion())
	rootCmd.AddCommand(NewCmdDeploy())
	rootCmd.AddCommand(NewCmdDeployFunction())
	rootCmd.AddCommand(NewCmdInstallCRD())

	return rootCmd
}
