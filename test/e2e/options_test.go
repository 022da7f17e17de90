package e2e_test

import (
	"flag"
	"path/filepath"

	"k8s.io/client-go/util/homedir"
)

type E2EOptions struct {
	MasterURL  string
	KubeConfig string
}

var options = &E2EOptions{
	KubeConfig: filepath.Join(homedir.HomeDir(), ".kube", "config"),
}

func init() {
	flag.StringVar(&options.MasterURL, "master", "", "The address of the Kubernetes API server (overrides any value in kubeconfig)")
	flag.StringVar(&options.KubeConfig, "kubeconfig", options.KubeConfig, "Path to kubeconfig file with authorization information (the master location is set by the master flag).")
}
