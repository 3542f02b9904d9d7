// Copyright (c) 2025, The AutoPkg Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client provides the Kubernetes client used to publish and read
// the recipe index as a ConfigMap.
//
// The client is built once per process on first use:
//
//	client.SetKubeconfig(path) // optional, from --kubeconfig
//	k8s, _, err := client.GetKubeClient()
//
// Without an explicit path, $KUBECONFIG and then ~/.kube/config are tried,
// falling back to in-cluster service account configuration.
package client
