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

// Package oci publishes a built recipe index as an OCI artifact.
//
// The directory holding the index is packed into a single reproducible
// gzipped tar layer under an OCI 1.1 manifest whose artifact type is
// "application/vnd.autopkg.recipe-index.v1". Targets are either registry
// references written as oci://registry/repository[:tag] or a local OCI
// Image Layout directory:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/autopkg/index:latest")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{
//	    SourceDir:   "v1",
//	    Reference:   ref,
//	    Annotations: oci.Annotations(result.Header),
//	})
//
// Registry credentials come from PushOptions.Username and Password when set,
// otherwise from the Docker credential store (~/.docker/config.json) through
// the ORAS credentials package.
package oci
