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

// Package locator finds candidate recipe files inside one repository
// working copy.
//
// Recipes are matched by suffix (.recipe, .recipe.plist, .recipe.yaml) at
// exactly one or two directory levels inside the repository:
//
//	repos/autopkg/recipes/Firefox/Firefox.munki.recipe          found
//	repos/autopkg/recipes/Vendor/Firefox/Firefox.jamf.recipe    found
//	repos/autopkg/recipes/Firefox.munki.recipe                  not searched
//	repos/autopkg/recipes/a/b/c/Firefox.munki.recipe            not searched
//
// The order of the returned paths is stable and is part of the index
// contract: later files overwrite earlier ones on identifier collisions.
package locator
