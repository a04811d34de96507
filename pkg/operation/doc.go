// Copyright 2025 walteh LLC
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

/*
Package operation turns a creation request into files on disk.

	+----------+   +----------+   +-------+   +-----------+   +-----------+
	| resolve  |-->| manifest |-->| vars  |-->| overwrite |-->| transform |
	+----------+   +----------+   +-------+   +-----------+   +-----------+
	                   |              ^                             |
	                   v              |                             v
	              template-fn ----- data-fn                   status.Manager

🎯 Purpose:
- Creator sequences one run and is the only entry point callers need
- Transform applies one directory entry of a manifest
- Decide is the overwrite state machine

🔄 Flow:
1. Resolve the template and load its manifest
2. Look up every hook the manifest names
3. Let template-fn rewrite the request, then apply defaults
4. Build the substitution map and merge data-fn output over it
5. Decide the overwrite state; delete the target for PresentDelete
6. Run the implicit root entry, then every transform entry in order
7. Run post-process-fn

⚡ Transform rules:
  - delims from the entry, else {{ }}
  - :only copies exactly the files keys; otherwise every file under src
  - files values rename, and may contain placeholders that expand into
    nested directories
  - :raw copies bytes verbatim; paths are still substituted
  - files keys with no source are skipped

Nothing is rolled back: a delete run that fails part way leaves the target
partially written.

🔍 Example:

	c, err := operation.NewCreator(operation.Options{
		Resolver: &resolve.Resolver{Implicit: []resolve.Root{templates.Root()}},
	})
	if err != nil {
		return err
	}

	res, err := c.Create(ctx, config.Request{Template: "app", Name: "acme/widget"})
*/
package operation
