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
Package status owns every write into the generated project directory.

	+-----------+  bytes  +---------+  rename  +-------------+
	| operation | ------> | Manager | -------> | target dir  |
	+-----------+         +---------+          +-------------+
	                           |
	                           v
	                     FileInfo (new / modified / unchanged)

🎯 Purpose:
- Writes files atomically (temp file + rename) below one target directory
- Refuses paths that would escape the target directory
- Tracks what each write did so runs can be summarized
- Formats per-file and progress lines through a FileFormatter

🔄 Flow:
1. The transform engine renders a file and calls WriteFile
2. The manager compares against what is on disk
3. Identical files are left alone, others are replaced
4. The result is tracked and logged at debug level

🔍 Example:

	mgr := status.New("widget")

	info, err := mgr.WriteFile(ctx, status.FileInfo{Path: "src/core.go", Mode: 0644}, content)

	for _, f := range mgr.ListFiles(ctx) {
		fmt.Println(f.Path, f.Status)
	}
*/
package status
