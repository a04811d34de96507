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

// Package vars builds the substitution map used to render template files.
package vars

import (
	"maps"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/walteh/stamp/pkg/config"
)

// DefaultSCMDomain is used for scm/domain when the group is not a host path.
const DefaultSCMDomain = "github.com"

// Map holds placeholder keys and their rendered values.
type Map map[string]string

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build derives the substitution map from a request. The result depends
// only on the request; the caller stamps req.Now.
func Build(req config.Request) Map {
	group, artifact, qualified := config.ParseName(req.Name)

	topNS := nsPart(strings.ReplaceAll(group, "/", "."))
	mainNS := nsPart(artifact)
	namespace := mainNS
	if qualified {
		namespace = topNS + "." + mainNS
	}

	domain, user := scm(group)

	m := Map{
		"raw-name":    req.Name,
		"name":        group + "/" + artifact,
		"top":         group,
		"main":        artifact,
		"group/id":    group,
		"artifact/id": artifact,
		"sanitized":   strcase.ToKebab(artifact),
		"namespace":   namespace,
		"file":        nsToFile(namespace),
		"top/ns":      topNS,
		"top/file":    nsToFile(topNS),
		"main/ns":     mainNS,
		"main/file":   nsToFile(mainNS),
		"name/snake":  strcase.ToSnake(artifact),
		"name/camel":  strcase.ToLowerCamel(artifact),
		"name/pascal": strcase.ToCamel(artifact),
		"name/upper":  strcase.ToScreamingSnake(artifact),
		"version":     req.Version,
		"description": req.Description,
		"developer":   developer(req),
		"user":        req.User,
		"scm/domain":  domain,
		"scm/user":    user,
		"scm/repo":    artifact,
	}
	if m["version"] == "" {
		m["version"] = config.DefaultVersion
	}
	if m["description"] == "" {
		m["description"] = "FIXME: my new project."
	}

	if !req.Now.IsZero() {
		m["now/date"] = req.Now.Format("2006-01-02")
		m["now/year"] = strconv.Itoa(req.Now.Year())
		m["year"] = m["now/year"]
	}

	for k, v := range req.Vars {
		m[k] = v
	}
	return m
}

// Merge returns a new map with overlay applied over base; overlay wins on
// conflicts.
func Merge(base Map, overlay map[string]string) Map {
	out := maps.Clone(base)
	if out == nil {
		out = Map{}
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// nsPart lowercases a name and uses '-' as its word separator.
func nsPart(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

// nsToFile turns a dotted namespace into a relative file path.
func nsToFile(ns string) string {
	return strings.ReplaceAll(strings.ReplaceAll(ns, ".", "/"), "-", "_")
}

// scm splits a group into a hosting domain and a user. "github.com/acme"
// is domain github.com and user acme; a plain "acme" uses DefaultSCMDomain.
func scm(group string) (domain, user string) {
	first, rest, found := strings.Cut(group, "/")
	if found && strings.Contains(first, ".") {
		return first, rest
	}
	return DefaultSCMDomain, group
}

func developer(req config.Request) string {
	if req.Developer != "" {
		return req.Developer
	}
	if req.User == "" {
		return ""
	}
	r := []rune(req.User)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
