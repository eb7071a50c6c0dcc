// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package setuptools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/datawire/pysetup/pkg/python/requirements"
)

// iniFile is a parsed configparser-style file: section name → option name → value.
type iniFile map[string]map[string]string

// parseINI parses the subset of Python's configparser format that setuptools uses for
// setup.cfg: "=" or ":" delimiters, "#" and ";" full-line comments, lower-cased option names, and
// indented continuation lines (with blank lines kept inside of multi-line values).  Duplicate
// sections and options are errors.  There is no interpolation.
func parseINI(r io.Reader) (iniFile, error) {
	ret := make(iniFile)

	var (
		section     map[string]string
		key         string
		val         []string
		indentLevel int
	)
	flush := func() {
		if val != nil {
			section[key] = strings.TrimRight(strings.Join(val, "\n"), "\n")
			key = ""
			val = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if trimmed == "" {
			if val != nil {
				val = append(val, "")
			}
			continue
		}

		lineIndent := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
		switch {
		case val != nil && lineIndent > 0 && lineIndent > indentLevel:
			val = append(val, trimmed)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			flush()
			indentLevel = lineIndent
			name := strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
			if _, dup := ret[name]; dup {
				return nil, fmt.Errorf("line %d: duplicate section name %q", lineno, name)
			}
			section = make(map[string]string)
			ret[name] = section
		default:
			flush()
			indentLevel = lineIndent
			if section == nil {
				return nil, fmt.Errorf("line %d: no section header", lineno)
			}
			sep := strings.IndexAny(trimmed, "=:")
			if sep < 0 {
				return nil, fmt.Errorf("line %d: invalid line: %q", lineno, trimmed)
			}
			key = strings.ToLower(strings.TrimSpace(trimmed[:sep]))
			if _, dup := section[key]; dup {
				return nil, fmt.Errorf("line %d: duplicate option name %q", lineno, key)
			}
			val = []string{strings.TrimSpace(trimmed[sep+1:])}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return ret, nil
}

// boolValue parses a boolean option value the way setuptools does.
func boolValue(val string) (bool, error) {
	switch strings.ToLower(val) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", val)
	}
}

// listValue splits a multi-line option value in to its non-empty lines.
func listValue(val string) []string {
	var ret []string
	for _, line := range strings.Split(val, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}

// SetupCfgSection is the setup.cfg section that holds the settings that have no setuptools
// equivalent.
const SetupCfgSection = "pysetup"

// LoadSetupCfg reads a Config from a setuptools setup.cfg file:
//
//	[metadata]
//	name = mypkg
//	url = https://example.com/mypkg
//	description = My package
//	author = Ambassador Labs
//	author_email = dev@example.com
//	long_description = file: README.md
//	long_description_content_type = text/markdown
//
//	[options]
//	python_requires = >=3.6
//	include_package_data = True
//	package_dir =
//	    =src
//
//	[pysetup]
//	version_file = src/mypkg/__init__.py
//	versions = loose
//	install_requires = requirements/runtime.txt
//	extras_require =
//	    tests = requirements/tests.txt
//
// Sections other than these three are ignored; unknown options in the [pysetup] section are an
// error.
func LoadSetupCfg(filename string) (Config, error) {
	var cfg Config
	fh, err := os.Open(filename)
	if err != nil {
		return cfg, err
	}
	defer fh.Close()

	ini, err := parseINI(fh)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}

	metadata := ini["metadata"]
	cfg.Name = metadata["name"]
	cfg.URL = metadata["url"]
	cfg.Description = metadata["description"]
	cfg.Author = metadata["author"]
	cfg.AuthorEmail = metadata["author_email"]
	if readme, ok := metadata["long_description"]; ok {
		if !strings.HasPrefix(readme, "file:") {
			return cfg, fmt.Errorf("%s: [metadata] long_description: only \"file:\" values are supported",
				filename)
		}
		cfg.Readme = strings.TrimSpace(strings.TrimPrefix(readme, "file:"))
	}
	cfg.ReadmeContentType = metadata["long_description_content_type"]

	options := ini["options"]
	cfg.PythonRequires = options["python_requires"]
	for _, line := range listValue(options["package_dir"]) {
		if strings.HasPrefix(line, "=") {
			cfg.PackageDir = strings.TrimSpace(strings.TrimPrefix(line, "="))
		}
	}
	if val, ok := options["include_package_data"]; ok {
		cfg.IncludePackageData, err = boolValue(val)
		if err != nil {
			return cfg, fmt.Errorf("%s: [options] include_package_data: %w", filename, err)
		}
	}

	keys := make([]string, 0, len(ini[SetupCfgSection]))
	for key := range ini[SetupCfgSection] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val := ini[SetupCfgSection][key]
		switch key {
		case "version_file":
			cfg.VersionFile = val
		case "versions":
			cfg.Versions, err = requirements.ParseVersionPin(val)
			if err != nil {
				return cfg, fmt.Errorf("%s: [%s] versions: %w", filename, SetupCfgSection, err)
			}
		case "install_requires":
			cfg.InstallRequires = val
		case "extras_require":
			cfg.ExtrasRequire = make(map[string]string)
			for _, line := range listValue(val) {
				sep := strings.IndexAny(line, "=:")
				if sep < 0 {
					return cfg, fmt.Errorf("%s: [%s] extras_require: invalid line %q (must be \"GROUP = FILE\")",
						filename, SetupCfgSection, line)
				}
				cfg.ExtrasRequire[strings.TrimSpace(line[:sep])] = strings.TrimSpace(line[sep+1:])
			}
		default:
			return cfg, fmt.Errorf("%s: [%s]: unknown option %q", filename, SetupCfgSection, key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}
