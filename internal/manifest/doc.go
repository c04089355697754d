// Package manifest locates and parses the package manifest embedded in
// release documents.
//
// The package implements:
//   - Line-level parsing of bulleted package entries ("- GCC 14.2.0")
//   - A finite-state scanner with two input dialects: rendered Markdown
//     release bodies and raw build-tool logs
//   - Manifest profiles (TOML) describing the marker text that delimits
//     the package list for a given project
//
// Usage:
//
//	scanner := manifest.NewBuildLogScanner(manifest.DefaultProfile())
//	result := scanner.Scan(lines)
//	for _, name := range result.Packages.Names() {
//	    pkg, _ := result.Packages.Get(name)
//	    fmt.Println(pkg.Name, pkg.Version)
//	}
package manifest
