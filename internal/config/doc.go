// Package config loads srcdump configuration.
//
// Settings come from three layers, later ones winning:
//
//   - DefaultConfig: .kt and .xml files under app/src/main, info logging
//   - a YAML file, by default .srcdump/config.yaml in the start directory
//   - command-line flags, applied with MergeWithFlags
//
// Example config file:
//
//	extensions: [".kt", ".xml", ".kts"]
//	exclude_dirs: ["build", ".gradle"]
//	ignore_case: false
//	skip_hidden: true
//	marker: app/src/main
//	name_from_root: false
//	output_dir: ../reports
//	log_level: debug
//
// A relative output_dir is resolved against the directory holding the config
// file. When no output directory is configured at all, ResolveOutputDir falls
// back to SRCDUMP_OUTPUT_DIR and then to the executable's own directory.
package config
