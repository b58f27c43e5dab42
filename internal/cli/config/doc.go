// Package config provides the connectus CLI configuration.
//
// The configuration lives in ~/.connectus/cli.yaml and is layered by
// infra/confloader: defaults, then the file, then CONNECTUS_* environment
// variables, then command-line flags.
//
//	storage:
//	  dir: ~/.connectus/data
//	  ephemeral: false
//	output:
//	  format: table
//	log:
//	  level: warn
//	  file: ~/.connectus/connectus.log
//	metrics:
//	  textfile: /var/lib/node_exporter/connectus.prom
package config
