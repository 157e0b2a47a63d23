// Package language loads language definitions from YAML or JSON files.
//
// A file holds one or more YAML documents; each document is either a single
// language or a sequence of languages. JSON files are read the same way.
//
// Example:
//
//	key: library
//	version: "1"
//	name: Library
//	classifiers:
//	  - kind: concept
//	    key: Book
//	    name: Book
//	    features:
//	      - kind: property
//	        key: title
//	        type: {language: LionCore-builtins, version: "2023.1", key: LionCore-builtins-String}
package language
