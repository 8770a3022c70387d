// Package config defines the boundary between input adapters and the rest of
// the application. A Loader reads definition files in some concrete format
// and produces the format-agnostic entry model the resolver consumes.
//
// Concrete implementations live in their own packages, such as hclload.
package config
